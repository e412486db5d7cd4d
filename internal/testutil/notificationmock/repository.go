package notificationmock

import (
	"context"
	"sync"
	"time"

	domain "loan-tracker/internal/domain/notification"
)

var (
	_ domain.Repository = (*Repo)(nil)
	_ domain.Dispatcher = (*Dispatcher)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, n *domain.Notification) error
	CreateReminderFn      func(ctx context.Context, n *domain.Notification) (bool, error)
	ReminderExistsFn      func(ctx context.Context, userID string, loanID uint64, b domain.Bucket, day time.Time) (bool, error)
	GetByNotificationIDFn func(ctx context.Context, userID, notificationID string) (*domain.Notification, error)
	ListByUserFn          func(ctx context.Context, userID string, offset, limit int) ([]domain.Notification, int64, error)
	CountUnreadFn         func(ctx context.Context, userID string) (int64, error)
	MarkReadFn            func(ctx context.Context, n *domain.Notification) error
	MarkAllReadFn         func(ctx context.Context, userID string) (int64, error)
	DeleteFn              func(ctx context.Context, n *domain.Notification) error
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) CreateReminder(ctx context.Context, n *domain.Notification) (bool, error) {
	if m.CreateReminderFn != nil {
		return m.CreateReminderFn(ctx, n)
	}
	return true, nil
}

func (m *Repo) ReminderExists(ctx context.Context, userID string, loanID uint64, b domain.Bucket, day time.Time) (bool, error) {
	if m.ReminderExistsFn != nil {
		return m.ReminderExistsFn(ctx, userID, loanID, b, day)
	}
	return false, nil
}

func (m *Repo) GetByNotificationID(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	if m.GetByNotificationIDFn != nil {
		return m.GetByNotificationIDFn(ctx, userID, notificationID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Notification, int64, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, offset, limit)
	}
	return nil, 0, nil
}

func (m *Repo) CountUnread(ctx context.Context, userID string) (int64, error) {
	if m.CountUnreadFn != nil {
		return m.CountUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (m *Repo) MarkRead(ctx context.Context, n *domain.Notification) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, n)
	}
	return nil
}

func (m *Repo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (m *Repo) Delete(ctx context.Context, n *domain.Notification) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, n)
	}
	return nil
}

// Dispatcher records every notification it is asked to push.
type Dispatcher struct {
	mu       sync.Mutex
	NotifyFn func(ctx context.Context, n *domain.Notification) bool
	Sent     []*domain.Notification
}

func (d *Dispatcher) Notify(ctx context.Context, n *domain.Notification) bool {
	d.mu.Lock()
	d.Sent = append(d.Sent, n)
	d.mu.Unlock()
	if d.NotifyFn != nil {
		return d.NotifyFn(ctx, n)
	}
	return true
}

// Types returns the types of the recorded notifications in send order.
func (d *Dispatcher) Types() []domain.Type {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Type, 0, len(d.Sent))
	for _, n := range d.Sent {
		out = append(out, n.Type)
	}
	return out
}
