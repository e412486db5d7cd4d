package notification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// CreateReminder inserts a system reminder, ignoring a conflict on the
	// (recipient, loan, bucket, day) unique index. created is false when a
	// matching reminder already existed.
	CreateReminder(ctx context.Context, n *Notification) (created bool, err error)
	ReminderExists(ctx context.Context, userID string, loanID uint64, b Bucket, day time.Time) (bool, error)

	GetByNotificationID(ctx context.Context, userID, notificationID string) (*Notification, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, n *Notification) error
}

// Dispatcher requests push delivery of an already recorded notification.
// It never fails the caller; false means nothing was delivered.
type Dispatcher interface {
	Notify(ctx context.Context, n *Notification) bool
}

// DispatchAll requests push for each recorded notification. It is called
// after the recording transaction commits; d may be nil.
func DispatchAll(ctx context.Context, d Dispatcher, ns []*Notification) {
	if d == nil {
		return
	}
	for _, n := range ns {
		if n != nil {
			d.Notify(ctx, n)
		}
	}
}
