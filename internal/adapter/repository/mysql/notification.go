package mysql

import (
	"context"
	"time"

	loanDomain "loan-tracker/internal/domain/loan"
	notificationDomain "loan-tracker/internal/domain/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notificationDomain.Notification) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error
}

// CreateReminder relies on ux_notifications_reminder; a concurrent sweep that
// lost the race sees zero rows affected instead of an error.
func (r *NotificationRepository) CreateReminder(ctx context.Context, n *notificationDomain.Notification) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(n)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *NotificationRepository) ReminderExists(ctx context.Context, userID string, loanID uint64, b notificationDomain.Bucket, day time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&notificationDomain.Notification{}).
		Where("user_id = ? AND loan_id = ? AND reminder_bucket = ? AND reminder_day = ?",
			userID, loanID, b, loanDomain.DateOf(day)).
		Count(&n).Error
	return n > 0, err
}

func (r *NotificationRepository) GetByNotificationID(ctx context.Context, userID, notificationID string) (*notificationDomain.Notification, error) {
	var out notificationDomain.Notification
	err := r.db.WithContext(ctx).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]notificationDomain.Notification, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&notificationDomain.Notification{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []notificationDomain.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, total, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&notificationDomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, n *notificationDomain.Notification) error {
	n.IsRead = true
	return r.db.WithContext(ctx).Model(n).Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&notificationDomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, n *notificationDomain.Notification) error {
	return r.db.WithContext(ctx).Delete(n).Error
}
