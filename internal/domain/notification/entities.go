package notification

import (
	"time"

	"loan-tracker/internal/domain/loan"
)

type Type string

const (
	TypeLoanCreated     Type = "loan_created"
	TypePaymentReceived Type = "payment_received"
	TypePaymentVerified Type = "payment_verified"
	TypePaymentRejected Type = "payment_rejected"
	TypeDueToday        Type = "due_today"
	TypeDueTomorrow     Type = "due_tomorrow"
	TypeDueSoon         Type = "due_soon"
	TypeOverdue         Type = "overdue"
	TypeReminder        Type = "reminder"
	TypeDueDateSet      Type = "due_date_set"
	TypeDueDateChanged  Type = "due_date_changed"
	TypeDueDateRemoved  Type = "due_date_removed"
)

// Bucket is the due-date-relative class of a system reminder.
type Bucket string

const (
	BucketDueToday    Bucket = "due_today"
	BucketDueTomorrow Bucket = "due_tomorrow"
	BucketDueSoon     Bucket = "due_soon"
	BucketOverdue     Bucket = "overdue"
)

// Buckets in sweep order.
var Buckets = []Bucket{BucketDueToday, BucketDueTomorrow, BucketDueSoon, BucketOverdue}

func (b Bucket) Type() Type { return Type(b) }

// Notification is an in-app event record. Which optional columns are set
// depends on Type; build rows through the constructors in kinds.go.
type Notification struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string     `gorm:"column:notification_id;size:32;not null;uniqueIndex:ux_notifications_notification_id" json:"notification_id"`
	UserID         string     `gorm:"column:user_id;size:32;not null;index:idx_notifications_user_read,priority:1;uniqueIndex:ux_notifications_reminder,priority:1" json:"user_id"`
	SenderID       *string    `gorm:"column:sender_id;size:32" json:"sender_id"`
	LoanRowID      *uint64    `gorm:"column:loan_id;uniqueIndex:ux_notifications_reminder,priority:2" json:"-"`
	Loan           *loan.Loan `gorm:"foreignKey:LoanRowID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	LoanRef        *string    `gorm:"column:loan_ref;size:32" json:"loan_id"`
	PaymentRef     *string    `gorm:"column:payment_ref;size:32" json:"payment_id,omitempty"`
	Type           Type       `gorm:"column:type;size:32;not null" json:"type"`
	Title          string     `gorm:"column:title;size:255;not null" json:"title"`
	Message        string     `gorm:"column:message;size:1000;not null" json:"message"`
	ReminderBucket *Bucket    `gorm:"column:reminder_bucket;size:16;uniqueIndex:ux_notifications_reminder,priority:3" json:"reminder_bucket,omitempty"`
	ReminderDay    *time.Time `gorm:"column:reminder_day;type:date;uniqueIndex:ux_notifications_reminder,priority:4" json:"reminder_day,omitempty"`
	Reason         *string    `gorm:"column:reason;size:500" json:"reason,omitempty"`
	IsRead         bool       `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read,priority:2" json:"is_read"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// IsSystem reports whether the event was generated without a sending user.
func (n *Notification) IsSystem() bool { return n.SenderID == nil }

// Payload is the structured data mirrored into a push message.
func (n *Notification) Payload() map[string]string {
	out := map[string]string{"type": string(n.Type)}
	if !n.IsSystem() {
		out["sender_id"] = *n.SenderID
	}
	if n.NotificationID != "" {
		out["notification_id"] = n.NotificationID
	}
	if n.LoanRef != nil {
		out["loan_id"] = *n.LoanRef
	}
	if n.PaymentRef != nil {
		out["payment_id"] = *n.PaymentRef
	}
	if n.ReminderBucket != nil {
		out["reminder_type"] = string(*n.ReminderBucket)
	}
	return out
}
