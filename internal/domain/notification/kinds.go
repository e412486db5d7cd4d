package notification

import (
	"fmt"
	"time"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/domain/payment"
	"loan-tracker/pkg/id"
)

const displayDate = "Jan 02, 2006"

func base(t Type, recipient string, sender *string, l *loan.Loan, title, msg string) *Notification {
	n := &Notification{
		NotificationID: id.NewID32(),
		UserID:         recipient,
		SenderID:       sender,
		Type:           t,
		Title:          title,
		Message:        msg,
	}
	if l != nil {
		lid, ref := l.ID, l.LoanID
		n.LoanRowID = &lid
		n.LoanRef = &ref
	}
	return n
}

func withPayment(n *Notification, p *payment.Payment) *Notification {
	ref := p.PaymentID
	n.PaymentRef = &ref
	return n
}

func strPtr(s string) *string { return &s }

func LoanCreated(l *loan.Loan) *Notification {
	msg := fmt.Sprintf("A loan of %s %s was recorded", l.Amount.StringFixed(2), l.Currency)
	if l.DueDate != nil {
		msg += fmt.Sprintf(" (Due: %s)", l.DueDate.Format(displayDate))
	}
	return base(TypeLoanCreated, l.BorrowerID, strPtr(l.LenderID), l, "New Loan Created", msg)
}

// PaymentProofSubmitted tells the lender an e-wallet payment awaits verification.
func PaymentProofSubmitted(l *loan.Loan, p *payment.Payment) *Notification {
	msg := fmt.Sprintf("Payment proof of %s %s was submitted. Please verify.", p.Amount.StringFixed(2), l.Currency)
	return withPayment(base(TypePaymentReceived, l.LenderID, strPtr(p.PayerID), l, "Payment Proof Submitted", msg), p)
}

// CashPaymentRecorded tells the lender a cash payment was applied.
func CashPaymentRecorded(l *loan.Loan, p *payment.Payment) *Notification {
	msg := fmt.Sprintf("A cash payment of %s %s was recorded", p.Amount.StringFixed(2), l.Currency)
	return withPayment(base(TypePaymentVerified, l.LenderID, strPtr(p.PayerID), l, "Payment Received (Cash)", msg), p)
}

func PaymentAccepted(l *loan.Loan, p *payment.Payment) *Notification {
	msg := fmt.Sprintf("Your payment of %s %s was accepted", p.Amount.StringFixed(2), l.Currency)
	return withPayment(base(TypePaymentVerified, p.PayerID, strPtr(l.LenderID), l, "Payment Accepted", msg), p)
}

func PaymentRejected(l *loan.Loan, p *payment.Payment, reason string) *Notification {
	msg := fmt.Sprintf("Your payment of %s %s was rejected: %s", p.Amount.StringFixed(2), l.Currency, reason)
	n := withPayment(base(TypePaymentRejected, p.PayerID, strPtr(l.LenderID), l, "Payment Rejected", msg), p)
	n.Reason = strPtr(reason)
	return n
}

// Reminder builds the system reminder for bucket b on calendar day day.
// The (recipient, loan, bucket, day) tuple is unique in storage.
func Reminder(l *loan.Loan, b Bucket, day time.Time) *Notification {
	amount := fmt.Sprintf("%s %s", l.RemainingAmount.StringFixed(2), l.Currency)
	var title, msg string
	switch b {
	case BucketDueToday:
		title, msg = "Payment Due Today", fmt.Sprintf("Your loan of %s is due today!", amount)
	case BucketDueTomorrow:
		title, msg = "Payment Due Tomorrow", fmt.Sprintf("Reminder: Your loan of %s is due tomorrow.", amount)
	case BucketDueSoon:
		title, msg = "Payment Due in 3 Days", fmt.Sprintf("Upcoming: Your loan of %s is due in 3 days.", amount)
	case BucketOverdue:
		days := l.DaysOverdue(day)
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		title, msg = "Payment Overdue", fmt.Sprintf("Your loan of %s is %d %s overdue!", amount, days, unit)
	}
	n := base(b.Type(), l.BorrowerID, nil, l, title, msg)
	bucket, d := b, loan.DateOf(day)
	n.ReminderBucket = &bucket
	n.ReminderDay = &d
	return n
}

// ManualReminder is a lender-initiated nudge; custom may be empty.
func ManualReminder(l *loan.Loan, custom string) *Notification {
	if custom == "" {
		custom = fmt.Sprintf("Please pay back the loan of %s %s", l.RemainingAmount.StringFixed(2), l.Currency)
	}
	return base(TypeReminder, l.BorrowerID, strPtr(l.LenderID), l, "Payment Reminder", custom)
}

// DueDateUpdate describes a due date change to the borrower, or returns nil
// when the date did not change.
func DueDateUpdate(l *loan.Loan, before, after *time.Time) *Notification {
	sender := strPtr(l.LenderID)
	switch {
	case before == nil && after == nil:
		return nil
	case before == nil:
		return base(TypeDueDateSet, l.BorrowerID, sender, l, "Due Date Set",
			"Due date set to "+after.Format(displayDate))
	case after == nil:
		return base(TypeDueDateRemoved, l.BorrowerID, sender, l, "Due Date Removed",
			"The due date was removed. Pay anytime.")
	case before.Equal(*after):
		return nil
	default:
		return base(TypeDueDateChanged, l.BorrowerID, sender, l, "Due Date Changed",
			"Due date changed to "+after.Format(displayDate))
	}
}
