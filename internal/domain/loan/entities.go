package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

const (
	DefaultCurrency      = "MMK"
	MaxCurrencyLen       = 10
	MaxDescriptionLength = 500
)

type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"column:loan_id;size:32;not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	LenderID        string          `gorm:"column:lender_id;size:32;not null;index:idx_loans_lender" json:"lender_id"`
	BorrowerID      string          `gorm:"column:borrower_id;size:32;not null;index:idx_loans_borrower" json:"borrower_id"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(15,2);not null" json:"amount"`
	Currency        string          `gorm:"column:currency;size:10;not null" json:"currency"`
	Description     *string         `gorm:"column:description;size:500" json:"description"`
	DueDate         *time.Time      `gorm:"column:due_date;type:date;index:idx_loans_status_due,priority:2" json:"due_date"`
	Status          Status          `gorm:"column:status;size:16;not null;index:idx_loans_status_due,priority:1" json:"status"`
	RemainingAmount decimal.Decimal `gorm:"column:remaining_amount;type:decimal(15,2);not null" json:"remaining_amount"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) IsParty(userID string) bool {
	return l.LenderID == userID || l.BorrowerID == userID
}

// CounterpartyOf returns the other side of the loan for userID.
func (l *Loan) CounterpartyOf(userID string) string {
	if l.LenderID == userID {
		return l.BorrowerID
	}
	return l.LenderID
}

// DaysOverdue is the number of whole days the due date lies before today,
// zero when there is no due date or it has not passed.
func (l *Loan) DaysOverdue(today time.Time) int {
	if l.DueDate == nil {
		return 0
	}
	n := DaysBetween(*l.DueDate, today)
	if n < 0 {
		return 0
	}
	return n
}
