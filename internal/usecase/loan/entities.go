package loan

import (
	"time"

	domain "loan-tracker/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	BorrowerID  string
	Amount      decimal.Decimal
	Currency    string // empty means the configured default
	Description *string
	DueDate     *time.Time
}

// UpdateLoanInput carries only the fields a lender may change. A nil field
// is left alone; RemoveDueDate clears the due date.
type UpdateLoanInput struct {
	Description   *string
	DueDate       *time.Time
	RemoveDueDate bool
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	LenderID        string          `json:"lender_id"`
	BorrowerID      string          `json:"borrower_id"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Currency        string          `json:"currency"`
	Description     *string         `json:"description"`
	DueDate         *string         `json:"due_date"`
	Status          string          `json:"status"`
	DaysOverdue     int             `json:"days_overdue,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type LoanListDTO struct {
	Given []LoanDTO `json:"given"`
	Taken []LoanDTO `json:"taken"`
}

type FriendLoansDTO struct {
	FriendID  string          `json:"friend_id"`
	Given     []LoanDTO       `json:"given"`
	Taken     []LoanDTO       `json:"taken"`
	OwedToYou decimal.Decimal `json:"owed_to_you"`
	YouOwe    decimal.Decimal `json:"you_owe"`
	Net       decimal.Decimal `json:"net"`
}

type SummaryDTO struct {
	OwedToYou       decimal.Decimal `json:"owed_to_you"`
	YouOwe          decimal.Decimal `json:"you_owe"`
	Net             decimal.Decimal `json:"net"`
	OpenLent        int             `json:"open_lent"`
	OpenBorrowed    int             `json:"open_borrowed"`
	OverdueLent     int             `json:"overdue_lent"`
	OverdueBorrowed int             `json:"overdue_borrowed"`
	PaidLent        int             `json:"paid_lent"`
	PaidBorrowed    int             `json:"paid_borrowed"`
}

func toDTO(l *domain.Loan, today time.Time) LoanDTO {
	dto := LoanDTO{
		LoanID:          l.LoanID,
		LenderID:        l.LenderID,
		BorrowerID:      l.BorrowerID,
		Amount:          l.Amount,
		RemainingAmount: l.RemainingAmount,
		Currency:        l.Currency,
		Description:     l.Description,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.DueDate != nil {
		s := l.DueDate.Format(domain.DateLayout)
		dto.DueDate = &s
		if l.Status != domain.StatusPaid {
			dto.DaysOverdue = l.DaysOverdue(today)
		}
	}
	return dto
}

func toDTOs(ls []domain.Loan, today time.Time) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, toDTO(&ls[i], today))
	}
	return out
}
