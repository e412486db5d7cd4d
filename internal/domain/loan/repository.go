package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, l *Loan) error

	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)

	// Row-locking reads; only meaningful inside a transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)

	ListByLender(ctx context.Context, lenderID string) ([]Loan, error)
	ListByBorrower(ctx context.Context, borrowerID string) ([]Loan, error)
	ListBetween(ctx context.Context, lenderID, borrowerID string) ([]Loan, error)

	// Reminder scans, unpaid loans only.
	ListOpenDueOn(ctx context.Context, day time.Time) ([]Loan, error)
	ListOpenOverdue(ctx context.Context, today time.Time) ([]Loan, error)
}
