package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error

	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*Payment, error)

	// Resolve persists an accept/reject decision. The write is conditional on
	// the row still being pending; ErrAlreadyResolved is returned otherwise.
	Resolve(ctx context.Context, p *Payment) error

	ListByLoan(ctx context.Context, loanID uint64) ([]Payment, error)
	CountByLoan(ctx context.Context, loanID uint64) (int64, error)

	// Pending payments on loans where lenderID is the lender, newest first.
	ListPendingForLender(ctx context.Context, lenderID string) ([]Payment, error)
}
