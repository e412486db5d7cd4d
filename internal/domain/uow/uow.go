package uow

import (
	"context"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/domain/notification"
	"loan-tracker/internal/domain/payment"
)

// Repos are bound to one transaction.
type Repos struct {
	Loans         loan.Repository
	Payments      payment.Repository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
