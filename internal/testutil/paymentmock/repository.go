package paymentmock

import (
	"context"

	domain "loan-tracker/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.Payment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ResolveFn                 func(ctx context.Context, p *domain.Payment) error
	ListByLoanFn              func(ctx context.Context, loanID uint64) ([]domain.Payment, error)
	CountByLoanFn             func(ctx context.Context, loanID uint64) (int64, error)
	ListPendingForLenderFn    func(ctx context.Context, lenderID string) ([]domain.Payment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) Resolve(ctx context.Context, p *domain.Payment) error {
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.Payment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) CountByLoan(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountByLoanFn != nil {
		return m.CountByLoanFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) ListPendingForLender(ctx context.Context, lenderID string) ([]domain.Payment, error) {
	if m.ListPendingForLenderFn != nil {
		return m.ListPendingForLenderFn(ctx, lenderID)
	}
	return nil, nil
}
