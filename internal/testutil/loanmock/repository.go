package loanmock

import (
	"context"
	"time"

	domain "loan-tracker/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a no-op, single reads to context.Canceled, lists to empty.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	DeleteFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDForUpdateFn     func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListByLenderFn         func(ctx context.Context, lenderID string) ([]domain.Loan, error)
	ListByBorrowerFn       func(ctx context.Context, borrowerID string) ([]domain.Loan, error)
	ListBetweenFn          func(ctx context.Context, lenderID, borrowerID string) ([]domain.Loan, error)
	ListOpenDueOnFn        func(ctx context.Context, day time.Time) ([]domain.Loan, error)
	ListOpenOverdueFn      func(ctx context.Context, today time.Time) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, l *domain.Loan) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLender(ctx context.Context, lenderID string) ([]domain.Loan, error) {
	if m.ListByLenderFn != nil {
		return m.ListByLenderFn(ctx, lenderID)
	}
	return nil, nil
}

func (m *Repo) ListByBorrower(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	if m.ListByBorrowerFn != nil {
		return m.ListByBorrowerFn(ctx, borrowerID)
	}
	return nil, nil
}

func (m *Repo) ListBetween(ctx context.Context, lenderID, borrowerID string) ([]domain.Loan, error) {
	if m.ListBetweenFn != nil {
		return m.ListBetweenFn(ctx, lenderID, borrowerID)
	}
	return nil, nil
}

func (m *Repo) ListOpenDueOn(ctx context.Context, day time.Time) ([]domain.Loan, error) {
	if m.ListOpenDueOnFn != nil {
		return m.ListOpenDueOnFn(ctx, day)
	}
	return nil, nil
}

func (m *Repo) ListOpenOverdue(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	if m.ListOpenOverdueFn != nil {
		return m.ListOpenOverdueFn(ctx, today)
	}
	return nil, nil
}
