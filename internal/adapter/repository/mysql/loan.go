package mysql

import (
	"context"
	"time"

	loanDomain "loan-tracker/internal/domain/loan"
	notificationDomain "loan-tracker/internal/domain/notification"
	paymentDomain "loan-tracker/internal/domain/payment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *LoanRepository) Tx(ctx context.Context, fn func(repo loanDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LoanRepository{db: tx})
	})
}

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// Delete removes the loan with its payments and notifications. The explicit
// child deletes keep engines without enforced foreign keys consistent.
func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_id = ?", l.ID).Delete(&paymentDomain.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("loan_id = ?", l.ID).Delete(&notificationDomain.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(l).Error
	})
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.first(r.db.WithContext(ctx).Where("loan_id = ?", loanID))
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("loan_id = ?", loanID))
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *LoanRepository) first(q *gorm.DB) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := q.First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) ListByLender(ctx context.Context, lenderID string) ([]loanDomain.Loan, error) {
	return r.list(r.db.WithContext(ctx).Where("lender_id = ?", lenderID))
}

func (r *LoanRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]loanDomain.Loan, error) {
	return r.list(r.db.WithContext(ctx).Where("borrower_id = ?", borrowerID))
}

func (r *LoanRepository) ListBetween(ctx context.Context, lenderID, borrowerID string) ([]loanDomain.Loan, error) {
	return r.list(r.db.WithContext(ctx).Where("lender_id = ? AND borrower_id = ?", lenderID, borrowerID))
}

func (r *LoanRepository) ListOpenDueOn(ctx context.Context, day time.Time) ([]loanDomain.Loan, error) {
	return r.list(r.db.WithContext(ctx).
		Where("status <> ? AND due_date = ?", loanDomain.StatusPaid, loanDomain.DateOf(day)))
}

func (r *LoanRepository) ListOpenOverdue(ctx context.Context, today time.Time) ([]loanDomain.Loan, error) {
	return r.list(r.db.WithContext(ctx).
		Where("status <> ? AND due_date IS NOT NULL AND due_date < ?", loanDomain.StatusPaid, loanDomain.DateOf(today)))
}

func (r *LoanRepository) list(q *gorm.DB) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}
