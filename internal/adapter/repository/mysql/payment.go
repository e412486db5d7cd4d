package mysql

import (
	"context"

	paymentDomain "loan-tracker/internal/domain/payment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_id = ?", paymentID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PaymentRepository) Resolve(ctx context.Context, p *paymentDomain.Payment) error {
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("id = ? AND status = ?", p.ID, paymentDomain.StatusPending).
		Updates(map[string]any{
			"status":          p.Status,
			"rejected_reason": p.RejectedReason,
			"verified_at":     p.VerifiedAt,
			"verified_by":     p.VerifiedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return paymentDomain.ErrAlreadyResolved
	}
	return nil
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) CountByLoan(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&paymentDomain.Payment{}).Where("loan_id = ?", loanID).Count(&n).Error
	return n, err
}

func (r *PaymentRepository) ListPendingForLender(ctx context.Context, lenderID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Select("payments.*").
		Joins("JOIN loans ON loans.id = payments.loan_id").
		Where("payments.status = ? AND loans.lender_id = ?", paymentDomain.StatusPending, lenderID).
		Preload("Loan").
		Order("payments.created_at DESC, payments.id DESC").
		Find(&out).Error
	return out, err
}
