package payment

import (
	"time"

	"loan-tracker/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash    Method = "cash"
	MethodEWallet Method = "e_wallet"
)

func (m Method) Valid() bool { return m == MethodCash || m == MethodEWallet }

// SelfVerifying methods are applied to the ledger without lender action.
func (m Method) SelfVerifying() bool { return m == MethodCash }

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

const MaxReasonLength = 500

type Payment struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID      string          `gorm:"column:payment_id;size:32;not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanRowID      uint64          `gorm:"column:loan_id;not null;index:idx_payments_loan_status,priority:1" json:"-"`
	Loan           *loan.Loan      `gorm:"foreignKey:LoanRowID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	PayerID        string          `gorm:"column:payer_id;size:32;not null;index" json:"payer_id"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(15,2);not null" json:"amount"`
	Method         Method          `gorm:"column:payment_method;size:16;not null" json:"payment_method"`
	ProofURL       *string         `gorm:"column:proof_url;size:500" json:"proof_url"`
	Status         Status          `gorm:"column:status;size:16;not null;index:idx_payments_loan_status,priority:2" json:"status"`
	RejectedReason *string         `gorm:"column:rejected_reason;size:500" json:"rejected_reason"`
	VerifiedAt     *time.Time      `gorm:"column:verified_at" json:"verified_at"`
	VerifiedBy     *string         `gorm:"column:verified_by;size:32" json:"verified_by"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) IsPending() bool { return p.Status == StatusPending }

func (p *Payment) Accept(verifier string, at time.Time) {
	p.Status = StatusAccepted
	p.VerifiedBy = &verifier
	p.VerifiedAt = &at
}

func (p *Payment) Reject(verifier, reason string, at time.Time) {
	p.Status = StatusRejected
	p.RejectedReason = &reason
	p.VerifiedBy = &verifier
	p.VerifiedAt = &at
}
