package payment

import (
	"time"

	"loan-tracker/internal/domain/loan"
	domain "loan-tracker/internal/domain/payment"

	"github.com/shopspring/decimal"
)

type SubmitInput struct {
	LoanID   string
	Amount   decimal.Decimal
	Method   domain.Method
	ProofURL *string
}

// LoanBalance is the ledger state of the loan after the operation.
type LoanBalance struct {
	LoanID          string          `json:"loan_id"`
	Status          string          `json:"status"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

type PaymentDTO struct {
	PaymentID      string          `json:"payment_id"`
	LoanID         string          `json:"loan_id,omitempty"`
	PayerID        string          `json:"payer_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"payment_method"`
	ProofURL       *string         `json:"proof_url"`
	Status         string          `json:"status"`
	RejectedReason *string         `json:"rejected_reason,omitempty"`
	VerifiedAt     *time.Time      `json:"verified_at"`
	VerifiedBy     *string         `json:"verified_by"`
	CreatedAt      time.Time       `json:"created_at"`
	Loan           *LoanBalance    `json:"loan,omitempty"`
}

func toDTO(p *domain.Payment, loanRef string) PaymentDTO {
	return PaymentDTO{
		PaymentID:      p.PaymentID,
		LoanID:         loanRef,
		PayerID:        p.PayerID,
		Amount:         p.Amount,
		Method:         string(p.Method),
		ProofURL:       p.ProofURL,
		Status:         string(p.Status),
		RejectedReason: p.RejectedReason,
		VerifiedAt:     p.VerifiedAt,
		VerifiedBy:     p.VerifiedBy,
		CreatedAt:      p.CreatedAt,
	}
}

func withBalance(dto PaymentDTO, l *loan.Loan) *PaymentDTO {
	dto.Loan = &LoanBalance{LoanID: l.LoanID, Status: string(l.Status), RemainingAmount: l.RemainingAmount}
	return &dto
}
