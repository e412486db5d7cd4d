package payment

import "loan-tracker/internal/domain/errs"

var (
	ErrNotFound        = errs.NotFound("payment_not_found", "payment not found")
	ErrAlreadyResolved = errs.Conflict("payment_already_resolved", "payment has already been resolved")
	ErrExceedsBalance  = errs.Conflict("payment_exceeds_balance", "payment amount exceeds the loan's current remaining balance")
	ErrInvalidMethod   = errs.Validation("invalid_payment_method", "payment method must be cash or e_wallet")
	ErrProofRequired   = errs.Validation("proof_required", "proof of payment is required for e_wallet payments")
	ErrReasonRequired  = errs.Validation("reason_required", "rejection reason is required")
	ErrReasonTooLong   = errs.Validation("reason_too_long", "rejection reason must be at most 500 characters")
)
