package loan

import "loan-tracker/internal/domain/errs"

var (
	ErrNotFound             = errs.NotFound("loan_not_found", "loan not found")
	ErrSelfLoan             = errs.Validation("self_loan", "cannot create loan to yourself")
	ErrInvalidAmount        = errs.Validation("invalid_amount", "amount must be greater than zero")
	ErrAmountPrecision      = errs.Validation("amount_precision", "amount must have at most 2 decimal places")
	ErrAmountTooLarge       = errs.Validation("amount_too_large", "amount must not exceed 9999999999999.99")
	ErrInvalidCurrency      = errs.Validation("invalid_currency", "currency must be at most 10 characters")
	ErrDescriptionTooLong   = errs.Validation("description_too_long", "description must be at most 500 characters")
	ErrDueDateNotInFuture   = errs.Validation("due_date_not_in_future", "due date must be after today")
	ErrAlreadyPaid          = errs.Validation("loan_already_paid", "loan is already paid")
	ErrAmountExceedsBalance = errs.Validation("amount_exceeds_balance", "payment amount exceeds remaining balance")
	ErrNotLender            = errs.Forbidden("not_loan_lender", "only the lender can perform this action")
	ErrPaidLocked           = errs.Conflict("loan_paid", "paid loans cannot be modified")
	ErrNotDeletable         = errs.Conflict("loan_not_deletable", "only pending loans without payments can be deleted")
)
