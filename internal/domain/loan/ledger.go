package loan

import "github.com/shopspring/decimal"

// MaxAmount is the largest value the decimal(15,2) amount columns hold.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// ValidAmount checks that amount is positive, carries at most two decimal
// places and fits the amount columns.
func ValidAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return ErrInvalidAmount
	case !amount.Equal(amount.Truncate(2)):
		return ErrAmountPrecision
	case amount.GreaterThan(MaxAmount):
		return ErrAmountTooLarge
	}
	return nil
}

// CheckPayment validates a new payment amount against the loan as it stands.
func (l *Loan) CheckPayment(amount decimal.Decimal) error {
	if l.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	if err := ValidAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(l.RemainingAmount) {
		return ErrAmountExceedsBalance
	}
	return nil
}

// ApplyAcceptedPayment moves the balance and status for a payment that has
// just become accepted. It must run on a row-locked loan inside the same
// transaction that accepts the payment.
func (l *Loan) ApplyAcceptedPayment(amount decimal.Decimal) {
	newRemaining := l.RemainingAmount.Sub(amount)
	if newRemaining.LessThanOrEqual(decimal.Zero) {
		l.RemainingAmount = decimal.Zero
		l.Status = StatusPaid
		return
	}
	l.RemainingAmount = newRemaining
	l.Status = StatusPartial
}
