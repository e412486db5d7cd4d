package payment

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/domain/notification"
	domain "loan-tracker/internal/domain/payment"
	"loan-tracker/internal/domain/uow"
	"loan-tracker/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	loans    loan.Repository
	payments domain.Repository
	uow      uow.UnitOfWork
	notifier notification.Dispatcher
	now      func() time.Time
}

func NewUsecase(loans loan.Repository, payments domain.Repository, tx uow.UnitOfWork, notifier notification.Dispatcher) *Usecase {
	return &Usecase{
		loans:    loans,
		payments: payments,
		uow:      tx,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit records a repayment by the borrower. Cash is accepted on the spot
// and applied to the ledger in the same transaction; e-wallet payments wait
// for the lender's verification.
func (u *Usecase) Submit(ctx context.Context, payerID string, in SubmitInput) (*PaymentDTO, error) {
	if !in.Method.Valid() {
		return nil, domain.ErrInvalidMethod
	}
	var proof *string
	if in.ProofURL != nil {
		if s := strings.TrimSpace(*in.ProofURL); s != "" {
			proof = &s
		}
	}
	if in.Method == domain.MethodEWallet && proof == nil {
		return nil, domain.ErrProofRequired
	}

	var (
		out  *PaymentDTO
		sent []*notification.Notification
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		// non-borrowers must not learn that the loan exists
		if l.BorrowerID != payerID {
			return loan.ErrNotFound
		}
		if err := l.CheckPayment(in.Amount); err != nil {
			return err
		}

		p := &domain.Payment{
			PaymentID: id.NewID32(),
			LoanRowID: l.ID,
			PayerID:   payerID,
			Amount:    in.Amount,
			Method:    in.Method,
			ProofURL:  proof,
			Status:    domain.StatusPending,
		}
		if in.Method.SelfVerifying() {
			p.Accept(l.LenderID, u.now())
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		var n *notification.Notification
		if p.Status == domain.StatusAccepted {
			l.ApplyAcceptedPayment(p.Amount)
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			n = notification.CashPaymentRecorded(l, p)
		} else {
			n = notification.PaymentProofSubmitted(l, p)
		}
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		sent = append(sent, n)
		out = withBalance(toDTO(p, l.LoanID), l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	notification.DispatchAll(ctx, u.notifier, sent)
	return out, nil
}

// resolve runs a verification decision with the loan row locked. The payment
// is re-read under the lock so a concurrent decision is observed.
func (u *Usecase) resolve(ctx context.Context, lenderID, paymentID string, decide func(r uow.Repos, l *loan.Loan, p *domain.Payment) (*notification.Notification, error)) (*PaymentDTO, error) {
	p, err := u.payments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var (
		out  *PaymentDTO
		sent []*notification.Notification
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByIDForUpdate(ctx, p.LoanRowID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if !l.IsParty(lenderID) {
			return domain.ErrNotFound
		}
		if l.LenderID != lenderID {
			return loan.ErrNotLender
		}
		locked, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if !locked.IsPending() {
			return domain.ErrAlreadyResolved
		}

		n, err := decide(r, l, locked)
		if err != nil {
			return err
		}
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		sent = append(sent, n)
		out = withBalance(toDTO(locked, l.LoanID), l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	notification.DispatchAll(ctx, u.notifier, sent)
	return out, nil
}

// Accept verifies a pending payment and applies it to the loan balance.
// A payment larger than what is still owed is refused and stays pending.
func (u *Usecase) Accept(ctx context.Context, lenderID, paymentID string) (*PaymentDTO, error) {
	return u.resolve(ctx, lenderID, paymentID, func(r uow.Repos, l *loan.Loan, p *domain.Payment) (*notification.Notification, error) {
		if p.Amount.GreaterThan(l.RemainingAmount) {
			return nil, domain.ErrExceedsBalance
		}
		p.Accept(lenderID, u.now())
		if err := r.Payments.Resolve(ctx, p); err != nil {
			return nil, err
		}
		l.ApplyAcceptedPayment(p.Amount)
		if err := r.Loans.Save(ctx, l); err != nil {
			return nil, err
		}
		return notification.PaymentAccepted(l, p), nil
	})
}

// Reject declines a pending payment with a reason. The loan is untouched.
func (u *Usecase) Reject(ctx context.Context, lenderID, paymentID, reason string) (*PaymentDTO, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}
	if utf8.RuneCountInString(reason) > domain.MaxReasonLength {
		return nil, domain.ErrReasonTooLong
	}
	return u.resolve(ctx, lenderID, paymentID, func(r uow.Repos, l *loan.Loan, p *domain.Payment) (*notification.Notification, error) {
		p.Reject(lenderID, reason, u.now())
		if err := r.Payments.Resolve(ctx, p); err != nil {
			return nil, err
		}
		return notification.PaymentRejected(l, p, reason), nil
	})
}

// PendingForLender lists payments awaiting lenderID's verification.
func (u *Usecase) PendingForLender(ctx context.Context, lenderID string) ([]PaymentDTO, error) {
	ps, err := u.payments.ListPendingForLender(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(ps))
	for i := range ps {
		ref := ""
		if ps[i].Loan != nil {
			ref = ps[i].Loan.LoanID
		}
		out = append(out, toDTO(&ps[i], ref))
	}
	return out, nil
}

// ListByLoan returns the payments of a loan visible to userID.
func (u *Usecase) ListByLoan(ctx context.Context, userID, loanID string) ([]PaymentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	if !l.IsParty(userID) {
		return nil, loan.ErrNotFound
	}
	ps, err := u.payments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(ps))
	for i := range ps {
		out = append(out, toDTO(&ps[i], l.LoanID))
	}
	return out, nil
}
