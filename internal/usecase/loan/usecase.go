package loan

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/domain/notification"
	"loan-tracker/internal/domain/payment"
	"loan-tracker/internal/domain/uow"
	"loan-tracker/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	loans    loan.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
	notifier notification.Dispatcher
	currency string
	now      func() time.Time
}

func NewUsecase(loans loan.Repository, payments payment.Repository, tx uow.UnitOfWork, notifier notification.Dispatcher) *Usecase {
	return &Usecase{
		loans:    loans,
		payments: payments,
		uow:      tx,
		notifier: notifier,
		currency: loan.DefaultCurrency,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) WithDefaultCurrency(c string) *Usecase {
	if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
		u.currency = c
	}
	return u
}

// WithClock sets the clock used for "today"; its location decides the calendar day.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) today() time.Time { return loan.DateOf(u.now()) }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}

func normalizeDescription(d *string) (*string, error) {
	if d == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*d)
	if s == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(s) > loan.MaxDescriptionLength {
		return nil, loan.ErrDescriptionTooLong
	}
	return &s, nil
}

func (u *Usecase) futureDate(d time.Time) (*time.Time, error) {
	day := loan.DateOf(d)
	if !day.After(u.today()) {
		return nil, loan.ErrDueDateNotInFuture
	}
	return &day, nil
}

// Create records a loan given by lenderID and tells the borrower about it.
func (u *Usecase) Create(ctx context.Context, lenderID string, in CreateLoanInput) (*LoanDTO, error) {
	if in.BorrowerID == lenderID {
		return nil, loan.ErrSelfLoan
	}
	if err := loan.ValidAmount(in.Amount); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = u.currency
	}
	if len(currency) > loan.MaxCurrencyLen {
		return nil, loan.ErrInvalidCurrency
	}
	desc, err := normalizeDescription(in.Description)
	if err != nil {
		return nil, err
	}
	var due *time.Time
	if in.DueDate != nil {
		if due, err = u.futureDate(*in.DueDate); err != nil {
			return nil, err
		}
	}

	l := &loan.Loan{
		LoanID:          id.NewID32(),
		LenderID:        lenderID,
		BorrowerID:      in.BorrowerID,
		Amount:          in.Amount,
		Currency:        currency,
		Description:     desc,
		DueDate:         due,
		Status:          loan.StatusPending,
		RemainingAmount: in.Amount,
	}

	var sent []*notification.Notification
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		n := notification.LoanCreated(l)
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		sent = append(sent, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	notification.DispatchAll(ctx, u.notifier, sent)

	dto := toDTO(l, u.today())
	return &dto, nil
}

// Get returns a loan visible to userID as lender or borrower.
func (u *Usecase) Get(ctx context.Context, userID, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, notFound(err)
	}
	if !l.IsParty(userID) {
		return nil, loan.ErrNotFound
	}
	dto := toDTO(l, u.today())
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context, userID string) (*LoanListDTO, error) {
	given, err := u.loans.ListByLender(ctx, userID)
	if err != nil {
		return nil, err
	}
	taken, err := u.loans.ListByBorrower(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := u.today()
	return &LoanListDTO{Given: toDTOs(given, today), Taken: toDTOs(taken, today)}, nil
}

// Update changes description and due date. Only the lender may do so, and
// only while the loan is unpaid. A due date change notifies the borrower.
func (u *Usecase) Update(ctx context.Context, lenderID, loanID string, in UpdateLoanInput) (*LoanDTO, error) {
	var (
		out  *loan.Loan
		sent []*notification.Notification
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.IsParty(lenderID) {
			return loan.ErrNotFound
		}
		if l.LenderID != lenderID {
			return loan.ErrNotLender
		}
		if l.Status == loan.StatusPaid {
			return loan.ErrPaidLocked
		}

		if in.Description != nil {
			desc, err := normalizeDescription(in.Description)
			if err != nil {
				return err
			}
			l.Description = desc
		}

		before := l.DueDate
		switch {
		case in.RemoveDueDate:
			l.DueDate = nil
		case in.DueDate != nil:
			day := loan.DateOf(*in.DueDate)
			if before == nil || !before.Equal(day) {
				if _, err := u.futureDate(day); err != nil {
					return err
				}
			}
			l.DueDate = &day
		}

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if n := notification.DueDateUpdate(l, before, l.DueDate); n != nil {
			if err := r.Notifications.Create(ctx, n); err != nil {
				return err
			}
			sent = append(sent, n)
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	notification.DispatchAll(ctx, u.notifier, sent)

	dto := toDTO(out, u.today())
	return &dto, nil
}

// Delete removes a pending loan that has no payments, lender only.
func (u *Usecase) Delete(ctx context.Context, lenderID, loanID string) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.IsParty(lenderID) {
			return loan.ErrNotFound
		}
		if l.LenderID != lenderID {
			return loan.ErrNotLender
		}
		if l.Status != loan.StatusPending {
			return loan.ErrNotDeletable
		}
		n, err := r.Payments.CountByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return loan.ErrNotDeletable
		}
		return r.Loans.Delete(ctx, l)
	})
	return notFound(err)
}

// WithFriend lists loans in both directions between userID and friendID
// with the outstanding balance each way.
func (u *Usecase) WithFriend(ctx context.Context, userID, friendID string) (*FriendLoansDTO, error) {
	given, err := u.loans.ListBetween(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	taken, err := u.loans.ListBetween(ctx, friendID, userID)
	if err != nil {
		return nil, err
	}
	owed, owe := sumRemaining(given), sumRemaining(taken)
	today := u.today()
	return &FriendLoansDTO{
		FriendID:  friendID,
		Given:     toDTOs(given, today),
		Taken:     toDTOs(taken, today),
		OwedToYou: owed,
		YouOwe:    owe,
		Net:       owed.Sub(owe),
	}, nil
}

func sumRemaining(ls []loan.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range ls {
		total = total.Add(l.RemainingAmount)
	}
	return total
}

func (u *Usecase) Summary(ctx context.Context, userID string) (*SummaryDTO, error) {
	given, err := u.loans.ListByLender(ctx, userID)
	if err != nil {
		return nil, err
	}
	taken, err := u.loans.ListByBorrower(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := u.today()
	out := &SummaryDTO{OwedToYou: sumRemaining(given), YouOwe: sumRemaining(taken)}
	out.Net = out.OwedToYou.Sub(out.YouOwe)
	out.OpenLent, out.OverdueLent, out.PaidLent = countStates(given, today)
	out.OpenBorrowed, out.OverdueBorrowed, out.PaidBorrowed = countStates(taken, today)
	return out, nil
}

func countStates(ls []loan.Loan, today time.Time) (open, overdue, paid int) {
	for i := range ls {
		if ls[i].Status == loan.StatusPaid {
			paid++
			continue
		}
		open++
		if ls[i].DaysOverdue(today) > 0 {
			overdue++
		}
	}
	return open, overdue, paid
}

// Remind sends a lender-initiated reminder to the borrower. Unlike the
// scheduled reminders these are not deduplicated.
func (u *Usecase) Remind(ctx context.Context, lenderID, loanID, message string) (*notification.Notification, error) {
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > notification.MaxCustomMessageLength {
		return nil, notification.ErrMessageTooLong
	}
	var n *notification.Notification
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.IsParty(lenderID) {
			return loan.ErrNotFound
		}
		if l.LenderID != lenderID {
			return loan.ErrNotLender
		}
		if l.Status == loan.StatusPaid {
			return loan.ErrAlreadyPaid
		}
		n = notification.ManualReminder(l, message)
		return r.Notifications.Create(ctx, n)
	})
	if err != nil {
		return nil, notFound(err)
	}
	notification.DispatchAll(ctx, u.notifier, []*notification.Notification{n})
	return n, nil
}
