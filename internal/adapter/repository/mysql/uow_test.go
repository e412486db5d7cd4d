package mysql

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	loanDomain "loan-tracker/internal/domain/loan"
	notificationDomain "loan-tracker/internal/domain/notification"
	paymentDomain "loan-tracker/internal/domain/payment"
	"loan-tracker/internal/domain/uow"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	noteRepo := NewNotificationRepository(db)

	l := makeLoan(lenderA, borrowerB, "100", nil)
	var note *notificationDomain.Notification
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("loan auto ID not set")
		}
		note = notificationDomain.LoanCreated(l)
		return r.Notifications.Create(ctx, note)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := loanRepo.GetByLoanID(ctx, l.LoanID); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	if _, err := noteRepo.GetByNotificationID(ctx, borrowerB, note.NotificationID); err != nil {
		t.Fatalf("notification not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	noteRepo := NewNotificationRepository(db)

	sentinel := errors.New("boom")
	l := makeLoan(lenderA, borrowerB, "100", nil)
	var note *notificationDomain.Notification

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		note = notificationDomain.LoanCreated(l)
		if err := r.Notifications.Create(ctx, note); err != nil {
			return err
		}
		return sentinel
	})

	if _, err := loanRepo.GetByLoanID(ctx, l.LoanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
	if _, err := noteRepo.GetByNotificationID(ctx, borrowerB, note.NotificationID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected notification absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	payRepo := NewPaymentRepository(db)

	seed := seedLoan(t, loanRepo, makeLoan(lenderA, borrowerB, "100", nil))
	p := makePayment(seed, "40", paymentDomain.MethodCash)

	if err := guow.WithinLoanTx(ctx, seed.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.LoanID != seed.LoanID || l.Status != loanDomain.StatusPending {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}
		p.Accept(borrowerB, time.Now().UTC())
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		l.ApplyAcceptedPayment(p.Amount)
		return r.Loans.Save(ctx, l)
	}); err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := loanRepo.GetByLoanID(ctx, seed.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID post-commit: %v", err)
	}
	if got.Status != loanDomain.StatusPartial || !got.RemainingAmount.Equal(dec("60")) {
		t.Fatalf("ledger not updated: %s %s", got.Status, got.RemainingAmount)
	}
	if _, err := payRepo.GetByPaymentID(ctx, p.PaymentID); err != nil {
		t.Fatalf("payment not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	payRepo := NewPaymentRepository(db)

	seed := seedLoan(t, loanRepo, makeLoan(lenderA, borrowerB, "100", nil))
	p := makePayment(seed, "100", paymentDomain.MethodCash)
	sentinel := errors.New("stop")

	_ = guow.WithinLoanTx(ctx, seed.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		l.ApplyAcceptedPayment(p.Amount)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		return sentinel
	})

	got, err := loanRepo.GetByLoanID(ctx, seed.LoanID)
	if err != nil {
		t.Fatalf("post-rollback GetByLoanID: %v", err)
	}
	if got.Status != loanDomain.StatusPending || !got.RemainingAmount.Equal(dec("100")) {
		t.Fatalf("expected untouched loan after rollback, got %s %s", got.Status, got.RemainingAmount)
	}
	if _, err := payRepo.GetByPaymentID(ctx, p.PaymentID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected payment absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(ctx, "ffffffffffffffffffffffffffffffff", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

// Concurrent ledger writers serialize on the loan row: every payment lands
// exactly once and the balance never goes negative.
func TestGormUoW_WithinLoanTx_SerializesLedgerWrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	seed := seedLoan(t, loanRepo, makeLoan(lenderA, borrowerB, "100", nil))

	const writers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- guow.WithinLoanTx(ctx, seed.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
				if err := l.CheckPayment(dec("25")); err != nil {
					return err
				}
				p := makePayment(l, "25", paymentDomain.MethodCash)
				p.Accept(borrowerB, time.Now().UTC())
				if err := r.Payments.Create(ctx, p); err != nil {
					return err
				}
				l.ApplyAcceptedPayment(p.Amount)
				return r.Loans.Save(ctx, l)
			})
		}()
	}
	wg.Wait()
	close(errCh)

	var ok, rejected int
	for err := range errCh {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, loanDomain.ErrAlreadyPaid), errors.Is(err, loanDomain.ErrAmountExceedsBalance):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 4 || rejected != writers-4 {
		t.Fatalf("ok=%d rejected=%d", ok, rejected)
	}

	got, _ := loanRepo.GetByLoanID(ctx, seed.LoanID)
	if got.Status != loanDomain.StatusPaid || !got.RemainingAmount.IsZero() {
		t.Fatalf("final ledger: %s %s", got.Status, got.RemainingAmount)
	}
}
