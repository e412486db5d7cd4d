package reminder

import (
	"context"
	"time"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/domain/notification"

	"go.uber.org/zap"
)

// Locker guards a sweep day against overlapping runs. It is advisory: the
// unique reminder index keeps sweeps correct without it.
type Locker interface {
	Acquire(ctx context.Context, day time.Time) (release func(), ok bool, err error)
}

type Result struct {
	Day       string                      `json:"day"`
	Emitted   map[notification.Bucket]int `json:"emitted"`
	Skipped   map[notification.Bucket]int `json:"skipped"`
	Failed    int                         `json:"failed"`
	Contended bool                        `json:"contended,omitempty"`
}

func (r *Result) Total() int {
	n := 0
	for _, v := range r.Emitted {
		n += v
	}
	return n
}

type Usecase struct {
	loans    loan.Repository
	notes    notification.Repository
	notifier notification.Dispatcher
	lock     Locker
	log      *zap.Logger
}

func NewUsecase(loans loan.Repository, notes notification.Repository, notifier notification.Dispatcher, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{loans: loans, notes: notes, notifier: notifier, log: log}
}

func (u *Usecase) WithLocker(l Locker) *Usecase {
	u.lock = l
	return u
}

// candidates returns the unpaid loans falling into bucket b on day.
func (u *Usecase) candidates(ctx context.Context, b notification.Bucket, day time.Time) ([]loan.Loan, error) {
	switch b {
	case notification.BucketDueToday:
		return u.loans.ListOpenDueOn(ctx, day)
	case notification.BucketDueTomorrow:
		return u.loans.ListOpenDueOn(ctx, day.AddDate(0, 0, 1))
	case notification.BucketDueSoon:
		return u.loans.ListOpenDueOn(ctx, day.AddDate(0, 0, 3))
	default:
		return u.loans.ListOpenOverdue(ctx, day)
	}
}

// Sweep emits at most one reminder per loan, bucket and calendar day of asOf.
// Running it again for the same day emits nothing new. Errors on a single
// loan are logged and counted; only a failed candidate scan aborts the run.
func (u *Usecase) Sweep(ctx context.Context, asOf time.Time) (*Result, error) {
	day := loan.DateOf(asOf)
	res := &Result{
		Day:     day.Format(loan.DateLayout),
		Emitted: make(map[notification.Bucket]int, len(notification.Buckets)),
		Skipped: make(map[notification.Bucket]int, len(notification.Buckets)),
	}
	log := u.log.With(zap.String("day", res.Day))

	if u.lock != nil {
		release, ok, err := u.lock.Acquire(ctx, day)
		switch {
		case err != nil:
			log.Warn("reminder sweep lock unavailable, continuing", zap.Error(err))
		case !ok:
			log.Info("reminder sweep already running")
			res.Contended = true
			return res, nil
		default:
			defer release()
		}
	}

	for _, b := range notification.Buckets {
		loans, err := u.candidates(ctx, b, day)
		if err != nil {
			return res, err
		}
		for i := range loans {
			l := &loans[i]
			exists, err := u.notes.ReminderExists(ctx, l.BorrowerID, l.ID, b, day)
			if err != nil {
				log.Error("reminder lookup failed", zap.String("loan_id", l.LoanID), zap.Error(err))
				res.Failed++
				continue
			}
			if exists {
				res.Skipped[b]++
				continue
			}
			n := notification.Reminder(l, b, day)
			created, err := u.notes.CreateReminder(ctx, n)
			if err != nil {
				log.Error("reminder insert failed", zap.String("loan_id", l.LoanID), zap.Error(err))
				res.Failed++
				continue
			}
			if !created {
				// another sweep got there first
				res.Skipped[b]++
				continue
			}
			res.Emitted[b]++
			if u.notifier != nil {
				u.notifier.Notify(ctx, n)
			}
		}
	}

	log.Info("reminder sweep finished",
		zap.Int("emitted", res.Total()),
		zap.Any("by_bucket", res.Emitted),
		zap.Int("failed", res.Failed))
	return res, nil
}
