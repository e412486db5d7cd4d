// Command reminders runs one reminder sweep and exits. Schedule it daily
// from cron, or pass -date to replay a specific day.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"loan-tracker/internal/adapter/repository/mysql"
	"loan-tracker/internal/config"
	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/infrastructure/cache"
	"loan-tracker/internal/infrastructure/db"
	"loan-tracker/internal/infrastructure/push"
	"loan-tracker/internal/logger"
	"loan-tracker/internal/notify"
	ucReminder "loan-tracker/internal/usecase/reminder"
)

func main() {
	date := flag.String("date", "", "sweep day as YYYY-MM-DD (default: today in REMINDER_TZ)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(cfg.AppEnv)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}
	loc, _ := cfg.Location()

	asOf := time.Now().In(loc)
	if *date != "" {
		d, err := loan.ParseDate(*date)
		if err != nil {
			log.Fatal("bad -date", zap.String("date", *date), zap.Error(err))
		}
		asOf = d
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), false)
	if err != nil {
		log.Fatal("mysql", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Warn("redis unavailable, sweeping without lock", zap.Error(err))
	} else {
		defer func() { _ = rdb.Close() }()
	}
	uc := newSweeper(cfg, gdb, rdb, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	res, err := uc.Sweep(ctx, asOf)
	if err != nil {
		log.Error("reminder sweep failed", zap.Error(err))
		os.Exit(1)
	}
	if res.Failed > 0 {
		os.Exit(2)
	}
}

// newSweeper wires the sweep. rdb may be nil: the day lock is skipped and
// queued pushes fall back to the log.
func newSweeper(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client, log *zap.Logger) *ucReminder.Usecase {
	var sender push.Sender = push.NewLogSender(log)
	switch cfg.PushMode {
	case config.PushModeFCM:
		sender = push.NewHTTPSender(cfg.PushEndpoint, cfg.PushServerKey, cfg.PushTimeout)
	case config.PushModeQueue:
		if rdb != nil {
			// the API process drains the queue
			sender = push.NewQueueSender(rdb, "")
		} else {
			log.Warn("push queue unavailable, logging pushes instead")
		}
	}

	uc := ucReminder.NewUsecase(
		mysql.NewLoanRepository(gdb),
		mysql.NewNotificationRepository(gdb),
		notify.NewDispatcher(mysql.NewDeviceRepository(gdb), sender, cfg.PushTimeout, log),
		log,
	)
	if rdb != nil {
		uc.WithLocker(cache.NewSweepLock(rdb, 10*time.Minute))
	}
	return uc
}
