package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpadp "loan-tracker/internal/adapter/http"
	"loan-tracker/internal/adapter/middleware"
	"loan-tracker/internal/adapter/repository/mysql"
	"loan-tracker/internal/config"
	"loan-tracker/internal/infrastructure/cache"
	"loan-tracker/internal/infrastructure/db"
	"loan-tracker/internal/infrastructure/push"
	"loan-tracker/internal/logger"
	"loan-tracker/internal/notify"
	"loan-tracker/internal/scheduler"
	ucLoan "loan-tracker/internal/usecase/loan"
	ucNotification "loan-tracker/internal/usecase/notification"
	ucPayment "loan-tracker/internal/usecase/payment"
	ucReminder "loan-tracker/internal/usecase/reminder"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.AppEnv)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}
	loc, _ := cfg.Location()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), !cfg.IsProduction())
	if err != nil {
		log.Fatal("mysql", zap.Error(err))
	}
	if err := mysql.Migrate(gdb); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		// health reports redis as failing until it comes back
		log.Warn("redis unavailable, starting degraded", zap.Error(err))
		rdb = cache.NewClient(cfg.RedisAddr, cfg.RedisDB)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal("mysql handle", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loans := mysql.NewLoanRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	notes := mysql.NewNotificationRepository(gdb)
	devices := mysql.NewDeviceRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	sender := buildSender(ctx, cfg, rdb, log)
	dispatcher := notify.NewDispatcher(devices, sender, cfg.PushTimeout, log)
	clock := func() time.Time { return time.Now().In(loc) }

	loanUC := ucLoan.NewUsecase(loans, payments, tx, dispatcher).
		WithDefaultCurrency(cfg.DefaultCurrency).
		WithClock(clock)
	reminderUC := ucReminder.NewUsecase(loans, notes, dispatcher, log).
		WithLocker(cache.NewSweepLock(rdb, 10*time.Minute))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	httpadp.Routes{
		Health: httpadp.NewHandler().
			WithDependency("mysql", sqlDB.PingContext).
			WithDependency("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		Loans:         httpadp.NewLoanHandler(loanUC),
		Payments:      httpadp.NewPaymentHandler(ucPayment.NewUsecase(loans, payments, tx, dispatcher)),
		Notifications: httpadp.NewNotificationHandler(ucNotification.NewUsecase(notes, devices)),
		Reminders:     httpadp.NewReminderHandler(reminderUC, cfg.AdminToken, loc),
		Auth:          middleware.JWTAuth([]byte(cfg.JWTSecret)),
		Idempotency:   middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
		PaymentLimit:  middleware.RateLimit(cfg.RateLimitPerSecond),
	}.Register(e)

	if cfg.ReminderScheduleEnabled {
		go scheduler.NewDaily(cfg.ReminderHour, cfg.ReminderMinute, loc, log).
			Start(ctx, func(ctx context.Context, now time.Time) {
				if _, err := reminderUC.Sweep(ctx, now); err != nil {
					log.Error("scheduled reminder sweep failed", zap.Error(err))
				}
			})
	}

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

// buildSender picks the push transport. In queue mode a worker drains the
// redis outbox into the FCM sender, or into the log when no key is set.
func buildSender(ctx context.Context, cfg *config.Config, rdb *redis.Client, log *zap.Logger) push.Sender {
	switch cfg.PushMode {
	case config.PushModeFCM:
		return push.NewHTTPSender(cfg.PushEndpoint, cfg.PushServerKey, cfg.PushTimeout)
	case config.PushModeQueue:
		var next push.Sender = push.NewLogSender(log)
		if cfg.PushServerKey != "" {
			next = push.NewHTTPSender(cfg.PushEndpoint, cfg.PushServerKey, cfg.PushTimeout)
		}
		go push.NewWorker(rdb, "", next, log).Run(ctx)
		return push.NewQueueSender(rdb, "")
	default:
		return push.NewLogSender(log)
	}
}
