// Package scheduler runs a job once a day at a wall-clock time.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Job func(ctx context.Context, now time.Time)

type Daily struct {
	hour, minute int
	loc          *time.Location
	tick         time.Duration
	now          func() time.Time
	log          *zap.Logger
	lastRun      string
}

func NewDaily(hour, minute int, loc *time.Location, log *zap.Logger) *Daily {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Daily{hour: hour, minute: minute, loc: loc, tick: time.Minute, now: time.Now, log: log}
}

// due reports whether the job should fire at t. It fires once per local
// day, on the first check at or after the configured time.
func (d *Daily) due(t time.Time) bool {
	t = t.In(d.loc)
	day := t.Format("2006-01-02")
	if day == d.lastRun {
		return false
	}
	if t.Hour() < d.hour || (t.Hour() == d.hour && t.Minute() < d.minute) {
		return false
	}
	d.lastRun = day
	return true
}

// Start checks the clock every tick until ctx is done. A process started
// after the daily time runs the job on its first tick.
func (d *Daily) Start(ctx context.Context, job Job) {
	d.log.Info("daily scheduler started",
		zap.Int("hour", d.hour), zap.Int("minute", d.minute), zap.String("tz", d.loc.String()))
	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if now := d.now().In(d.loc); d.due(now) {
				job(ctx, now)
			}
		}
	}
}
