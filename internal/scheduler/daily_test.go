package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestDaily_due(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Yangon")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	d := NewDaily(9, 30, loc, nil)
	at := func(day, h, m int) time.Time { return time.Date(2026, 10, day, h, m, 0, 0, loc) }

	steps := []struct {
		t    time.Time
		want bool
	}{
		{at(16, 9, 29), false},
		{at(16, 9, 30), true},
		{at(16, 9, 31), false}, // already ran today
		{at(16, 23, 59), false},
		{at(17, 0, 5), false},
		{at(17, 11, 0), true}, // late start still fires once
		{at(17, 11, 1), false},
	}
	for i, s := range steps {
		if got := d.due(s.t); got != s.want {
			t.Fatalf("step %d (%v): due=%v want %v", i, s.t, got, s.want)
		}
	}
}

func TestDaily_UsesConfiguredZone(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	d := NewDaily(8, 0, loc, nil)
	// 01:00 UTC is 08:00 in UTC+7
	if !d.due(time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected due at 08:00 local")
	}
}

func TestDaily_StartRunsJobAndStops(t *testing.T) {
	d := NewDaily(0, 0, time.UTC, nil)
	d.tick = 5 * time.Millisecond
	d.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	var runs int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Start(ctx, func(context.Context, time.Time) { atomic.AddInt32(&runs, 1) })
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if n := atomic.LoadInt32(&runs); n != 1 {
		t.Fatalf("job ran %d times, want 1", n)
	}
}
