package cache

import (
	"context"
	"time"

	"loan-tracker/pkg/id"

	"github.com/redis/go-redis/v9"
)

const sweepLockPrefix = "reminders:sweep:"

// releaseScript deletes the key only while it still holds our token, so a
// sweep that outlived its TTL cannot drop a later holder's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SweepLock holds a per-day redis key while a reminder sweep runs so two
// replicas do not scan the same day at once.
type SweepLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSweepLock(rdb *redis.Client, ttl time.Duration) *SweepLock {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SweepLock{rdb: rdb, ttl: ttl}
}

func sweepKey(day time.Time) string { return sweepLockPrefix + day.Format("2006-01-02") }

func (l *SweepLock) Acquire(ctx context.Context, day time.Time) (func(), bool, error) {
	key, token := sweepKey(day), id.NewID32()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil || !ok {
		return nil, ok, err
	}
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
	}
	return release, true, nil
}
