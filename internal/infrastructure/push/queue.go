package push

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultQueueKey = "push:outbox"

// QueueSender enqueues messages on a redis list; a Worker drains it.
type QueueSender struct {
	rdb *redis.Client
	key string
}

func NewQueueSender(rdb *redis.Client, key string) *QueueSender {
	if key == "" {
		key = DefaultQueueKey
	}
	return &QueueSender{rdb: rdb, key: key}
}

func (q *QueueSender) Send(ctx context.Context, m Message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, b).Err()
}

// Worker pops queued messages and forwards them to a Sender.
type Worker struct {
	rdb  *redis.Client
	key  string
	next Sender
	log  *zap.Logger
	wait time.Duration
}

func NewWorker(rdb *redis.Client, key string, next Sender, log *zap.Logger) *Worker {
	if key == "" {
		key = DefaultQueueKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{rdb: rdb, key: key, next: next, log: log, wait: 2 * time.Second}
}

// ProcessOne blocks up to the worker's wait for one message. It returns
// false when the queue stayed empty.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	res, err := w.rdb.BRPop(ctx, w.wait, w.key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var m Message
	if err := json.Unmarshal([]byte(res[1]), &m); err != nil {
		w.log.Warn("push worker: dropping malformed message", zap.Error(err))
		return true, nil
	}
	if err := w.next.Send(ctx, m); err != nil {
		w.log.Warn("push worker: send failed", zap.String("title", m.Title), zap.Error(err))
	}
	return true, nil
}

// Run drains the queue until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.ProcessOne(ctx); err != nil && ctx.Err() == nil {
			w.log.Error("push worker: pop failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}
}
