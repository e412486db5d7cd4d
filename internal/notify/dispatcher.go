// Package notify pushes recorded notifications to the recipient's devices.
package notify

import (
	"context"
	"errors"
	"time"

	"loan-tracker/internal/domain/device"
	"loan-tracker/internal/domain/notification"
	"loan-tracker/internal/infrastructure/push"

	"go.uber.org/zap"
)

var _ notification.Dispatcher = (*Dispatcher)(nil)

type Dispatcher struct {
	devices device.Repository
	sender  push.Sender
	timeout time.Duration
	log     *zap.Logger
}

func NewDispatcher(devices device.Repository, sender push.Sender, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{devices: devices, sender: sender, timeout: timeout, log: log}
}

// Notify sends n to every device of its recipient within the dispatcher's
// timeout. It detaches from the caller's cancellation so a finished request
// does not abort delivery. Failures are logged, never returned; the result
// reports whether at least one device accepted the message.
func (d *Dispatcher) Notify(ctx context.Context, n *notification.Notification) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	log := d.log.With(zap.String("user_id", n.UserID), zap.String("type", string(n.Type)))
	devs, err := d.devices.ListByUser(ctx, n.UserID)
	if err != nil {
		log.Warn("push: device lookup failed", zap.Error(err))
		return false
	}

	delivered := false
	for _, dev := range devs {
		err := d.sender.Send(ctx, push.Message{
			Token: dev.Token,
			Title: n.Title,
			Body:  n.Message,
			Data:  n.Payload(),
		})
		switch {
		case err == nil:
			delivered = true
		case errors.Is(err, push.ErrUnregistered):
			log.Info("push: dropping unregistered token", zap.String("platform", dev.Platform))
			if err := d.devices.DeleteByToken(ctx, dev.Token); err != nil {
				log.Warn("push: token cleanup failed", zap.Error(err))
			}
		default:
			log.Warn("push: send failed", zap.String("platform", dev.Platform), zap.Error(err))
		}
	}
	return delivered
}
