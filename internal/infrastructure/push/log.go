package push

import (
	"context"

	"go.uber.org/zap"
)

// LogSender only logs messages. Used when no provider is configured.
type LogSender struct{ log *zap.Logger }

func NewLogSender(log *zap.Logger) *LogSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, m Message) error {
	s.log.Info("push",
		zap.String("token", m.Token),
		zap.String("title", m.Title),
		zap.Any("data", m.Data))
	return nil
}
