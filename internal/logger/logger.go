package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Log is the process-wide logger. It discards everything until Init runs.
var Log = zap.NewNop()

// New builds a JSON production logger for APP_ENV=production and a console
// development logger otherwise.
func New(env string) (*zap.Logger, error) {
	switch strings.ToLower(env) {
	case "production", "prod":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}

func Init(env string) *zap.Logger {
	Log = zap.Must(New(env))
	return Log
}
