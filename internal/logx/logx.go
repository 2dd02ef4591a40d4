// Package logx carries a request-scoped logger through the context so that
// every log line emitted while serving a request keeps its request-id prefix.
package logx

import (
	"context"
	"log"
)

type ctxKey string

const loggerKey ctxKey = "logger"

func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request logger, or the default logger when called
// outside of a request (detached recomputations, CLIs, tests).
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return logger
	}
	return log.Default()
}
