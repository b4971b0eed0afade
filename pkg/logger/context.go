package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey struct{}

var loggerKey = contextKey{}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or the root logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok {
		return l
	}
	return Root().Sugar()
}
