package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey uint8

const (
	loggerContextKey contextKey = iota
	observableContextKey
)

// WithLogger stores the logger in a child context.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// WithObservableLogger stores the observable logger in a child context.
// The wrapped charm logger is stored alongside it so WithLogger lookups
// keep working.
func WithObservableLogger(ctx context.Context, logger *ObservableLogger) context.Context {
	ctx = WithLogger(ctx, logger.logger)
	return context.WithValue(ctx, observableContextKey, logger)
}

// From returns the logger stored in ctx, or nil.
func From(ctx context.Context) *log.Logger {
	logger, _ := ctx.Value(loggerContextKey).(*log.Logger)
	return logger
}

// FromObservable returns the observable logger stored in ctx, or nil.
func FromObservable(ctx context.Context) *ObservableLogger {
	logger, _ := ctx.Value(observableContextKey).(*ObservableLogger)
	return logger
}
