package logger

import (
	"context"
	"log/slog"
)

// Outcome attribute values attached by Success and Failure.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Success logs an info record tagged outcome=success.
func Success(ctx context.Context, l *slog.Logger, msg string, attrs ...slog.Attr) {
	l.LogAttrs(ctx, slog.LevelInfo, msg, append(attrs, slog.String("outcome", OutcomeSuccess))...)
}

// Failure logs an error record tagged outcome=failure with the error message.
func Failure(ctx context.Context, l *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.String("outcome", OutcomeFailure))...)
}
