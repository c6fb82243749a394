package logger

import (
	"io"
	"log/slog"
)

// NewNope returns a logger that discards everything. Components use it when
// no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
