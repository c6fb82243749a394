// Command hubmail sends HubSpot marketing emails and serves the HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/hubmail/pkg/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.New(slog.LevelError).Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
