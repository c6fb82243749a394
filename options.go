package hubmail

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the application.
type Option func(*App)

// WithContext sets a custom base context for signal handling.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) Option {
	return func(a *App) {
		if ctx != nil {
			a.baseCtx = ctx
		}
	}
}

// WithLogger sets the application logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHTTPClient sets the client for outbound HubSpot calls. Its transport is
// wrapped with metrics instrumentation; the client itself is not modified.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) {
		if c != nil {
			a.httpClient = c
		}
	}
}

// WithRegistry sets the Prometheus registry. Defaults to a fresh registry
// with the Go and process collectors.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		if reg != nil {
			a.registry = reg
		}
	}
}

// WithShutdownHook registers a function called during graceful shutdown,
// after the server stops accepting requests.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(a *App) {
		if fn != nil {
			a.shutdownHooks = append(a.shutdownHooks, fn)
		}
	}
}
