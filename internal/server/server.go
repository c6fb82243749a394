// Package server exposes the HTTP surface: email sending, subscription
// definitions, the app-install flow, health probes and metrics.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/hubmail/internal/metrics"
	"github.com/dmitrymomot/hubmail/middlewares"
	"github.com/dmitrymomot/hubmail/pkg/cache"
	"github.com/dmitrymomot/hubmail/pkg/health"
	"github.com/dmitrymomot/hubmail/pkg/logger"
	"github.com/dmitrymomot/hubmail/pkg/oauth"
)

// Config lists the router's collaborators. Optional fields left nil
// disable their routes.
type Config struct {
	Sender        CustomEmailSender
	Subscriptions SubscriptionSource
	// OAuth enables GET /init and GET /validate-callback.
	OAuth oauth.Provider
	// States stores pending authorization states. Defaults to an in-memory cache.
	States  cache.Cache[struct{}]
	Metrics *metrics.Metrics
	Checks  health.Checks
	Logger  *slog.Logger
	// RequestTimeout bounds each request. Zero means middlewares.DefaultTimeout.
	RequestTimeout time.Duration
}

// NewRouter builds the chi router with middleware and all enabled routes.
func NewRouter(cfg Config) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNope()
	}

	r := chi.NewRouter()
	r.Use(middlewares.RequestID())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(
		middlewares.RequestLogger(log),
		middlewares.Recover(middlewares.WithRecoverLogger(log)),
		middlewares.Timeout(cfg.RequestTimeout),
	)

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(cfg.Checks, health.WithLogger(log)))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	eh := &EmailHandler{sender: cfg.Sender, subs: cfg.Subscriptions, logger: log}
	if cfg.Metrics != nil {
		eh.recorder = cfg.Metrics
	}
	eh.Routes(r)

	if cfg.OAuth != nil {
		states := cfg.States
		if states == nil {
			states = cache.NewMemory[struct{}](
				cache.WithCleanupInterval(0),
				cache.WithMaxEntries(1024),
			)
		}
		(&OAuthHandler{provider: cfg.OAuth, states: states, logger: log}).Routes(r)
	}

	return r
}
