package hubmail

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/hubmail/internal/config"
	"github.com/dmitrymomot/hubmail/internal/metrics"
	"github.com/dmitrymomot/hubmail/internal/server"
	"github.com/dmitrymomot/hubmail/pkg/cache"
	"github.com/dmitrymomot/hubmail/pkg/health"
	"github.com/dmitrymomot/hubmail/pkg/hubspot"
	"github.com/dmitrymomot/hubmail/pkg/logger"
	"github.com/dmitrymomot/hubmail/pkg/mailer"
	"github.com/dmitrymomot/hubmail/pkg/oauth"
)

const (
	sentryFlushTimeout = 2 * time.Second
	maxPendingStates   = 1024
)

// App owns every long-lived component built from a Config.
// It is immutable after New returns.
type App struct {
	cfg *config.Config

	baseCtx context.Context
	logger  *slog.Logger

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	httpClient *http.Client
	tokens     hubspot.TokenProvider
	client     *hubspot.Client
	mailer     *mailer.Mailer

	// Nil when the app-install flow is not configured.
	oauth  *oauth.HubSpotProvider
	states *cache.Memory[struct{}]

	shutdownHooks []func(context.Context) error
}

// New wires the HubSpot client, mailer, install flow and metrics from cfg.
// cfg must already be validated; see config.Load.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("hubmail: nil config")
	}

	a := &App{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.baseCtx == nil {
		a.baseCtx = context.Background()
	}
	if a.logger == nil {
		a.logger = logger.NewNope()
	}

	if a.registry == nil {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m, err := metrics.New(a.registry, a.registry)
	if err != nil {
		return nil, err
	}
	a.metrics = m

	a.httpClient = a.instrumentedClient()

	hsOpts := []hubspot.Option{
		hubspot.WithHTTPClient(a.httpClient),
		hubspot.WithLogger(a.logger),
	}

	tokens, err := hubspot.NewTokenProvider(cfg.HubSpot, hsOpts...)
	if err != nil {
		return nil, err
	}
	a.tokens = tokens
	a.client = hubspot.New(cfg.HubSpot, tokens, hsOpts...)

	a.mailer, err = mailer.New(a.client, cfg.Mailer, mailer.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	if cfg.OAuthEnabled() {
		a.oauth, err = oauth.NewHubSpotProvider(cfg.OAuth,
			oauth.WithHTTPClient(a.httpClient),
			oauth.WithLogger(a.logger),
		)
		if err != nil {
			return nil, err
		}
		a.states = cache.NewMemory[struct{}](
			cache.WithDefaultTTL(server.StateTTL),
			cache.WithMaxEntries(maxPendingStates),
		)
	}

	return a, nil
}

// instrumentedClient returns a copy of the configured client whose transport
// reports outbound metrics. The HubSpot timeout applies when the client has none.
func (a *App) instrumentedClient() *http.Client {
	c := &http.Client{}
	if a.httpClient != nil {
		*c = *a.httpClient
	}
	if c.Timeout == 0 {
		c.Timeout = a.cfg.HubSpot.HTTPTimeout
	}
	c.Transport = a.metrics.InstrumentTransport(c.Transport)
	return c
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Client returns the HubSpot API client.
func (a *App) Client() *hubspot.Client { return a.client }

// Mailer returns the email sender bound to the configured template.
func (a *App) Mailer() *mailer.Mailer { return a.mailer }

// OAuth returns the install-flow provider, or nil when it is not configured.
func (a *App) OAuth() *oauth.HubSpotProvider { return a.oauth }

// Tokens returns the access-token provider.
func (a *App) Tokens() hubspot.TokenProvider { return a.tokens }

// Checks returns the readiness checks.
func (a *App) Checks() health.Checks {
	return health.Checks{
		"hubspot_token": hubspot.Healthcheck(a.tokens),
	}
}

// Handler builds the HTTP handler with all enabled routes.
func (a *App) Handler() http.Handler {
	cfg := server.Config{
		Sender:         a.mailer,
		Subscriptions:  a.client,
		Metrics:        a.metrics,
		Checks:         a.Checks(),
		Logger:         a.logger,
		RequestTimeout: a.cfg.HTTP.RequestTimeout,
	}
	if a.oauth != nil {
		cfg.OAuth = a.oauth
		cfg.States = a.states
	}
	return server.NewRouter(cfg)
}

// Close releases caches and flushes buffered Sentry events.
// It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	if c, ok := a.tokens.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if a.states != nil {
		errs = append(errs, a.states.Close())
	}
	sentry.Flush(sentryFlushTimeout)
	return errors.Join(errs...)
}
