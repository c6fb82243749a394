package hubmail

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/hubmail/internal/server"
)

// Run serves HTTP on the configured address and blocks until shutdown.
// SIGINT, SIGTERM and cancellation of the base context all trigger a graceful
// shutdown, after which registered hooks run and the app is closed.
func (a *App) Run() error {
	hooks := append([]func(context.Context) error{}, a.shutdownHooks...)
	hooks = append(hooks, func(context.Context) error { return a.Close() })

	a.logger.Info("starting hubmail",
		slog.String("auth_mode", string(a.cfg.HubSpot.AuthMode)),
		slog.String("token_policy", string(a.cfg.HubSpot.TokenPolicy)),
		slog.Bool("install_flow", a.oauth != nil),
	)

	return server.Run(a.baseCtx, server.RunConfig{
		Handler:         a.Handler(),
		Logger:          a.logger,
		Addr:            a.cfg.HTTP.Addr,
		ShutdownTimeout: a.cfg.HTTP.ShutdownTimeout,
		WriteTimeout:    a.cfg.HTTP.RequestTimeout + a.cfg.HTTP.ShutdownTimeout,
		ShutdownHooks:   hooks,
	})
}
