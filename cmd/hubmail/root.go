package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/hubmail"
	"github.com/dmitrymomot/hubmail/internal/config"
	"github.com/dmitrymomot/hubmail/middlewares"
	"github.com/dmitrymomot/hubmail/pkg/logger"
)

type rootOptions struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "hubmail",
		Short:         "Send HubSpot single-send marketing emails",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load; missing files are skipped")

	root.AddCommand(
		newServeCmd(opts),
		newSendCmd(opts),
		newSendDefaultCmd(opts),
		newSubscriptionsCmd(opts),
		newHealthCmd(opts),
		newAuthURLCmd(opts),
		newExchangeCmd(opts),
		newScopesCmd(opts),
	)
	return root
}

// loadApp loads and validates configuration, then builds the App.
func (o *rootOptions) loadApp(cmd *cobra.Command) (*hubmail.App, error) {
	cfg, err := config.Load(o.envFiles...)
	if err != nil {
		return nil, err
	}
	return hubmail.New(cfg,
		hubmail.WithContext(cmd.Context()),
		hubmail.WithLogger(newLogger(cfg)),
	)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.FromConfig(cfg.Logger, middlewares.RequestIDExtractor())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
