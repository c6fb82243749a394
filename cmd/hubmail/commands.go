package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/hubmail/internal/config"
	"github.com/dmitrymomot/hubmail/pkg/health"
	"github.com/dmitrymomot/hubmail/pkg/oauth"
)

var errInstallNotConfigured = errors.New("install flow requires HUBSPOT_CLIENT_ID, HUBSPOT_CLIENT_SECRET and HUBSPOT_REDIRECT_URL")

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Run()
		},
	}
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	var to, content string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the configured template with custom content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if to == "" {
				to = app.Mailer().DefaultRecipient()
			}
			res, err := app.Mailer().SendCustomEmail(cmd.Context(), to, content)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient email address; defaults to RECIPIENT_EMAIL")
	cmd.Flags().StringVar(&content, "content", "", "content exposed to the template as {{ custom.content }}")
	return cmd
}

func newSendDefaultCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send-default",
		Short: "Send the configured template to RECIPIENT_EMAIL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.Mailer().SendDefault(cmd.Context())
			if err != nil {
				return err
			}
			app.Logger().InfoContext(cmd.Context(), "default email sent",
				"recipient", app.Mailer().DefaultRecipient(),
				"status_id", res.StatusID,
			)
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newSubscriptionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "subscriptions",
		Short: "List communication-preference subscription definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			defs, err := app.Client().SubscriptionDefinitions(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), defs)
		},
	}
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that an access token can be obtained",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := health.Run(cmd.Context(), app.Checks(), health.WithLogger(app.Logger()))
			if perr := printJSON(cmd.OutOrStdout(), resp); perr != nil {
				return perr
			}
			return err
		},
	}
}

// installProvider builds the install-flow provider without requiring the
// send credentials, which do not exist before the first install.
func (o *rootOptions) installProvider() (*oauth.HubSpotProvider, error) {
	cfg, err := config.Read(o.envFiles...)
	if err != nil {
		return nil, err
	}
	if !cfg.OAuthEnabled() {
		return nil, errInstallNotConfigured
	}
	return oauth.NewHubSpotProvider(cfg.OAuth, oauth.WithLogger(newLogger(cfg)))
}

func newAuthURLCmd(opts *rootOptions) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "auth-url",
		Short: "Print the HubSpot install URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.installProvider()
			if err != nil {
				return err
			}
			if state == "" {
				state = uuid.NewString()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p.AuthorizationURL(state))
			return err
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "state parameter; a random one is generated when empty")
	return cmd
}

func newExchangeCmd(opts *rootOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an authorization code for tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.installProvider()
			if err != nil {
				return err
			}
			tok, err := p.ExchangeCode(cmd.Context(), code)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tok)
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "authorization code from the redirect")
	return cmd
}

func newScopesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "Print the resolved required and optional scopes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read(opts.envFiles...)
			if err != nil {
				return err
			}
			required, optional, err := oauth.ResolveScopes(cfg.OAuth)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string][]string{
				"scopes":          required.Slice(),
				"optional_scopes": optional.Slice(),
			})
		},
	}
}
