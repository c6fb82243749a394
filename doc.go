// Package hubmail sends HubSpot single-send marketing emails on behalf of a
// connected portal.
//
// An [App] is built once from a validated config and owns the HubSpot client,
// the access-token provider, the mailer and the optional app-install flow:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app, err := hubmail.New(cfg, hubmail.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Close()
//
//	if err := app.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
//	POST /send-email          {"email": "...", "content": "..."}
//	GET  /subscriptions       communication-preference definitions
//	GET  /init                redirect to the HubSpot install page
//	GET  /validate-callback   exchange the authorization code
//	GET  /health/live
//	GET  /health/ready
//	GET  /metrics
//
// The install routes are registered only when the OAuth client ID, secret and
// redirect URL are configured.
//
// # Shutdown
//
// Run handles SIGINT and SIGTERM. Register cleanup with WithShutdownHook.
package hubmail
