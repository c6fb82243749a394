// Package oauth implements the HubSpot app-install authorization code flow.
//
// It builds the consent URL from a configurable scope set and exchanges the
// returned authorization code for an access and refresh token. Persisting the
// refresh token is left to the caller.
//
// # Features
//
//   - Provider interface with a HubSpot implementation over golang.org/x/oauth2
//   - ScopeSet: order-insensitive, validated scope lists
//   - Scopes from config, a YAML file, or the historical defaults
//   - Functional options for custom HTTP clients (testing, custom transports)
//   - Configuration structs with env tags for environment-based setup
//   - Sentinel errors with "oauth:" prefix for consistent error handling
//
// # Usage
//
//	provider, err := oauth.NewHubSpotProvider(oauth.Config{
//		ClientID:     os.Getenv("HUBSPOT_CLIENT_ID"),
//		ClientSecret: os.Getenv("HUBSPOT_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/validate-callback",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Redirect the installing user
//	url := provider.AuthorizationURL(state)
//
//	// In the callback handler
//	tok, err := provider.ExchangeCode(ctx, r.URL.Query().Get("code"))
//
// # Scopes file
//
//	scopes:
//	  - oauth
//	  - crm.objects.contacts.read
//	optional_scopes:
//	  - marketing-email
//
// # Errors
//
// Constructor failures are sentinel errors (ErrMissingClientID,
// ErrMissingClientSecret, ErrMissingRedirectURL, ErrInvalidScope, ErrScopesFile).
// ExchangeCode returns a *hubspot.Error: a validation error for an empty code,
// otherwise a normalized remote or transport failure.
package oauth
