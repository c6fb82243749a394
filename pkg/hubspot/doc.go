// Package hubspot sends marketing emails through the HubSpot single-send API.
//
// The package has three parts:
//
//   - TokenProvider: produces the bearer credential for a call. RefreshTokenProvider
//     runs the OAuth refresh_token grant on every call, StaticTokenProvider presents a
//     private-app key, and CachingTokenProvider optionally reuses tokens until expiry.
//   - Client: builds and issues authenticated requests (SendMarketingEmail, Get,
//     SubscriptionDefinitions).
//   - Normalize: turns transport and remote failures into a single *Error value.
//
// # Usage
//
//	cfg := hubspot.Config{
//		ClientID:     os.Getenv("HUBSPOT_CLIENT_ID"),
//		ClientSecret: os.Getenv("HUBSPOT_CLIENT_SECRET"),
//		RefreshToken: os.Getenv("HUBSPOT_REFRESH_TOKEN"),
//	}
//
//	tokens, err := hubspot.NewTokenProvider(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client := hubspot.New(cfg, tokens)
//	res, err := client.SendMarketingEmail(ctx, "123456", "user@example.com",
//		map[string]any{"firstname": "Ada"},
//		map[string]any{"content": "Hello!"},
//	)
//
// # Errors
//
// Every failure is an *Error whose Kind is one of validation, remote API,
// transport, request or config. Use errors.Is with the kind sentinels:
//
//	if errors.Is(err, hubspot.ErrRemoteAPI) {
//		var herr *hubspot.Error
//		errors.As(err, &herr)
//		log.Println(herr.Status, herr.DetailsMap())
//	}
//
// Remote messages have the form "<context>: Status <code> - <message>", followed
// by " | Validation errors: ..." when HubSpot reports validation results.
//
// # Testing
//
// Point BaseURL at an httptest server and inject its client with WithHTTPClient.
package hubspot
