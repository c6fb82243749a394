// Package cache provides a small generic in-memory cache with TTL expiry.
//
// It backs two short-lived stores: reusable HubSpot access tokens (when the
// cache token policy is enabled) and one-time OAuth state values.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL (1 hour by default)
//   - Negative: item never expires
//
// Use [GetOrSet] to compute a missing value once even when many goroutines
// miss at the same time:
//
//	tokens := cache.NewMemory[*oauth2.Token](cache.WithMaxEntries(1))
//	defer tokens.Close()
//
//	tok, err := cache.GetOrSet(ctx, tokens, "hubspot:token:client-id",
//	    func(ctx context.Context) (*oauth2.Token, time.Duration, error) {
//	        t, err := provider.Token(ctx)
//	        if err != nil {
//	            return nil, 0, err
//	        }
//	        return t, time.Until(t.Expiry) - time.Minute, nil
//	    })
package cache
