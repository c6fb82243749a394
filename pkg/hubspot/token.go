package hubspot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/hubmail/pkg/cache"
)

const tokenPath = "/oauth/v1/token"

// TokenProvider produces the bearer credential for the next outbound call.
type TokenProvider interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// NewTokenProvider builds the provider selected by cfg.AuthMode and wraps it
// in a cache when cfg.TokenPolicy is TokenPolicyCache.
func NewTokenProvider(cfg Config, opts ...Option) (TokenProvider, error) {
	var (
		base TokenProvider
		err  error
	)

	switch cfg.AuthMode {
	case AuthModeOAuth, "":
		base, err = NewRefreshTokenProvider(cfg, opts...)
	case AuthModeStatic:
		base, err = NewStaticTokenProvider(cfg.APIKey)
	default:
		return nil, errors.Join(ErrUnknownAuthMode, fmt.Errorf("auth mode %q", cfg.AuthMode))
	}
	if err != nil {
		return nil, err
	}

	switch cfg.TokenPolicy {
	case TokenPolicyAlwaysFresh, "":
		return base, nil
	case TokenPolicyCache:
		return NewCachingTokenProvider(base, tokenCacheKey(cfg), cfg.TokenSkew), nil
	default:
		return nil, errors.Join(ErrUnknownTokenPolicy, fmt.Errorf("token policy %q", cfg.TokenPolicy))
	}
}

func tokenCacheKey(cfg Config) string {
	if cfg.AuthMode == AuthModeStatic {
		return "hubspot:token:static"
	}
	return "hubspot:token:" + cfg.ClientID
}

// RefreshTokenProvider exchanges a refresh token for an access token on every call.
type RefreshTokenProvider struct {
	config       *oauth2.Config
	httpClient   *http.Client
	logger       *slog.Logger
	refreshToken string
}

// NewRefreshTokenProvider creates a provider for the OAuth refresh flow.
// Returns an error if ClientID, ClientSecret or RefreshToken is empty.
func NewRefreshTokenProvider(cfg Config, opts ...Option) (*RefreshTokenProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	if cfg.RefreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	o := newOptions(opts...)

	return &RefreshTokenProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.baseURL() + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		refreshToken: cfg.RefreshToken,
		httpClient:   o.httpClient,
		logger:       o.logger,
	}, nil
}

// Token performs one refresh_token grant and returns the resulting token.
// Nothing is cached: each call is a separate round trip.
func (p *RefreshTokenProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	src := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: p.refreshToken})
	tok, err := src.Token()
	if err != nil {
		nerr := Normalize(err, "Error fetching access token")
		p.logger.WarnContext(ctx, "access token fetch failed",
			slog.String("kind", nerr.Kind.String()),
			slog.Int("status", nerr.Status),
		)
		return nil, nerr
	}

	p.logger.DebugContext(ctx, "access token fetched", slog.Time("expiry", tok.Expiry))
	return tok, nil
}

// FetchAccessToken returns only the access_token of a fresh grant.
func (p *RefreshTokenProvider) FetchAccessToken(ctx context.Context) (string, error) {
	tok, err := p.Token(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// StaticTokenProvider presents a long-lived private-app key as the bearer credential.
type StaticTokenProvider struct {
	token *oauth2.Token
}

// NewStaticTokenProvider creates a provider for a static API key.
func NewStaticTokenProvider(apiKey string) (*StaticTokenProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &StaticTokenProvider{
		token: &oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"},
	}, nil
}

// Token returns the static key. It never performs network activity.
func (p *StaticTokenProvider) Token(_ context.Context) (*oauth2.Token, error) {
	tok := *p.token
	return &tok, nil
}

// CachingTokenProvider reuses tokens from the wrapped provider until they are
// within skew of their expiry. Concurrent misses share a single fetch.
type CachingTokenProvider struct {
	next  TokenProvider
	cache cache.Cache[*oauth2.Token]
	key   string
	skew  time.Duration
}

// NewCachingTokenProvider wraps next with an in-memory token cache keyed by key.
// Call Close to stop the cache janitor.
func NewCachingTokenProvider(next TokenProvider, key string, skew time.Duration) *CachingTokenProvider {
	return &CachingTokenProvider{
		next:  next,
		cache: cache.NewMemory[*oauth2.Token](cache.WithMaxEntries(1)),
		key:   key,
		skew:  skew,
	}
}

// Token returns a cached token or fetches a new one.
func (p *CachingTokenProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	return cache.GetOrSet(ctx, p.cache, p.key, func(ctx context.Context) (*oauth2.Token, time.Duration, error) {
		tok, err := p.next.Token(ctx)
		if err != nil {
			return nil, 0, err
		}
		return tok, p.ttl(tok), nil
	})
}

// Invalidate drops the cached token so the next call fetches a new one.
func (p *CachingTokenProvider) Invalidate(ctx context.Context) error {
	return p.cache.Delete(ctx, p.key)
}

// Close releases the cache.
func (p *CachingTokenProvider) Close() error {
	return p.cache.Close()
}

// ttl never returns a negative value: the cache treats negative TTLs as "never expires".
func (p *CachingTokenProvider) ttl(tok *oauth2.Token) time.Duration {
	if tok.Expiry.IsZero() {
		return 0
	}
	d := time.Until(tok.Expiry) - p.skew
	if d <= 0 {
		return time.Nanosecond
	}
	return d
}
