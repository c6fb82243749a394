package oauth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
)

// HubSpotProviderName is the identifier for the HubSpot OAuth provider.
const HubSpotProviderName = "hubspot"

// TokenResponse is the result of an authorization code exchange.
// The caller is responsible for persisting RefreshToken.
type TokenResponse struct {
	Expiry       time.Time `json:"expiry"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
}

// Provider abstracts the authorization code flow for an app install.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// AuthorizationURL returns the consent page URL carrying state.
	AuthorizationURL(state string) string

	// ExchangeCode trades an authorization code for tokens.
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
}

var _ Provider = (*HubSpotProvider)(nil)

// HubSpotProvider implements Provider for HubSpot app installs.
type HubSpotProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
	logger     *slog.Logger
	scopes     ScopeSet
	optional   ScopeSet
}

// NewHubSpotProvider creates a new HubSpot OAuth provider.
// Returns an error if ClientID, ClientSecret or RedirectURL is empty,
// or if a configured scope is malformed.
func NewHubSpotProvider(cfg Config, opts ...Option) (*HubSpotProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	if cfg.RedirectURL == "" {
		return nil, ErrMissingRedirectURL
	}

	scopes, optional, err := ResolveScopes(cfg)
	if err != nil {
		return nil, err
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	o := newOptions(opts...)

	return &HubSpotProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes.Slice(),
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: o.httpClient,
		logger:     o.logger,
		scopes:     scopes,
		optional:   optional,
	}, nil
}

// Name returns the provider identifier.
func (p *HubSpotProvider) Name() string {
	return HubSpotProviderName
}

// Scopes returns the required scope set.
func (p *HubSpotProvider) Scopes() ScopeSet { return p.scopes }

// OptionalScopes returns the optional scope set.
func (p *HubSpotProvider) OptionalScopes() ScopeSet { return p.optional }

// AuthorizationURL returns the consent URL with client_id, redirect_uri,
// the space-joined sorted scope list, optional_scope when configured,
// response_type=code and state when non-empty.
func (p *HubSpotProvider) AuthorizationURL(state string) string {
	var opts []oauth2.AuthCodeOption
	if p.optional.Len() > 0 {
		opts = append(opts, oauth2.SetAuthURLParam("optional_scope", p.optional.String()))
	}
	return p.config.AuthCodeURL(state, opts...)
}

// ExchangeCode trades an authorization code for tokens.
// Failures are normalized with context "Error exchanging authorization code".
func (p *HubSpotProvider) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrMissingCode
	}

	tok, err := p.config.Exchange(p.contextWithHTTPClient(ctx), code)
	if err != nil {
		nerr := hubspot.Normalize(err, "Error exchanging authorization code")
		p.logger.WarnContext(ctx, "authorization code exchange failed",
			slog.String("kind", nerr.Kind.String()),
			slog.Int("status", nerr.Status),
		)
		return nil, nerr
	}

	res := &TokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
	if !tok.Expiry.IsZero() {
		res.ExpiresIn = int64(time.Until(tok.Expiry).Round(time.Second) / time.Second)
	}
	return res, nil
}

func (p *HubSpotProvider) contextWithHTTPClient(ctx context.Context) context.Context {
	if p.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	return ctx
}
