package hubspot

import (
	"strings"
	"time"
)

// DefaultBaseURL is the HubSpot API root.
const DefaultBaseURL = "https://api.hubapi.com"

// AuthMode selects how the bearer credential is produced.
type AuthMode string

const (
	// AuthModeOAuth exchanges a refresh token for a short-lived access token.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeStatic sends a private-app key as the bearer credential.
	AuthModeStatic AuthMode = "static"
)

// TokenPolicy selects whether access tokens are reused between calls.
type TokenPolicy string

const (
	// TokenPolicyAlwaysFresh fetches a new access token for every call.
	TokenPolicyAlwaysFresh TokenPolicy = "always-fresh"
	// TokenPolicyCache reuses an access token until shortly before it expires.
	TokenPolicyCache TokenPolicy = "cache"
)

// Config holds HubSpot credentials.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	RefreshToken string        `env:"REFRESH_TOKEN"`
	APIKey       string        `env:"API_KEY"`
	BaseURL      string        `env:"BASE_URL" envDefault:"https://api.hubapi.com"`
	AuthMode     AuthMode      `env:"AUTH_MODE" envDefault:"oauth"`
	TokenPolicy  TokenPolicy   `env:"TOKEN_POLICY" envDefault:"always-fresh"`
	TokenSkew    time.Duration `env:"TOKEN_SKEW" envDefault:"1m"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

func (c Config) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}
