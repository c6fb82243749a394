// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
	"github.com/dmitrymomot/hubmail/pkg/logger"
	"github.com/dmitrymomot/hubmail/pkg/mailer"
	"github.com/dmitrymomot/hubmail/pkg/oauth"
)

// HTTPConfig holds the inbound server settings.
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"60s"`
}

// Config is the complete process configuration. It is read once at startup
// and passed explicitly to every component.
type Config struct {
	HubSpot hubspot.Config `envPrefix:"HUBSPOT_"`
	OAuth   oauth.Config
	Mailer  mailer.Config
	Logger  logger.Config
	HTTP    HTTPConfig
}

// Load reads dotenv files (".env" when none are given; missing files are
// skipped), then parses the environment and validates it.
func Load(files ...string) (*Config, error) {
	cfg, err := Read(files...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation. The install flow uses it because it runs
// before a refresh token exists.
func Read(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	cfg, err := env.ParseAsWithOptions[Config](env.Options{})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFrom parses and validates environ instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every missing required key at once as a hubspot.KindConfig error.
func (c *Config) Validate() error {
	var missing []string
	need := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	switch c.HubSpot.AuthMode {
	case hubspot.AuthModeStatic:
		need("HUBSPOT_API_KEY", c.HubSpot.APIKey)
	default:
		need("HUBSPOT_CLIENT_ID", c.HubSpot.ClientID)
		need("HUBSPOT_CLIENT_SECRET", c.HubSpot.ClientSecret)
		need("HUBSPOT_REFRESH_TOKEN", c.HubSpot.RefreshToken)
	}
	need("HUBSPOT_EMAIL_ID", c.Mailer.EmailID)
	need("RECIPIENT_EMAIL", c.Mailer.RecipientEmail)

	if len(missing) > 0 {
		return hubspot.NewConfigError(missing...)
	}

	if _, err := hubspot.ParseEmailID(c.Mailer.EmailID); err != nil {
		return hubspot.NewInvalidConfigError("HUBSPOT_EMAIL_ID", "must be a numeric template id")
	}
	return nil
}

// OAuthEnabled reports whether the app-install routes can be served.
func (c *Config) OAuthEnabled() bool {
	return c.OAuth.ClientID != "" && c.OAuth.ClientSecret != "" && c.OAuth.RedirectURL != ""
}
