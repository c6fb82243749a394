package oauth

// Default HubSpot OAuth endpoints.
const (
	DefaultAuthURL  = "https://app.hubspot.com/oauth/authorize"
	DefaultTokenURL = "https://api.hubapi.com/oauth/v1/token"
)

// Config holds HubSpot OAuth app configuration.
// Scopes and OptionalScopes fall back to ScopesFile, then to the defaults.
type Config struct {
	ClientID       string   `env:"HUBSPOT_CLIENT_ID"`
	ClientSecret   string   `env:"HUBSPOT_CLIENT_SECRET"`
	RedirectURL    string   `env:"HUBSPOT_REDIRECT_URL"`
	AuthURL        string   `env:"HUBSPOT_AUTH_URL" envDefault:"https://app.hubspot.com/oauth/authorize"`
	TokenURL       string   `env:"HUBSPOT_TOKEN_URL" envDefault:"https://api.hubapi.com/oauth/v1/token"`
	ScopesFile     string   `env:"HUBSPOT_SCOPES_FILE"`
	Scopes         []string `env:"HUBSPOT_SCOPES" envSeparator:","`
	OptionalScopes []string `env:"HUBSPOT_OPTIONAL_SCOPES" envSeparator:","`
}
