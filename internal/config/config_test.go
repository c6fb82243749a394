package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hubmail/internal/config"
	"github.com/dmitrymomot/hubmail/pkg/hubspot"
	"github.com/dmitrymomot/hubmail/pkg/mailer"
)

func validEnv() map[string]string {
	return map[string]string{
		"HUBSPOT_CLIENT_ID":     "id",
		"HUBSPOT_CLIENT_SECRET": "secret",
		"HUBSPOT_REFRESH_TOKEN": "refresh",
		"HUBSPOT_EMAIL_ID":      "123",
		"RECIPIENT_EMAIL":       "a@b.co",
		"RECIPIENT_FIRSTNAME":   "Ann",
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(validEnv())
	require.NoError(t, err)

	require.Equal(t, "id", cfg.HubSpot.ClientID)
	require.Equal(t, "secret", cfg.HubSpot.ClientSecret)
	require.Equal(t, "refresh", cfg.HubSpot.RefreshToken)
	require.Equal(t, hubspot.DefaultBaseURL, cfg.HubSpot.BaseURL)
	require.Equal(t, hubspot.AuthModeOAuth, cfg.HubSpot.AuthMode)
	require.Equal(t, hubspot.TokenPolicyAlwaysFresh, cfg.HubSpot.TokenPolicy)
	require.Equal(t, 30*time.Second, cfg.HubSpot.HTTPTimeout)

	require.Equal(t, "123", cfg.Mailer.EmailID)
	require.Equal(t, "Ann", cfg.Mailer.RecipientFirstName)
	require.Equal(t, mailer.FormatText, cfg.Mailer.ContentFormat)

	require.Equal(t, "id", cfg.OAuth.ClientID)
	require.Equal(t, "https://app.hubspot.com/oauth/authorize", cfg.OAuth.AuthURL)
	require.False(t, cfg.OAuthEnabled())

	require.Equal(t, ":3000", cfg.HTTP.Addr)
	require.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFrom_Overrides(t *testing.T) {
	t.Parallel()

	environ := validEnv()
	environ["HUBSPOT_TOKEN_POLICY"] = "cache"
	environ["HUBSPOT_HTTP_TIMEOUT"] = "5s"
	environ["HUBSPOT_REDIRECT_URL"] = "http://localhost:3000/validate-callback"
	environ["HUBSPOT_SCOPES"] = "oauth,crm.lists.read"
	environ["EMAIL_CONTENT_FORMAT"] = "markdown"
	environ["HTTP_ADDR"] = ":8080"

	cfg, err := config.LoadFrom(environ)
	require.NoError(t, err)
	require.Equal(t, hubspot.TokenPolicyCache, cfg.HubSpot.TokenPolicy)
	require.Equal(t, 5*time.Second, cfg.HubSpot.HTTPTimeout)
	require.Equal(t, []string{"oauth", "crm.lists.read"}, cfg.OAuth.Scopes)
	require.Equal(t, mailer.FormatMarkdown, cfg.Mailer.ContentFormat)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.True(t, cfg.OAuthEnabled())
}

func TestLoadFrom_MissingKeys(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFrom(map[string]string{"RECIPIENT_EMAIL": "a@b.co"})
	require.ErrorIs(t, err, hubspot.ErrConfig)
	require.EqualError(t, err,
		"Missing required environment variables: HUBSPOT_CLIENT_ID, HUBSPOT_CLIENT_SECRET, HUBSPOT_REFRESH_TOKEN, HUBSPOT_EMAIL_ID. Please check your .env file.")

	var herr *hubspot.Error
	require.ErrorAs(t, err, &herr)
	require.Equal(t, []string{"HUBSPOT_CLIENT_ID", "HUBSPOT_CLIENT_SECRET", "HUBSPOT_REFRESH_TOKEN", "HUBSPOT_EMAIL_ID"}, herr.Missing)
}

func TestLoadFrom_NonNumericEmailID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"abc", "12.5", "0x10"} {
		environ := validEnv()
		environ["HUBSPOT_EMAIL_ID"] = id

		_, err := config.LoadFrom(environ)
		require.ErrorIs(t, err, hubspot.ErrConfig, id)
		require.NotErrorIs(t, err, hubspot.ErrValidation, id)
		require.EqualError(t, err,
			"Invalid environment variable HUBSPOT_EMAIL_ID: must be a numeric template id. Please check your .env file.")
	}

	environ := validEnv()
	environ["HUBSPOT_EMAIL_ID"] = " 42 "
	cfg, err := config.LoadFrom(environ)
	require.NoError(t, err)
	require.Equal(t, " 42 ", cfg.Mailer.EmailID)
}

func TestLoadFrom_StaticMode(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFrom(map[string]string{
		"HUBSPOT_AUTH_MODE": "static",
		"HUBSPOT_EMAIL_ID":  "1",
		"RECIPIENT_EMAIL":   "a@b.co",
	})
	require.EqualError(t, err, "Missing required environment variables: HUBSPOT_API_KEY. Please check your .env file.")

	cfg, err := config.LoadFrom(map[string]string{
		"HUBSPOT_AUTH_MODE": "static",
		"HUBSPOT_API_KEY":   "pat",
		"HUBSPOT_EMAIL_ID":  "1",
		"RECIPIENT_EMAIL":   "a@b.co",
	})
	require.NoError(t, err)
	require.Equal(t, "pat", cfg.HubSpot.APIKey)
}

func TestLoad_DotEnvFile(t *testing.T) {
	// Mutates the process environment; not parallel.
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(`HUBSPOT_AUTH_MODE=static
HUBSPOT_API_KEY=pat-from-file
HUBSPOT_EMAIL_ID=42
RECIPIENT_EMAIL=file@example.com
`), 0o600))

	for _, k := range []string{"HUBSPOT_AUTH_MODE", "HUBSPOT_API_KEY", "HUBSPOT_EMAIL_ID", "RECIPIENT_EMAIL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := config.Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "pat-from-file", cfg.HubSpot.APIKey)
	require.Equal(t, "42", cfg.Mailer.EmailID)
	require.Equal(t, "file@example.com", cfg.Mailer.RecipientEmail)
}

func TestRead_SkipsValidation(t *testing.T) {
	// Mutates the process environment; not parallel.
	t.Setenv("HUBSPOT_AUTH_MODE", "oauth")
	t.Setenv("HUBSPOT_REFRESH_TOKEN", "")
	t.Setenv("HUBSPOT_REDIRECT_URL", "http://localhost:3000/validate-callback")

	cfg, err := config.Read(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Empty(t, cfg.HubSpot.RefreshToken)
	require.Equal(t, "http://localhost:3000/validate-callback", cfg.OAuth.RedirectURL)
	require.Error(t, cfg.Validate())
}
