package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAuthURLCommand(t *testing.T) {
	// Mutates the process environment; not parallel.
	t.Setenv("HUBSPOT_CLIENT_ID", "client-id")
	t.Setenv("HUBSPOT_CLIENT_SECRET", "secret")
	t.Setenv("HUBSPOT_REDIRECT_URL", "http://localhost:3000/validate-callback")
	t.Setenv("HUBSPOT_REFRESH_TOKEN", "")
	t.Setenv("HUBSPOT_SCOPES", "content,oauth")
	t.Setenv("HUBSPOT_OPTIONAL_SCOPES", "")

	out, err := execute(t, "auth-url", "--state", "fixed")
	require.NoError(t, err)

	u, err := url.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	q := u.Query()
	require.Equal(t, "client-id", q.Get("client_id"))
	require.Equal(t, "fixed", q.Get("state"))
	require.Equal(t, "content oauth", q.Get("scope"))
	require.Equal(t, "code", q.Get("response_type"))
}

func TestAuthURLCommand_NotConfigured(t *testing.T) {
	t.Setenv("HUBSPOT_REDIRECT_URL", "")

	_, err := execute(t, "auth-url")
	require.ErrorIs(t, err, errInstallNotConfigured)
}

func TestScopesCommand(t *testing.T) {
	t.Setenv("HUBSPOT_SCOPES", "oauth,content")
	t.Setenv("HUBSPOT_OPTIONAL_SCOPES", "automation")
	t.Setenv("HUBSPOT_SCOPES_FILE", "")

	out, err := execute(t, "scopes")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []string{"content", "oauth"}, got["scopes"])
	require.Equal(t, []string{"automation"}, got["optional_scopes"])
}

func TestSendCommand_MissingConfig(t *testing.T) {
	for _, k := range []string{
		"HUBSPOT_AUTH_MODE", "HUBSPOT_CLIENT_ID", "HUBSPOT_CLIENT_SECRET",
		"HUBSPOT_REFRESH_TOKEN", "HUBSPOT_EMAIL_ID", "RECIPIENT_EMAIL",
	} {
		t.Setenv(k, "")
	}

	_, err := execute(t, "send", "--to", "a@b.co", "--content", "hi")
	require.EqualError(t, err, "Missing required environment variables: HUBSPOT_CLIENT_ID, HUBSPOT_CLIENT_SECRET, HUBSPOT_REFRESH_TOKEN, HUBSPOT_EMAIL_ID, RECIPIENT_EMAIL. Please check your .env file.")
}

func TestSendCommand_DefaultsToConfiguredRecipient(t *testing.T) {
	// Mutates the process environment; not parallel.
	var (
		mu   sync.Mutex
		sent singleSendBody
	)
	lastSent := func() singleSendBody {
		mu.Lock()
		defer mu.Unlock()
		return sent
	}
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/marketing/v4/email/single-send" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(body, &sent)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"statusId":"xyz","requestedAt":"2024-01-01T00:00:00Z","status":"PENDING"}`))
	}))
	defer hs.Close()

	t.Setenv("HUBSPOT_AUTH_MODE", "static")
	t.Setenv("HUBSPOT_API_KEY", "pat-123")
	t.Setenv("HUBSPOT_TOKEN_POLICY", "")
	t.Setenv("HUBSPOT_BASE_URL", hs.URL)
	t.Setenv("HUBSPOT_EMAIL_ID", "123")
	t.Setenv("RECIPIENT_EMAIL", "default@example.com")
	t.Setenv("EMAIL_CONTENT_FORMAT", "text")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SENTRY_DSN", "")

	out, err := execute(t, "send", "--content", "Hello")
	require.NoError(t, err)
	require.Contains(t, out, `"statusId": "xyz"`)
	got := lastSent()
	require.Equal(t, "default@example.com", got.Message.To)
	require.Equal(t, int64(123), got.EmailID)
	require.Equal(t, "Hello", got.CustomProperties["content"])

	_, err = execute(t, "send", "--to", "other@example.com", "--content", "Hi")
	require.NoError(t, err)
	require.Equal(t, "other@example.com", lastSent().Message.To)
}

type singleSendBody struct {
	EmailID int64 `json:"emailId"`
	Message struct {
		To string `json:"to"`
	} `json:"message"`
	CustomProperties map[string]any `json:"customProperties"`
}
