package hubspot_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeHubSpot is an httptest server standing in for the HubSpot API.
type fakeHubSpot struct {
	*httptest.Server

	tokenCalls atomic.Int32
	sendCalls  atomic.Int32

	mu         sync.Mutex
	lastForm   url.Values
	lastBody   map[string]any
	lastAuth   string
	lastCType  string
	tokenReply func(w http.ResponseWriter)
	sendReply  func(w http.ResponseWriter)
}

func newFakeHubSpot(t *testing.T) *fakeHubSpot {
	t.Helper()

	f := &fakeHubSpot{
		tokenReply: func(w http.ResponseWriter) {
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
				"token_type":    "bearer",
				"expires_in":    1800,
			})
		},
		sendReply: func(w http.ResponseWriter) {
			writeJSON(w, http.StatusOK, map[string]any{
				"statusId":    "xyz",
				"requestedAt": "2024-01-01T00:00:00Z",
				"status":      "PENDING",
			})
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		f.mu.Lock()
		f.lastForm = r.PostForm
		reply := f.tokenReply
		f.mu.Unlock()
		reply(w)
	})
	mux.HandleFunc("POST /marketing/v4/email/single-send", func(w http.ResponseWriter, r *http.Request) {
		f.sendCalls.Add(1)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		f.mu.Lock()
		f.lastBody = body
		f.lastAuth = r.Header.Get("Authorization")
		f.lastCType = r.Header.Get("Content-Type")
		reply := f.sendReply
		f.mu.Unlock()
		reply(w)
	})
	mux.HandleFunc("GET /communication-preferences/v3/definitions", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"subscriptionDefinitions": []map[string]any{{"id": "1", "name": "Newsletter"}},
		})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeHubSpot) setTokenReply(fn func(w http.ResponseWriter)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenReply = fn
}

func (f *fakeHubSpot) setSendReply(fn func(w http.ResponseWriter)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendReply = fn
}

func (f *fakeHubSpot) form() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastForm
}

func (f *fakeHubSpot) body() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody
}

func (f *fakeHubSpot) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeHubSpot) contentType() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCType
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
