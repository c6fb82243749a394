package hubspot_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
)

func newTestClient(t *testing.T, f *fakeHubSpot) *hubspot.Client {
	t.Helper()

	cfg := oauthConfig(f.URL)
	tokens, err := hubspot.NewTokenProvider(cfg, hubspot.WithHTTPClient(f.Client()))
	require.NoError(t, err)
	return hubspot.New(cfg, tokens, hubspot.WithHTTPClient(f.Client()))
}

func TestClient_SendMarketingEmail(t *testing.T) {
	t.Parallel()

	t.Run("sends payload with bearer token", func(t *testing.T) {
		t.Parallel()

		f := newFakeHubSpot(t)
		c := newTestClient(t, f)

		res, err := c.SendMarketingEmail(context.Background(), "123", "a@b.co",
			map[string]any{"firstname": "Ann"}, nil)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, res.Status)
		require.Equal(t, "xyz", res.StatusID)
		require.Equal(t, "2024-01-01T00:00:00Z", res.RequestedAt)
		require.Equal(t, "PENDING", res.Data["status"])

		ts, err := res.RequestedTime()
		require.NoError(t, err)
		require.Equal(t, 2024, ts.Year())

		body := f.body()
		require.Equal(t, float64(123), body["emailId"])
		require.Equal(t, map[string]any{"to": "a@b.co"}, body["message"])
		require.Equal(t, map[string]any{"firstname": "Ann"}, body["contactProperties"])
		require.Equal(t, map[string]any{}, body["customProperties"])
		require.Equal(t, "Bearer access-1", f.auth())
		require.Equal(t, "application/json", f.contentType())
	})

	t.Run("non-numeric email ID fails before network", func(t *testing.T) {
		t.Parallel()

		f := newFakeHubSpot(t)
		c := newTestClient(t, f)

		_, err := c.SendMarketingEmail(context.Background(), "abc", "a@b.co", nil, nil)
		require.ErrorIs(t, err, hubspot.ErrValidation)
		require.Zero(t, f.tokenCalls.Load())
		require.Zero(t, f.sendCalls.Load())
	})

	t.Run("empty recipient fails before network", func(t *testing.T) {
		t.Parallel()

		f := newFakeHubSpot(t)
		c := newTestClient(t, f)

		_, err := c.SendMarketingEmail(context.Background(), "123", " ", nil, nil)
		require.ErrorIs(t, err, hubspot.ErrValidation)
		require.EqualError(t, err, "Recipient email is required")
		require.Zero(t, f.tokenCalls.Load())
	})

	t.Run("remote rejection is normalized", func(t *testing.T) {
		t.Parallel()

		f := newFakeHubSpot(t)
		f.setSendReply(func(w http.ResponseWriter) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message":           "Invalid input",
				"validationResults": []map[string]any{{"message": "emailId not found"}},
			})
		})
		c := newTestClient(t, f)

		_, err := c.SendMarketingEmail(context.Background(), "123", "a@b.co", nil, nil)
		require.ErrorIs(t, err, hubspot.ErrRemoteAPI)
		require.EqualError(t, err,
			"Error sending marketing email: Status 422 - Invalid input | Validation errors: emailId not found")

		var herr *hubspot.Error
		require.ErrorAs(t, err, &herr)
		require.Equal(t, http.StatusUnprocessableEntity, herr.Status)
		require.Equal(t, "Invalid input", herr.DetailsMap()["message"])
	})

	t.Run("token failure surfaces without a send", func(t *testing.T) {
		t.Parallel()

		f := newFakeHubSpot(t)
		f.setTokenReply(func(w http.ResponseWriter) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad refresh token"})
		})
		c := newTestClient(t, f)

		_, err := c.SendMarketingEmail(context.Background(), "123", "a@b.co", nil, nil)
		require.ErrorIs(t, err, hubspot.ErrRemoteAPI)
		require.EqualError(t, err, "Error fetching access token: Status 400 - bad refresh token")
		require.Zero(t, f.sendCalls.Load())
	})

	t.Run("static mode skips token endpoint", func(t *testing.T) {
		t.Parallel()

		f := newFakeHubSpot(t)
		cfg := hubspot.Config{AuthMode: hubspot.AuthModeStatic, APIKey: "pat-1", BaseURL: f.URL}
		tokens, err := hubspot.NewTokenProvider(cfg)
		require.NoError(t, err)
		c := hubspot.New(cfg, tokens, hubspot.WithHTTPClient(f.Client()))

		_, err = c.SendMarketingEmail(context.Background(), "7", "a@b.co", nil, nil)
		require.NoError(t, err)
		require.Equal(t, "Bearer pat-1", f.auth())
		require.Zero(t, f.tokenCalls.Load())
	})

	t.Run("unreachable server is a transport error", func(t *testing.T) {
		t.Parallel()

		f := newFakeHubSpot(t)
		baseURL := f.URL
		f.Close()

		cfg := hubspot.Config{AuthMode: hubspot.AuthModeStatic, APIKey: "pat-1", BaseURL: baseURL}
		tokens, err := hubspot.NewTokenProvider(cfg)
		require.NoError(t, err)
		c := hubspot.New(cfg, tokens)

		_, err = c.SendMarketingEmail(context.Background(), "7", "a@b.co", nil, nil)
		require.ErrorIs(t, err, hubspot.ErrTransport)
		require.EqualError(t, err,
			"Error sending marketing email: No response received from server. Please check your internet connection and try again.")
	})
}

func TestClient_SubscriptionDefinitions(t *testing.T) {
	t.Parallel()

	f := newFakeHubSpot(t)
	c := newTestClient(t, f)

	defs, err := c.SubscriptionDefinitions(context.Background())
	require.NoError(t, err)
	require.Contains(t, defs, "subscriptionDefinitions")
	require.Equal(t, "Bearer access-1", f.auth())
}

func TestClient_Get(t *testing.T) {
	t.Parallel()

	f := newFakeHubSpot(t)
	c := newTestClient(t, f)

	var out struct {
		Definitions []struct {
			Name string `json:"name"`
		} `json:"subscriptionDefinitions"`
	}
	err := c.Get(context.Background(), "/communication-preferences/v3/definitions", url.Values{"archived": {"false"}}, &out)
	require.NoError(t, err)
	require.Len(t, out.Definitions, 1)
	require.Equal(t, "Newsletter", out.Definitions[0].Name)

	err = c.Get(context.Background(), "/missing", nil, nil)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, hubspot.Normalize(err, "x").Status)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	ok, err := hubspot.NewStaticTokenProvider("pat")
	require.NoError(t, err)
	require.NoError(t, hubspot.Healthcheck(ok)(context.Background()))

	f := newFakeHubSpot(t)
	f.setTokenReply(func(w http.ResponseWriter) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "nope"})
	})
	require.ErrorIs(t, hubspot.Healthcheck(mustRefreshProvider(t, f))(context.Background()), hubspot.ErrRemoteAPI)
}
