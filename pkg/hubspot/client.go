package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const subscriptionDefinitionsPath = "/communication-preferences/v3/definitions"

// Client issues authenticated calls to the HubSpot API.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	tokens     TokenProvider
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// New creates a client that authenticates every call with a token from tokens.
func New(cfg Config, tokens TokenProvider, opts ...Option) *Client {
	o := newOptions(opts...)
	return &Client{
		tokens:     tokens,
		httpClient: o.httpClient,
		logger:     o.logger,
		baseURL:    cfg.baseURL(),
	}
}

// SendMarketingEmail sends the published email template emailID to recipientEmail.
// contactProperties are merged into the recipient profile; customProperties into
// the template context. Input is validated before any network activity.
func (c *Client) SendMarketingEmail(ctx context.Context, emailID, recipientEmail string, contactProperties, customProperties map[string]any) (*SendResult, error) {
	id, err := ParseEmailID(emailID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(recipientEmail) == "" {
		return nil, NewValidationError("Recipient email is required")
	}

	payload := singleSendRequest{
		EmailID:           id,
		Message:           singleSendMessage{To: recipientEmail},
		ContactProperties: nonNil(contactProperties),
		CustomProperties:  nonNil(customProperties),
	}

	var body singleSendResponse
	raw, status, err := c.do(ctx, http.MethodPost, singleSendPath, nil, payload, &body)
	if err != nil {
		nerr := Normalize(err, "Error sending marketing email")
		c.logger.ErrorContext(ctx, "single-send failed",
			slog.Int64("email_id", id),
			slog.String("kind", nerr.Kind.String()),
			slog.Int("status", nerr.Status),
		)
		return nil, nerr
	}

	var data map[string]any
	_ = json.Unmarshal(raw, &data)

	return &SendResult{
		Status:      status,
		StatusID:    body.StatusID,
		RequestedAt: body.RequestedAt,
		Data:        data,
	}, nil
}

// Get issues an authenticated GET to path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	_, _, err := c.do(ctx, http.MethodGet, path, query, nil, out)
	return err
}

// SubscriptionDefinitions returns the portal's communication-preference definitions.
func (c *Client) SubscriptionDefinitions(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.Get(ctx, subscriptionDefinitionsPath, nil, &out); err != nil {
		return nil, Normalize(err, "Error fetching subscription definitions")
	}
	return out, nil
}

// do performs one authenticated request. Transport and remote failures are
// returned as *NoResponseError and *ResponseError for Normalize to classify;
// token failures are returned already normalized.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) ([]byte, int, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, 0, err
	}

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &NoResponseError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &NoResponseError{Err: err}
	}

	c.logger.DebugContext(ctx, "hubspot call completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return raw, resp.StatusCode, &ResponseError{StatusCode: resp.StatusCode, Body: raw}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, resp.StatusCode, errors.Join(&ResponseError{StatusCode: resp.StatusCode, Body: raw}, err)
		}
	}

	return raw, resp.StatusCode, nil
}

// Healthcheck returns a readiness check that succeeds when a bearer credential can be obtained.
func Healthcheck(tokens TokenProvider) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := tokens.Token(ctx)
		return err
	}
}
