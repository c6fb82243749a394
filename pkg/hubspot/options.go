package hubspot

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hubmail/pkg/logger"
)

// Option configures the client and token providers.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func newOptions(opts ...Option) *options {
	o := &options{
		httpClient: http.DefaultClient,
		logger:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHTTPClient sets the HTTP client used for every outbound call.
// Request timeouts belong on this client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets the logger for outbound call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
