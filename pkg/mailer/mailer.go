package mailer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
	"github.com/dmitrymomot/hubmail/pkg/logger"
	"github.com/dmitrymomot/hubmail/pkg/sanitizer"
)

// previewLength caps the content preview written to success logs, in runes.
const previewLength = 80

// Mailer sends the configured marketing email template with per-call content.
// It keeps no state between calls.
type Mailer struct {
	sender   EmailSender
	renderer *Renderer
	logger   *slog.Logger
	config   Config
}

// New creates a Mailer. Returns ErrUnknownFormat if cfg.ContentFormat is not supported
// and no renderer is supplied through WithRenderer.
func New(sender EmailSender, cfg Config, opts ...Option) (*Mailer, error) {
	m := &Mailer{
		sender: sender,
		config: cfg,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.renderer == nil {
		r, err := NewRenderer(cfg.ContentFormat)
		if err != nil {
			return nil, err
		}
		m.renderer = r
	}

	return m, nil
}

// SendCustomEmail sends the template to recipientEmail with customContent
// exposed to the template as the "content" custom property and the configured
// first name as the "firstname" contact property.
//
// Missing input fails with ErrNoRecipient or ErrNoContent before any network
// activity. Sender errors are returned unchanged.
func (m *Mailer) SendCustomEmail(ctx context.Context, recipientEmail, customContent string) (*hubspot.SendResult, error) {
	if strings.TrimSpace(recipientEmail) == "" {
		return nil, ErrNoRecipient
	}
	if strings.TrimSpace(customContent) == "" {
		return nil, ErrNoContent
	}

	content, err := m.renderer.Render(customContent)
	if err != nil {
		return nil, err
	}

	res, err := m.sender.SendMarketingEmail(ctx, m.config.EmailID, recipientEmail,
		m.contactProperties(),
		map[string]any{"content": content},
	)
	if err != nil {
		logger.Failure(ctx, m.logger, "failed to send custom email", err, slog.String("to", recipientEmail))
		return nil, err
	}

	logger.Success(ctx, m.logger, "email sent",
		slog.String("status_id", res.StatusID),
		slog.Int("status", res.Status),
		slog.String("to", recipientEmail),
		slog.String("preview", contentPreview(content)),
	)
	return res, nil
}

// SendDefault sends the template to the configured recipient with contact
// properties only.
func (m *Mailer) SendDefault(ctx context.Context) (*hubspot.SendResult, error) {
	if strings.TrimSpace(m.config.RecipientEmail) == "" {
		return nil, ErrNoRecipient
	}

	res, err := m.sender.SendMarketingEmail(ctx, m.config.EmailID, m.config.RecipientEmail, m.contactProperties(), nil)
	if err != nil {
		logger.Failure(ctx, m.logger, "failed to send email", err, slog.String("to", m.config.RecipientEmail))
		return nil, err
	}

	logger.Success(ctx, m.logger, "email sent",
		slog.String("status_id", res.StatusID),
		slog.Int("status", res.Status),
		slog.String("to", m.config.RecipientEmail),
	)
	return res, nil
}

// DefaultRecipient returns the configured recipient address.
func (m *Mailer) DefaultRecipient() string {
	return m.config.RecipientEmail
}

func (m *Mailer) contactProperties() map[string]any {
	return map[string]any{"firstname": m.config.RecipientFirstName}
}

// contentPreview returns the plain text of rendered content on one line,
// cut to previewLength runes.
func contentPreview(rendered string) string {
	text := strings.Join(strings.Fields(sanitizer.StripHTML(rendered)), " ")
	if r := []rune(text); len(r) > previewLength {
		return string(r[:previewLength]) + "..."
	}
	return text
}
