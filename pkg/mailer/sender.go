package mailer

import (
	"context"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
)

// EmailSender delivers a published email template to one recipient.
// *hubspot.Client implements it.
type EmailSender interface {
	SendMarketingEmail(ctx context.Context, emailID, recipientEmail string, contactProperties, customProperties map[string]any) (*hubspot.SendResult, error)
}
