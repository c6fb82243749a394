// Package mailer sends a published HubSpot marketing email template to a
// single recipient with per-call content.
//
// # Architecture
//
//   - EmailSender: the delivery interface; *hubspot.Client implements it
//   - Renderer: prepares custom content as text, markdown or HTML
//   - Mailer: validates input, builds template properties and delegates to the sender
//
// # Usage
//
//	tokens, err := hubspot.NewTokenProvider(hsCfg)
//	if err != nil {
//		return err
//	}
//	client := hubspot.New(hsCfg, tokens)
//
//	m, err := mailer.New(client, mailer.Config{
//		EmailID:            "123456",
//		RecipientFirstName: "Ann",
//		ContentFormat:      mailer.FormatMarkdown,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := m.SendCustomEmail(ctx, "ann@example.com", "Hey, we have a **great** deal for you!")
//
// # Template properties
//
// Every send sets the contact property "firstname" from Config.RecipientFirstName.
// SendCustomEmail also sets the custom property "content" to the rendered content,
// available in the template as {{ custom.content }}.
//
// # Markdown
//
// Markdown content is converted with goldmark and sanitized with bluemonday.
// A call-to-action link is written as:
//
//	[!cta|Get the deal](https://example.com/deal)
//
// and rendered as an anchor with class "cta".
//
// # Errors
//
// ErrNoRecipient and ErrNoContent match hubspot.ErrValidation and are returned
// before any network activity. Sender errors are returned unchanged.
package mailer
