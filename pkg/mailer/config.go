package mailer

// Config holds the send orchestrator settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	EmailID            string        `env:"HUBSPOT_EMAIL_ID"`
	RecipientEmail     string        `env:"RECIPIENT_EMAIL"`
	RecipientFirstName string        `env:"RECIPIENT_FIRSTNAME"`
	ContentFormat      ContentFormat `env:"EMAIL_CONTENT_FORMAT" envDefault:"text"`
}
