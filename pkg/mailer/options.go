package mailer

import "log/slog"

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the logger for send outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRenderer overrides the renderer derived from Config.ContentFormat.
func WithRenderer(r *Renderer) Option {
	return func(m *Mailer) {
		if r != nil {
			m.renderer = r
		}
	}
}
