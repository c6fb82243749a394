// Package logger builds the structured slog loggers used across hubmail.
//
// Records are JSON on stdout. Context extractors add request-scoped values
// (such as the request ID) to every record, and when SENTRY_DSN is set,
// warnings and errors are also forwarded to Sentry:
//
//	log := logger.FromConfig(logger.Config{Level: "info", SentryDSN: dsn}, requestIDExtractor)
//	logger.Success(ctx, log, "email sent", slog.String("status_id", res.StatusID))
//
// Success and Failure keep the success/error vocabulary of send reports while
// staying ordinary info/error records.
package logger
