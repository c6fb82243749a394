// Package middlewares provides net/http middleware for the HTTP surface:
// request IDs, panic recovery, request timeouts and request logging.
//
// Every constructor returns func(http.Handler) http.Handler and can be
// passed to chi's Router.Use:
//
//	r := chi.NewRouter()
//	r.Use(
//		middlewares.RequestID(),
//		middlewares.RequestLogger(log),
//		middlewares.Recover(middlewares.WithRecoverLogger(log)),
//		middlewares.Timeout(30*time.Second),
//	)
//
// Build the logger with middlewares.RequestIDExtractor() so every record
// written with a request context carries request_id.
package middlewares
