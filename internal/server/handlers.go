package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/hubmail/pkg/cache"
	"github.com/dmitrymomot/hubmail/pkg/hubspot"
	"github.com/dmitrymomot/hubmail/pkg/oauth"
)

// StateTTL bounds how long an authorization state stays valid.
const StateTTL = 10 * time.Minute

// CustomEmailSender sends the configured template with per-call content.
// *mailer.Mailer implements it.
type CustomEmailSender interface {
	SendCustomEmail(ctx context.Context, recipientEmail, customContent string) (*hubspot.SendResult, error)
}

// SubscriptionSource lists communication-preference definitions.
// *hubspot.Client implements it.
type SubscriptionSource interface {
	SubscriptionDefinitions(ctx context.Context) (map[string]any, error)
}

// SendRecorder observes send outcomes. *metrics.Metrics implements it.
type SendRecorder interface {
	RecordSend(err error)
}

type sendEmailRequest struct {
	Email   string `json:"email"`
	Content string `json:"content"`
}

// EmailHandler serves the send and subscription routes.
type EmailHandler struct {
	sender   CustomEmailSender
	subs     SubscriptionSource
	recorder SendRecorder
	logger   *slog.Logger
}

// Routes registers the email routes on r.
func (h *EmailHandler) Routes(r chi.Router) {
	r.Post("/send-email", h.sendEmail)
	if h.subs != nil {
		r.Get("/subscriptions", h.subscriptions)
	}
}

func (h *EmailHandler) sendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ErrBadRequest("Email and content are required", err))
		return
	}

	res, err := h.sender.SendCustomEmail(r.Context(), req.Email, req.Content)
	if h.recorder != nil {
		h.recorder.RecordSend(err)
	}
	if err != nil {
		writeError(w, classify(err, "Email and content are required", "Failed to send email"))
		return
	}

	writeOK(w, "Email sent successfully", res)
}

func (h *EmailHandler) subscriptions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.subs.SubscriptionDefinitions(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch subscription definitions", slog.String("error", err.Error()))
		writeError(w, ErrInternal("Failed to fetch subscriptions", err))
		return
	}
	writeOK(w, "Subscription definitions fetched", defs)
}

// OAuthHandler serves the app-install routes.
type OAuthHandler struct {
	provider oauth.Provider
	states   cache.Cache[struct{}]
	logger   *slog.Logger
}

// Routes registers the install routes on r.
func (h *OAuthHandler) Routes(r chi.Router) {
	r.Get("/init", h.init)
	r.Get("/validate-callback", h.callback)
}

func (h *OAuthHandler) init(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	if err := h.states.Set(r.Context(), state, struct{}{}, StateTTL); err != nil {
		writeError(w, ErrInternal("Failed to start authorization", err))
		return
	}

	authURL := h.provider.AuthorizationURL(state)
	h.logger.InfoContext(r.Context(), "redirecting to authorization page", slog.String("auth_url", authURL))
	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *OAuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		writeError(w, ErrBadRequest("Authorization was not granted", hubspot.NewValidationError(e+": "+q.Get("error_description"))))
		return
	}

	state := q.Get("state")
	if state == "" {
		writeError(w, ErrBadRequest("Invalid or expired state", hubspot.NewValidationError("State is required")))
		return
	}
	// Take claims the state; replayed or concurrent callbacks get ErrNotFound.
	if _, err := h.states.Take(r.Context(), state); err != nil {
		writeError(w, ErrBadRequest("Invalid or expired state", err))
		return
	}

	tok, err := h.provider.ExchangeCode(r.Context(), q.Get("code"))
	if err != nil {
		writeError(w, classify(err, "Authorization code is required", "Failed to exchange authorization code"))
		return
	}

	h.logger.InfoContext(r.Context(), "app connected", slog.Time("expiry", tok.Expiry))
	writeOK(w, "connected", tok)
}
