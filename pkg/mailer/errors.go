package mailer

import (
	"errors"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	// It matches hubspot.ErrValidation.
	ErrNoRecipient = hubspot.NewValidationError("Recipient email is required")

	// ErrNoContent indicates no custom content was provided.
	// It matches hubspot.ErrValidation.
	ErrNoContent = hubspot.NewValidationError("Email content is required")

	// ErrUnknownFormat indicates an unsupported content format.
	ErrUnknownFormat = errors.New("mailer: unknown content format")

	// ErrRenderFailed indicates the content could not be rendered.
	ErrRenderFailed = errors.New("mailer: failed to render content")
)
