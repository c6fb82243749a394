package oauth

import (
	"errors"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
)

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrMissingRedirectURL is returned when the redirect URL is not provided.
	ErrMissingRedirectURL = errors.New("oauth: missing redirect URL")

	// ErrInvalidScope is returned for a scope name HubSpot would not accept.
	ErrInvalidScope = errors.New("oauth: invalid scope")

	// ErrMissingCode is returned by ExchangeCode for an empty code.
	// It matches hubspot.ErrValidation.
	ErrMissingCode = hubspot.NewValidationError("Authorization code is required")

	// ErrScopesFile is returned when a scopes file cannot be read or parsed.
	ErrScopesFile = errors.New("oauth: invalid scopes file")
)
