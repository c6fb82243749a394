package server

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
)

// HTTPError carries everything needed to render a failed request.
type HTTPError struct {
	// Err is the underlying error. Its message is exposed as the "error" field.
	Err error

	// Message is the user-facing summary.
	Message string

	// Code is the HTTP status code.
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, err error) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Message: message, Err: err}
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, err error) *HTTPError {
	return &HTTPError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// classify maps err to 400 for validation failures and to 500 otherwise,
// using the endpoint's message for each case.
func classify(err error, badRequest, internal string) *HTTPError {
	if errors.Is(err, hubspot.ErrValidation) {
		return ErrBadRequest(badRequest, err)
	}
	return ErrInternal(internal, err)
}
