package hubspot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// Kind classifies a failure surfaced by this package.
type Kind uint8

const (
	// KindValidation is a missing or malformed caller-supplied value,
	// detected before any network activity.
	KindValidation Kind = iota + 1
	// KindRemoteAPI means HubSpot responded with a non-success status or an unreadable body.
	KindRemoteAPI
	// KindTransport means the request was sent but no response arrived.
	KindTransport
	// KindRequest means the request could not be built or sent.
	KindRequest
	// KindConfig means required configuration is missing.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRemoteAPI:
		return "remote_api"
	case KindTransport:
		return "transport"
	case KindRequest:
		return "request"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Kind sentinels. Every *Error matches exactly one of them with errors.Is.
var (
	ErrValidation = errors.New("hubspot: validation failed")
	ErrRemoteAPI  = errors.New("hubspot: remote API error")
	ErrTransport  = errors.New("hubspot: no response from server")
	ErrRequest    = errors.New("hubspot: request failed")
	ErrConfig     = errors.New("hubspot: invalid configuration")
)

var kindSentinels = map[Kind]error{
	KindValidation: ErrValidation,
	KindRemoteAPI:  ErrRemoteAPI,
	KindTransport:  ErrTransport,
	KindRequest:    ErrRequest,
	KindConfig:     ErrConfig,
}

const (
	noResponseMessage = "No response received from server. Please check your internet connection and try again."
	unknownMessage    = "Unknown error occurred"
)

// Error is the single error shape returned by this package.
type Error struct {
	// Cause is the original failure.
	Cause error
	// Details is the raw remote response body, when one was received.
	Details json.RawMessage
	// Message is the human-readable description.
	Message string
	// Missing lists absent or invalid configuration keys for KindConfig errors.
	Missing []string
	// Status is the remote HTTP status for KindRemoteAPI errors.
	Status int
	Kind   Kind
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// IsRemote reports whether the error came from a call to the remote platform.
func (e *Error) IsRemote() bool {
	switch e.Kind {
	case KindRemoteAPI, KindTransport, KindRequest:
		return true
	default:
		return false
	}
}

// DetailsMap decodes Details into a map. Returns nil when the body was not a JSON object.
func (e *Error) DetailsMap() map[string]any {
	if len(e.Details) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(e.Details, &m); err != nil {
		return nil
	}
	return m
}

// NewValidationError creates a KindValidation error.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewConfigError creates a KindConfig error enumerating the missing keys.
func NewConfigError(missing ...string) *Error {
	return &Error{
		Kind:    KindConfig,
		Missing: missing,
		Message: fmt.Sprintf("Missing required environment variables: %s. Please check your .env file.", strings.Join(missing, ", ")),
	}
}

// NewInvalidConfigError creates a KindConfig error for a key whose value is present but unusable.
func NewInvalidConfigError(key, reason string) *Error {
	return &Error{
		Kind:    KindConfig,
		Missing: []string{key},
		Message: fmt.Sprintf("Invalid environment variable %s: %s. Please check your .env file.", key, reason),
	}
}

// ResponseError reports a response from HubSpot that was not a success,
// or a success whose body could not be decoded.
type ResponseError struct {
	Body       []byte
	StatusCode int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("hubspot: unexpected response: status=%d", e.StatusCode)
}

// NoResponseError reports that a request was sent but no response arrived.
type NoResponseError struct {
	Err error
}

func (e *NoResponseError) Error() string {
	return "hubspot: no response: " + e.Err.Error()
}

func (e *NoResponseError) Unwrap() error { return e.Err }

// Normalize converts a transport or remote failure into an *Error whose message
// is prefixed with contextMessage. It never panics and always returns a value;
// an error that is already an *Error is returned as is.
func Normalize(err error, contextMessage string) *Error {
	var normalized *Error
	if errors.As(err, &normalized) {
		return normalized
	}

	if status, body, ok := remoteResponse(err); ok {
		return &Error{
			Kind:    KindRemoteAPI,
			Message: fmt.Sprintf("%s: Status %d - %s", contextMessage, status, remoteMessage(body)),
			Status:  status,
			Details: rawDetails(body),
			Cause:   err,
		}
	}

	if noResponse(err) {
		return &Error{
			Kind:    KindTransport,
			Message: contextMessage + ": " + noResponseMessage,
			Cause:   err,
		}
	}

	msg := unknownMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{
		Kind:    KindRequest,
		Message: contextMessage + ": " + msg,
		Cause:   err,
	}
}

func remoteResponse(err error) (int, []byte, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode, respErr.Body, true
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return status, retrieveErr.Body, true
	}

	return 0, nil, false
}

func noResponse(err error) bool {
	var nr *NoResponseError
	if errors.As(err, &nr) {
		return true
	}
	// http.Client.Do reports every failure to obtain a response as *url.Error.
	var ue *url.Error
	return errors.As(err, &ue)
}

// remoteMessage extracts message, then error, then falls back to the compact body.
// Entries of a validationResults list are appended; other shapes of that field are ignored.
func remoteMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)

	var rb map[string]any
	if err := json.Unmarshal(trimmed, &rb); err != nil {
		return string(trimmed)
	}

	var msg string
	switch {
	case nonEmptyString(rb["message"]):
		msg = rb["message"].(string)
	case nonEmptyString(rb["error"]):
		msg = rb["error"].(string)
	default:
		msg = compactJSON(trimmed)
	}

	if results, ok := rb["validationResults"].([]any); ok && len(results) > 0 {
		parts := make([]string, 0, len(results))
		for _, r := range results {
			parts = append(parts, validationMessage(r))
		}
		msg += " | Validation errors: " + strings.Join(parts, ", ")
	}

	return msg
}

func validationMessage(result any) string {
	entry, ok := result.(map[string]any)
	if !ok {
		return fmt.Sprint(result)
	}
	switch m := entry["message"].(type) {
	case nil:
		return ""
	case string:
		return m
	default:
		return fmt.Sprint(m)
	}
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func compactJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(body)
	}
	return buf.String()
}

func rawDetails(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	// Keep non-JSON bodies inspectable as a JSON string.
	quoted, _ := json.Marshal(string(trimmed))
	return quoted
}

// Credential sentinels returned by the token provider constructors.
var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("hubspot: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("hubspot: missing client secret")

	// ErrMissingRefreshToken is returned when OAuth mode has no refresh token.
	ErrMissingRefreshToken = errors.New("hubspot: missing refresh token")

	// ErrMissingAPIKey is returned when static mode has no API key.
	ErrMissingAPIKey = errors.New("hubspot: missing API key")

	// ErrUnknownAuthMode is returned for an unsupported AuthMode value.
	ErrUnknownAuthMode = errors.New("hubspot: unknown auth mode")

	// ErrUnknownTokenPolicy is returned for an unsupported TokenPolicy value.
	ErrUnknownTokenPolicy = errors.New("hubspot: unknown token policy")
)
