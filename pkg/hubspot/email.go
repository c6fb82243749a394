package hubspot

import (
	"strconv"
	"strings"
	"time"
)

const singleSendPath = "/marketing/v4/email/single-send"

// SendResult is the outcome of a single-send call.
type SendResult struct {
	Data        map[string]any `json:"data"`
	StatusID    string         `json:"statusId"`
	RequestedAt string         `json:"requestedAt"`
	Status      int            `json:"status"`
}

// RequestedTime parses RequestedAt as RFC 3339.
func (r *SendResult) RequestedTime() (time.Time, error) {
	return time.Parse(time.RFC3339, r.RequestedAt)
}

// ParseEmailID converts a template identifier to the integer HubSpot expects.
// Non-numeric input is a validation error rather than a silently sent NaN.
func ParseEmailID(emailID string) (int64, error) {
	s := strings.TrimSpace(emailID)
	if s == "" {
		return 0, NewValidationError("Email ID is required")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		verr := NewValidationError("Email ID must be numeric, got " + strconv.Quote(emailID))
		verr.Cause = err
		return 0, verr
	}
	return id, nil
}

type singleSendMessage struct {
	To string `json:"to"`
}

type singleSendRequest struct {
	ContactProperties map[string]any    `json:"contactProperties"`
	CustomProperties  map[string]any    `json:"customProperties"`
	Message           singleSendMessage `json:"message"`
	EmailID           int64             `json:"emailId"`
}

type singleSendResponse struct {
	StatusID    string `json:"statusId"`
	RequestedAt string `json:"requestedAt"`
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
