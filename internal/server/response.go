package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
)

// Response is the JSON envelope for every API route.
type Response struct {
	Data    any            `json:"data,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Message string         `json:"message"`
	Error   string         `json:"error,omitempty"`
	Success bool           `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, e *HTTPError) {
	resp := Response{Message: e.Message}
	if e.Err != nil {
		resp.Error = e.Err.Error()
		var herr *hubspot.Error
		if errors.As(e.Err, &herr) {
			resp.Details = herr.DetailsMap()
		}
	}
	writeJSON(w, e.Code, resp)
}
