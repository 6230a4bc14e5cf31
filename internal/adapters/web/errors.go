package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopfront/internal/ai"
	"shopfront/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps application errors onto HTTP statuses. Anything
// unrecognized is treated as a bad request; genuine server faults surface as
// panics and are handled by Recoverer.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrOutOfStock), errors.Is(err, core.ErrInsufficientStock):
		writeError(w, r, err.Error(), "CONFLICT", http.StatusConflict)
	case errors.Is(err, ai.ErrDisabled):
		writeError(w, r, err.Error(), "AI_DISABLED", http.StatusServiceUnavailable)
	case errors.Is(err, ai.ErrUnauthorized):
		writeError(w, r, err.Error(), "UPSTREAM_REJECTED", http.StatusBadGateway)
	default:
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	}
}
