package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"hostpulse/internal/domain"
)

type APIResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "internal server error: failed to encode response", http.StatusInternalServerError)
	}
}

func JSONSuccess(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, payload)
}

func JSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Message: message})
}

// StatusFor maps a sampling error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrMetricUnavailable), errors.Is(err, domain.ErrVendorInterface),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
