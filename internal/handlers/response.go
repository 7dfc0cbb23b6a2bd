// Package handlers implements the HTTP boundary: decode and validate input,
// call the services, translate errors into statuses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukydev/carkit/internal/apperror"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeError maps the apperror taxonomy onto statuses. Identity-provider
// failures are folded into the same 401 as credential failures, and ownership
// misses are plain 404s, per the no-leakage rules.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: appErr.Message})
		case errors.Is(appErr, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: appErr.Message, Fields: appErr.Fields})
		case errors.Is(appErr, apperror.ErrUnauthorized), errors.Is(appErr, apperror.ErrInvalidToken):
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: appErr.Message})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func decodeBody(r *http.Request, out interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return apperror.Validation(map[string]string{"body": "invalid JSON"})
	}
	return nil
}
