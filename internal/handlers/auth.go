package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/models"
	"github.com/ukydev/carkit/internal/service"
)

// AuthHandler handles the provider sign-in and token refresh endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// AppleAuth exchanges an Apple identity token for session tokens.
func (h *AuthHandler) AppleAuth(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, models.ProviderApple)
}

// GoogleAuth exchanges a Google identity token for session tokens.
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, models.ProviderGoogle)
}

func (h *AuthHandler) authenticate(w http.ResponseWriter, r *http.Request, provider models.Provider) {
	var req models.AuthRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.IdentityToken == "" {
		writeError(w, apperror.Validation(map[string]string{"identityToken": "identityToken is required"}))
		return
	}

	resp, err := h.auth.Authenticate(r.Context(), provider, req.IdentityToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Refresh re-mints both tokens from the refresh token in the path.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := chi.URLParam(r, "refreshToken")
	if refreshToken == "" {
		writeError(w, apperror.Unauthorized())
		return
	}

	resp, err := h.auth.Refresh(r.Context(), refreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
