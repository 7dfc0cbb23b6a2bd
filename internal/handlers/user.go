package handlers

import (
	"net/http"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/middleware"
	"github.com/ukydev/carkit/internal/service"
)

// UserHandler handles account-level endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates the user handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// DeleteMe soft-deletes the authenticated user's account. Owned data is kept
// but becomes unreachable.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	if err := h.users.SoftDelete(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
