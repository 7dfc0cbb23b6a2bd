package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/middleware"
	"github.com/ukydev/carkit/internal/models"
	"github.com/ukydev/carkit/internal/service"
)

// SpendingHandler handles the nested spending endpoints.
type SpendingHandler struct {
	spendings *service.SpendingService
}

// NewSpendingHandler creates the spending handler.
func NewSpendingHandler(spendings *service.SpendingService) *SpendingHandler {
	return &SpendingHandler{spendings: spendings}
}

// List returns the vehicle's spendings.
func (h *SpendingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	spendings, err := h.spendings.List(r.Context(), chi.URLParam(r, "vehicleId"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spendings)
}

// Get returns one spending.
func (h *SpendingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	spending, err := h.spendings.Get(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "vehicleId"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spending)
}

// Create validates the body and stores a new spending.
func (h *SpendingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	var in models.SpendingInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if fields := in.ValidateCreate(); len(fields) > 0 {
		writeError(w, apperror.Validation(fields))
		return
	}

	spending, err := h.spendings.Create(r.Context(), in, chi.URLParam(r, "vehicleId"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, spending)
}

// Update merges the provided fields onto a spending.
func (h *SpendingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	var in models.SpendingInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if fields := in.ValidateUpdate(); len(fields) > 0 {
		writeError(w, apperror.Validation(fields))
		return
	}

	spending, err := h.spendings.Update(r.Context(), chi.URLParam(r, "id"), in, chi.URLParam(r, "vehicleId"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spending)
}

// Delete removes a spending.
func (h *SpendingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	if err := h.spendings.Delete(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "vehicleId"), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
