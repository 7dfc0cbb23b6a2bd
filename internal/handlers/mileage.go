package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/middleware"
	"github.com/ukydev/carkit/internal/models"
	"github.com/ukydev/carkit/internal/service"
)

// MileageHandler handles the nested mileage endpoints.
type MileageHandler struct {
	mileages *service.MileageService
}

// NewMileageHandler creates the mileage handler.
func NewMileageHandler(mileages *service.MileageService) *MileageHandler {
	return &MileageHandler{mileages: mileages}
}

// List returns the vehicle's mileage history.
func (h *MileageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	mileages, err := h.mileages.List(r.Context(), chi.URLParam(r, "vehicleId"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mileages)
}

// Get returns one mileage entry.
func (h *MileageHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	mileage, err := h.mileages.Get(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "vehicleId"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mileage)
}

// Create validates the body and stores a new mileage entry.
func (h *MileageHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	var in models.MileageInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if fields := in.ValidateCreate(); len(fields) > 0 {
		writeError(w, apperror.Validation(fields))
		return
	}

	mileage, err := h.mileages.Create(r.Context(), in, chi.URLParam(r, "vehicleId"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mileage)
}

// Update merges the provided fields onto a mileage entry.
func (h *MileageHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	var in models.MileageInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if fields := in.ValidateUpdate(); len(fields) > 0 {
		writeError(w, apperror.Validation(fields))
		return
	}

	mileage, err := h.mileages.Update(r.Context(), chi.URLParam(r, "id"), in, chi.URLParam(r, "vehicleId"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mileage)
}

// Delete removes a mileage entry.
func (h *MileageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	if err := h.mileages.Delete(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "vehicleId"), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
