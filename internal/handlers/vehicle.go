package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/middleware"
	"github.com/ukydev/carkit/internal/models"
	"github.com/ukydev/carkit/internal/service"
)

// VehicleHandler handles the vehicle CRUD endpoints.
type VehicleHandler struct {
	vehicles *service.VehicleService
}

// NewVehicleHandler creates the vehicle handler.
func NewVehicleHandler(vehicles *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// List returns all vehicles owned by the authenticated user.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	vehicles, err := h.vehicles.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Get returns one owned vehicle.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	vehicle, err := h.vehicles.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Create validates the body and stores a new vehicle.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	var in models.VehicleInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if fields := in.ValidateCreate(); len(fields) > 0 {
		writeError(w, apperror.Validation(fields))
		return
	}

	vehicle, err := h.vehicles.Create(r.Context(), in, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

// Update merges the provided fields onto an owned vehicle.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	var in models.VehicleInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if fields := in.ValidateUpdate(); len(fields) > 0 {
		writeError(w, apperror.Validation(fields))
		return
	}

	vehicle, err := h.vehicles.Update(r.Context(), chi.URLParam(r, "id"), in, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Delete removes an owned vehicle and everything attached to it.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	if err := h.vehicles.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
