package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/db"
	"github.com/ukydev/carkit/internal/models"
)

// VehicleService is the root of the ownership chain: every vehicle operation
// filters on (vehicleId, ownerUserId) in one query, so a vehicle owned by
// someone else looks exactly like a vehicle that does not exist.
type VehicleService struct {
	vehicles db.VehicleCollection
}

// NewVehicleService wires the vehicle service.
func NewVehicleService(vehicles db.VehicleCollection) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// List returns every vehicle owned by the user.
func (s *VehicleService) List(ctx context.Context, userID string) ([]models.Vehicle, error) {
	return s.vehicles.FindByUser(ctx, userID)
}

// Get returns a vehicle only when it is owned by the user.
func (s *VehicleService) Get(ctx context.Context, id, userID string) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NotFound("vehicle")
	}
	return vehicle, nil
}

// Create stores a new vehicle owned by the user. Input is validated at the
// boundary before it gets here.
func (s *VehicleService) Create(ctx context.Context, in models.VehicleInput, userID string) (*models.Vehicle, error) {
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.Unauthorized()
	}

	vehicle := models.Vehicle{UserID: ownerID}
	in.ApplyTo(&vehicle)
	return s.vehicles.Insert(ctx, vehicle)
}

// Update merges the provided fields onto the owned vehicle. Fields absent
// from the input keep their stored values.
func (s *VehicleService) Update(ctx context.Context, id string, in models.VehicleInput, userID string) (*models.Vehicle, error) {
	vehicle, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(vehicle)
	if err := s.vehicles.Update(ctx, *vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete removes the owned vehicle together with all of its mileage and
// spending records.
func (s *VehicleService) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.vehicles.DeleteCascade(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("vehicle")
	}
	return nil
}
