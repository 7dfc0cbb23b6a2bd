package service

import (
	"context"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/db"
	"github.com/ukydev/carkit/internal/models"
)

// MileageService guards mileage entries behind the two-stage ownership check:
// the parent vehicle is resolved by (vehicleId, userId) first, and only then
// is the entry resolved by (id, vehicleId). Both misses are the same
// NotFound. Each check-then-act sequence runs in one store transaction, so the
// vehicle cannot be cascade-deleted between the parent check and the entry
// operation.
type MileageService struct {
	vehicles db.VehicleCollection
	mileages db.MileageCollection
	tx       db.TxRunner
}

// NewMileageService wires the mileage service.
func NewMileageService(vehicles db.VehicleCollection, mileages db.MileageCollection, tx db.TxRunner) *MileageService {
	return &MileageService{vehicles: vehicles, mileages: mileages, tx: tx}
}

func (s *MileageService) parent(ctx context.Context, vehicleID, userID string) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindForUser(ctx, vehicleID, userID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NotFound("vehicle")
	}
	return vehicle, nil
}

// resolve walks the full chain: owned parent, then entry scoped to it.
func (s *MileageService) resolve(ctx context.Context, id, vehicleID, userID string) (*models.Mileage, error) {
	if _, err := s.parent(ctx, vehicleID, userID); err != nil {
		return nil, err
	}

	mileage, err := s.mileages.FindForVehicle(ctx, id, vehicleID)
	if err != nil {
		return nil, err
	}
	if mileage == nil {
		return nil, apperror.NotFound("mileage entry")
	}
	return mileage, nil
}

// List returns the vehicle's mileage history, newest date first.
func (s *MileageService) List(ctx context.Context, vehicleID, userID string) ([]models.Mileage, error) {
	var mileages []models.Mileage
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.parent(ctx, vehicleID, userID); err != nil {
			return err
		}
		var err error
		mileages, err = s.mileages.FindByVehicle(ctx, vehicleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mileages, nil
}

// Get returns one mileage entry reachable through the ownership chain.
func (s *MileageService) Get(ctx context.Context, id, vehicleID, userID string) (*models.Mileage, error) {
	var mileage *models.Mileage
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		var err error
		mileage, err = s.resolve(ctx, id, vehicleID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mileage, nil
}

// Create stores a new mileage entry under the owned vehicle.
func (s *MileageService) Create(ctx context.Context, in models.MileageInput, vehicleID, userID string) (*models.Mileage, error) {
	var mileage *models.Mileage
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		vehicle, err := s.parent(ctx, vehicleID, userID)
		if err != nil {
			return err
		}

		entry := models.Mileage{VehicleID: vehicle.ID}
		in.ApplyTo(&entry)
		mileage, err = s.mileages.Insert(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mileage, nil
}

// Update merges the provided fields onto the chain-verified entry.
func (s *MileageService) Update(ctx context.Context, id string, in models.MileageInput, vehicleID, userID string) (*models.Mileage, error) {
	var mileage *models.Mileage
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		var err error
		mileage, err = s.resolve(ctx, id, vehicleID, userID)
		if err != nil {
			return err
		}

		in.ApplyTo(mileage)
		return s.mileages.Update(ctx, *mileage)
	})
	if err != nil {
		return nil, err
	}
	return mileage, nil
}

// Delete removes the chain-verified entry.
func (s *MileageService) Delete(ctx context.Context, id, vehicleID, userID string) error {
	return s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.parent(ctx, vehicleID, userID); err != nil {
			return err
		}

		deleted, err := s.mileages.Delete(ctx, id, vehicleID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.NotFound("mileage entry")
		}
		return nil
	})
}
