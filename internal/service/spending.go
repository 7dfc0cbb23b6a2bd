package service

import (
	"context"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/db"
	"github.com/ukydev/carkit/internal/models"
)

// SpendingService guards spendings behind the same transactional two-stage
// ownership check as MileageService.
type SpendingService struct {
	vehicles  db.VehicleCollection
	spendings db.SpendingCollection
	tx        db.TxRunner
}

// NewSpendingService wires the spending service.
func NewSpendingService(vehicles db.VehicleCollection, spendings db.SpendingCollection, tx db.TxRunner) *SpendingService {
	return &SpendingService{vehicles: vehicles, spendings: spendings, tx: tx}
}

func (s *SpendingService) parent(ctx context.Context, vehicleID, userID string) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindForUser(ctx, vehicleID, userID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NotFound("vehicle")
	}
	return vehicle, nil
}

// resolve walks the full chain: owned parent, then spending scoped to it.
func (s *SpendingService) resolve(ctx context.Context, id, vehicleID, userID string) (*models.Spending, error) {
	if _, err := s.parent(ctx, vehicleID, userID); err != nil {
		return nil, err
	}

	spending, err := s.spendings.FindForVehicle(ctx, id, vehicleID)
	if err != nil {
		return nil, err
	}
	if spending == nil {
		return nil, apperror.NotFound("spending")
	}
	return spending, nil
}

// List returns the vehicle's spendings, newest date first.
func (s *SpendingService) List(ctx context.Context, vehicleID, userID string) ([]models.Spending, error) {
	var spendings []models.Spending
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.parent(ctx, vehicleID, userID); err != nil {
			return err
		}
		var err error
		spendings, err = s.spendings.FindByVehicle(ctx, vehicleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return spendings, nil
}

// Get returns one spending reachable through the ownership chain.
func (s *SpendingService) Get(ctx context.Context, id, vehicleID, userID string) (*models.Spending, error) {
	var spending *models.Spending
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		var err error
		spending, err = s.resolve(ctx, id, vehicleID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return spending, nil
}

// Create stores a new spending under the owned vehicle.
func (s *SpendingService) Create(ctx context.Context, in models.SpendingInput, vehicleID, userID string) (*models.Spending, error) {
	var spending *models.Spending
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		vehicle, err := s.parent(ctx, vehicleID, userID)
		if err != nil {
			return err
		}

		entry := models.Spending{VehicleID: vehicle.ID}
		in.ApplyTo(&entry)
		spending, err = s.spendings.Insert(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return spending, nil
}

// Update merges the provided fields onto the chain-verified spending.
func (s *SpendingService) Update(ctx context.Context, id string, in models.SpendingInput, vehicleID, userID string) (*models.Spending, error) {
	var spending *models.Spending
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		var err error
		spending, err = s.resolve(ctx, id, vehicleID, userID)
		if err != nil {
			return err
		}

		in.ApplyTo(spending)
		return s.spendings.Update(ctx, *spending)
	})
	if err != nil {
		return nil, err
	}
	return spending, nil
}

// Delete removes the chain-verified spending.
func (s *SpendingService) Delete(ctx context.Context, id, vehicleID, userID string) error {
	return s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.parent(ctx, vehicleID, userID); err != nil {
			return err
		}

		deleted, err := s.spendings.Delete(ctx, id, vehicleID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.NotFound("spending")
		}
		return nil
	})
}
