package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ukydev/carkit/internal/identity"
	"github.com/ukydev/carkit/internal/models"
)

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) FindActiveByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindByProviderIdentity(ctx context.Context, provider models.Provider, subject string) (*models.User, error) {
	args := m.Called(ctx, provider, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) CreateFromProviderIdentity(ctx context.Context, provider models.Provider, subject, email string) (*models.User, error) {
	args := m.Called(ctx, provider, subject, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehicleCollection is a mock implementation of db.VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) Insert(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	args := m.Called(ctx, vehicle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindByUser(ctx context.Context, userID string) ([]models.Vehicle, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindForUser(ctx context.Context, id, userID string) (*models.Vehicle, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) Update(ctx context.Context, vehicle models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) DeleteCascade(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockMileageCollection is a mock implementation of db.MileageCollection
type MockMileageCollection struct {
	mock.Mock
}

func (m *MockMileageCollection) Insert(ctx context.Context, mileage models.Mileage) (*models.Mileage, error) {
	args := m.Called(ctx, mileage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mileage), args.Error(1)
}

func (m *MockMileageCollection) FindByVehicle(ctx context.Context, vehicleID string) ([]models.Mileage, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mileage), args.Error(1)
}

func (m *MockMileageCollection) FindForVehicle(ctx context.Context, id, vehicleID string) (*models.Mileage, error) {
	args := m.Called(ctx, id, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mileage), args.Error(1)
}

func (m *MockMileageCollection) Update(ctx context.Context, mileage models.Mileage) error {
	args := m.Called(ctx, mileage)
	return args.Error(0)
}

func (m *MockMileageCollection) Delete(ctx context.Context, id, vehicleID string) (bool, error) {
	args := m.Called(ctx, id, vehicleID)
	return args.Bool(0), args.Error(1)
}

// MockSpendingCollection is a mock implementation of db.SpendingCollection
type MockSpendingCollection struct {
	mock.Mock
}

func (m *MockSpendingCollection) Insert(ctx context.Context, spending models.Spending) (*models.Spending, error) {
	args := m.Called(ctx, spending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Spending), args.Error(1)
}

func (m *MockSpendingCollection) FindByVehicle(ctx context.Context, vehicleID string) ([]models.Spending, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Spending), args.Error(1)
}

func (m *MockSpendingCollection) FindForVehicle(ctx context.Context, id, vehicleID string) (*models.Spending, error) {
	args := m.Called(ctx, id, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Spending), args.Error(1)
}

func (m *MockSpendingCollection) Update(ctx context.Context, spending models.Spending) error {
	args := m.Called(ctx, spending)
	return args.Error(0)
}

func (m *MockSpendingCollection) Delete(ctx context.Context, id, vehicleID string) (bool, error) {
	args := m.Called(ctx, id, vehicleID)
	return args.Bool(0), args.Error(1)
}

type txMarker struct{}

// recordingTxRunner runs the callback inline, counting transactions and
// stamping the context so tests can assert collection calls joined one.
type recordingTxRunner struct {
	runs int
}

func (r *recordingTxRunner) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.runs++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

func insideTx(ctx context.Context) bool {
	inside, _ := ctx.Value(txMarker{}).(bool)
	return inside
}

// MockVerifier is a mock implementation of identity.Verifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, rawToken string) (*identity.Identity, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}
