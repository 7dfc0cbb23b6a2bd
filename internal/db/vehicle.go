package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukydev/carkit/internal/models"
)

// VehicleCollection defines vehicle storage. Every lookup that names a
// specific vehicle also names the owner; a vehicle that exists but belongs to
// someone else is indistinguishable from one that does not exist.
type VehicleCollection interface {
	Insert(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error)
	FindByUser(ctx context.Context, userID string) ([]models.Vehicle, error)
	FindForUser(ctx context.Context, id, userID string) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle models.Vehicle) error
	DeleteCascade(ctx context.Context, id, userID string) (bool, error)
}

// MongoVehicleCollection implements VehicleCollection. It holds the child
// collections and the client so a vehicle delete can take its mileages and
// spendings down inside one transaction.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
	Mileages   *mongo.Collection
	Spendings  *mongo.Collection
	Client     *mongo.Client
}

// Insert stores a new vehicle and returns it with timestamps set.
func (c *MongoVehicleCollection) Insert(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	now := time.Now()
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	if _, err := c.Collection.InsertOne(ctx, vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindByUser lists every vehicle owned by a user.
func (c *MongoVehicleCollection) FindByUser(ctx context.Context, userID string) ([]models.Vehicle, error) {
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []models.Vehicle{}, nil
	}

	cursor, err := c.Collection.Find(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindForUser finds a vehicle by (id, owner) in a single filter. A miss is
// (nil, nil) whether the vehicle is absent or owned by another user.
func (c *MongoVehicleCollection) FindForUser(ctx context.Context, id, userID string) (*models.Vehicle, error) {
	vehicleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": vehicleID, "user_id": ownerID}).Decode(&vehicle)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Update replaces a vehicle document, matching on (id, owner).
func (c *MongoVehicleCollection) Update(ctx context.Context, vehicle models.Vehicle) error {
	vehicle.UpdatedAt = time.Now()
	_, err := c.Collection.ReplaceOne(
		ctx,
		bson.M{"_id": vehicle.ID, "user_id": vehicle.UserID},
		vehicle,
	)
	return err
}

// DeleteCascade removes a vehicle and all of its mileage and spending records
// in one transaction, so no reader observes a half-deleted vehicle. Returns
// false when no vehicle matched (id, owner).
func (c *MongoVehicleCollection) DeleteCascade(ctx context.Context, id, userID string) (bool, error) {
	vehicleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}

	session, err := c.Client.StartSession()
	if err != nil {
		return false, err
	}
	defer session.EndSession(ctx)

	deleted, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := c.Collection.DeleteOne(sc, bson.M{"_id": vehicleID, "user_id": ownerID})
		if err != nil {
			return false, err
		}
		if result.DeletedCount == 0 {
			return false, nil
		}
		if _, err := c.Mileages.DeleteMany(sc, bson.M{"vehicle_id": vehicleID}); err != nil {
			return false, err
		}
		if _, err := c.Spendings.DeleteMany(sc, bson.M{"vehicle_id": vehicleID}); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return deleted.(bool), nil
}
