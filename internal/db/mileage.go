package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/carkit/internal/models"
)

// MileageCollection defines mileage storage. Specific lookups are always
// scoped to the parent vehicle; the ownership of that vehicle is checked by
// the caller before any call lands here.
type MileageCollection interface {
	Insert(ctx context.Context, mileage models.Mileage) (*models.Mileage, error)
	FindByVehicle(ctx context.Context, vehicleID string) ([]models.Mileage, error)
	FindForVehicle(ctx context.Context, id, vehicleID string) (*models.Mileage, error)
	Update(ctx context.Context, mileage models.Mileage) error
	Delete(ctx context.Context, id, vehicleID string) (bool, error)
}

// MongoMileageCollection implements MileageCollection for MongoDB.
type MongoMileageCollection struct {
	Collection *mongo.Collection
}

// Insert stores a new mileage entry and returns it with timestamps set.
func (c *MongoMileageCollection) Insert(ctx context.Context, mileage models.Mileage) (*models.Mileage, error) {
	now := time.Now()
	mileage.ID = primitive.NewObjectID()
	mileage.CreatedAt = now
	mileage.UpdatedAt = now

	if _, err := c.Collection.InsertOne(ctx, mileage); err != nil {
		return nil, err
	}
	return &mileage, nil
}

// FindByVehicle lists a vehicle's mileage entries, newest date first.
func (c *MongoMileageCollection) FindByVehicle(ctx context.Context, vehicleID string) ([]models.Mileage, error) {
	parentID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return []models.Mileage{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{"vehicle_id": parentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	mileages := []models.Mileage{}
	if err := cursor.All(ctx, &mileages); err != nil {
		return nil, err
	}
	return mileages, nil
}

// FindForVehicle finds a mileage entry by (id, vehicle). A miss is (nil, nil).
func (c *MongoMileageCollection) FindForVehicle(ctx context.Context, id, vehicleID string) (*models.Mileage, error) {
	entryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	parentID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, nil
	}

	var mileage models.Mileage
	err = c.Collection.FindOne(ctx, bson.M{"_id": entryID, "vehicle_id": parentID}).Decode(&mileage)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mileage, nil
}

// Update replaces a mileage document, matching on (id, vehicle).
func (c *MongoMileageCollection) Update(ctx context.Context, mileage models.Mileage) error {
	mileage.UpdatedAt = time.Now()
	_, err := c.Collection.ReplaceOne(
		ctx,
		bson.M{"_id": mileage.ID, "vehicle_id": mileage.VehicleID},
		mileage,
	)
	return err
}

// Delete removes a mileage entry by (id, vehicle). Returns false on a miss.
func (c *MongoMileageCollection) Delete(ctx context.Context, id, vehicleID string) (bool, error) {
	entryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	parentID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return false, nil
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": entryID, "vehicle_id": parentID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
