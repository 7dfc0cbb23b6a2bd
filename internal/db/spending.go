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

// SpendingCollection defines spending storage, vehicle-scoped like
// MileageCollection.
type SpendingCollection interface {
	Insert(ctx context.Context, spending models.Spending) (*models.Spending, error)
	FindByVehicle(ctx context.Context, vehicleID string) ([]models.Spending, error)
	FindForVehicle(ctx context.Context, id, vehicleID string) (*models.Spending, error)
	Update(ctx context.Context, spending models.Spending) error
	Delete(ctx context.Context, id, vehicleID string) (bool, error)
}

// MongoSpendingCollection implements SpendingCollection for MongoDB.
type MongoSpendingCollection struct {
	Collection *mongo.Collection
}

// Insert stores a new spending and returns it with timestamps set.
func (c *MongoSpendingCollection) Insert(ctx context.Context, spending models.Spending) (*models.Spending, error) {
	now := time.Now()
	spending.ID = primitive.NewObjectID()
	spending.CreatedAt = now
	spending.UpdatedAt = now

	if _, err := c.Collection.InsertOne(ctx, spending); err != nil {
		return nil, err
	}
	return &spending, nil
}

// FindByVehicle lists a vehicle's spendings, newest date first.
func (c *MongoSpendingCollection) FindByVehicle(ctx context.Context, vehicleID string) ([]models.Spending, error) {
	parentID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return []models.Spending{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{"vehicle_id": parentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	spendings := []models.Spending{}
	if err := cursor.All(ctx, &spendings); err != nil {
		return nil, err
	}
	return spendings, nil
}

// FindForVehicle finds a spending by (id, vehicle). A miss is (nil, nil).
func (c *MongoSpendingCollection) FindForVehicle(ctx context.Context, id, vehicleID string) (*models.Spending, error) {
	entryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	parentID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, nil
	}

	var spending models.Spending
	err = c.Collection.FindOne(ctx, bson.M{"_id": entryID, "vehicle_id": parentID}).Decode(&spending)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &spending, nil
}

// Update replaces a spending document, matching on (id, vehicle).
func (c *MongoSpendingCollection) Update(ctx context.Context, spending models.Spending) error {
	spending.UpdatedAt = time.Now()
	_, err := c.Collection.ReplaceOne(
		ctx,
		bson.M{"_id": spending.ID, "vehicle_id": spending.VehicleID},
		spending,
	)
	return err
}

// Delete removes a spending by (id, vehicle). Returns false on a miss.
func (c *MongoSpendingCollection) Delete(ctx context.Context, id, vehicleID string) (bool, error) {
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
