package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukydev/carkit/internal/apperror"
	"github.com/ukydev/carkit/internal/models"
)

// UserCollection defines the user directory operations. Lookups never return
// soft-deleted records; a miss is (nil, nil), errors are real failures.
type UserCollection interface {
	FindActiveByID(ctx context.Context, id string) (*models.User, error)
	FindByProviderIdentity(ctx context.Context, provider models.Provider, subject string) (*models.User, error)
	CreateFromProviderIdentity(ctx context.Context, provider models.Provider, subject, email string) (*models.User, error)
	SoftDelete(ctx context.Context, id string) error
}

// MongoUserCollection implements UserCollection for MongoDB.
type MongoUserCollection struct {
	Collection *mongo.Collection
}

// FindActiveByID finds a non-deleted user by id. An unparseable id is a miss,
// not an error: callers treat both the same.
func (c *MongoUserCollection) FindActiveByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var user models.User
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID, "is_deleted": false}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByProviderIdentity finds a non-deleted user by its provider identity.
func (c *MongoUserCollection) FindByProviderIdentity(ctx context.Context, provider models.Provider, subject string) (*models.User, error) {
	var user models.User
	err := c.Collection.FindOne(ctx, bson.M{
		"provider":         provider,
		"provider_user_id": subject,
		"is_deleted":       false,
	}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateFromProviderIdentity inserts a new active user for a provider
// identity. When a concurrent first login wins the insert, the unique index
// rejects ours and the winning record is returned instead.
func (c *MongoUserCollection) CreateFromProviderIdentity(ctx context.Context, provider models.Provider, subject, email string) (*models.User, error) {
	now := time.Now()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Provider:       provider,
		ProviderUserID: subject,
		Email:          email,
		IsDeleted:      false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := c.Collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		existing, findErr := c.FindByProviderIdentity(ctx, provider, subject)
		if findErr != nil {
			return nil, findErr
		}
		if existing != nil {
			return existing, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SoftDelete flips the deleted flag on an active user. The record and all
// owned data stay in place; there is no re-enable path.
func (c *MongoUserCollection) SoftDelete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NotFound("user")
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperror.NotFound("user")
	}
	return nil
}
