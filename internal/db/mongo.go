package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a MongoDB client for the given URI and verifies the
// connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// TxRunner groups store operations into one transaction, so a multi-step
// check-then-act sequence cannot interleave with a concurrent write.
type TxRunner interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxRunner implements TxRunner over client sessions. Collection calls
// made with the callback's context join the transaction.
type MongoTxRunner struct {
	Client *mongo.Client
}

func (r *MongoTxRunner) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Store bundles the per-entity collections over one database.
type Store struct {
	Users     *MongoUserCollection
	Vehicles  *MongoVehicleCollection
	Mileages  *MongoMileageCollection
	Spendings *MongoSpendingCollection
	Tx        TxRunner

	database *mongo.Database
}

// NewStore wires the collections for the named database.
func NewStore(client *mongo.Client, dbName string) *Store {
	database := client.Database(dbName)
	mileages := &MongoMileageCollection{Collection: database.Collection("mileages")}
	spendings := &MongoSpendingCollection{Collection: database.Collection("spendings")}
	return &Store{
		Users: &MongoUserCollection{Collection: database.Collection("users")},
		Vehicles: &MongoVehicleCollection{
			Collection: database.Collection("vehicles"),
			Mileages:   mileages.Collection,
			Spendings:  spendings.Collection,
			Client:     client,
		},
		Mileages:  mileages,
		Spendings: spendings,
		Tx:        &MongoTxRunner{Client: client},
		database:  database,
	}
}

// EnsureIndexes creates the indexes the queries and invariants rely on. The
// partial unique index on users is what makes concurrent first logins for the
// same provider identity converge on a single record.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	users := s.database.Collection("users")
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "provider", Value: 1}, {Key: "provider_user_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false}),
	})
	if err != nil {
		return fmt.Errorf("creating users index: %w", err)
	}

	_, err = s.database.Collection("vehicles").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating vehicles index: %w", err)
	}

	for _, name := range []string{"mileages", "spendings"} {
		_, err = s.database.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "date", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("creating %s index: %w", name, err)
		}
	}
	return nil
}
