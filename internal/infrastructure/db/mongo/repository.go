package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

const (
	collectionUsers   = "users"
	collectionHouses  = "houses"
	collectionRooms   = "rooms"
	collectionDevices = "devices"
)

// byNameThenID is the listing order shared by rooms and devices.
var byNameThenID = bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}

func insertOne(ctx context.Context, col *mongo.Collection, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert into %s: %w", col.Name(), err)
	}
	return nil
}

// findByID decodes the document with the given _id, translating a miss to notFound.
func findByID[T any](ctx context.Context, col *mongo.Collection, id string, notFound error) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find in %s: %w", col.Name(), err)
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.M) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, filter, options.Find().SetSort(byNameThenID))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", col.Name(), err)
	}

	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, nil
}

// EnsureIndexes creates the secondary indexes used by the list endpoints.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := db.Collection(collectionRooms).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "house_id", Value: 1}, {Key: "name", Value: 1}},
	}); err != nil {
		return fmt.Errorf("rooms index: %w", err)
	}
	if _, err := db.Collection(collectionDevices).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "name", Value: 1}},
	}); err != nil {
		return fmt.Errorf("devices index: %w", err)
	}
	return nil
}
