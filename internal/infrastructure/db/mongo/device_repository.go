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

type DeviceRepository struct {
	col *mongo.Collection
}

func NewDeviceRepository(db *mongo.Database) *DeviceRepository {
	return &DeviceRepository{col: db.Collection(collectionDevices)}
}

func (r *DeviceRepository) Create(ctx context.Context, d *domain.Device) error {
	return insertOne(ctx, r.col, d)
}

func (r *DeviceRepository) FindByID(ctx context.Context, id string) (*domain.Device, error) {
	return findByID[domain.Device](ctx, r.col, id, domain.ErrDeviceNotFound)
}

func (r *DeviceRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Device, error) {
	return findMany[domain.Device](ctx, r.col, bson.M{"room_id": roomID})
}

// toggleStatus flips status server-side so concurrent toggles never lose an update.
var toggleStatus = mongo.Pipeline{
	{{Key: "$set", Value: bson.D{{Key: "status", Value: bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$status", string(domain.StatusOn)}}},
		string(domain.StatusOff),
		string(domain.StatusOn),
	}}}}}}},
}

func (r *DeviceRepository) ToggleStatus(ctx context.Context, id string) (*domain.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d domain.Device
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, toggleStatus, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("toggle device: %w", err)
	}
	return &d, nil
}
