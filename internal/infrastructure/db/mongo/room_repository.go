package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection(collectionRooms)}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return insertOne(ctx, r.col, room)
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	return findByID[domain.Room](ctx, r.col, id, domain.ErrRoomNotFound)
}

func (r *RoomRepository) ListByHouse(ctx context.Context, houseID string) ([]*domain.Room, error) {
	return findMany[domain.Room](ctx, r.col, bson.M{"house_id": houseID})
}
