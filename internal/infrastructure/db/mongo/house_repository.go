package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

type HouseRepository struct {
	col *mongo.Collection
}

func NewHouseRepository(db *mongo.Database) *HouseRepository {
	return &HouseRepository{col: db.Collection(collectionHouses)}
}

func (r *HouseRepository) Create(ctx context.Context, h *domain.House) error {
	return insertOne(ctx, r.col, h)
}

func (r *HouseRepository) FindByID(ctx context.Context, id string) (*domain.House, error) {
	return findByID[domain.House](ctx, r.col, id, domain.ErrHouseNotFound)
}
