package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return insertOne(ctx, r.col, u)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return findByID[domain.User](ctx, r.col, id, domain.ErrUserNotFound)
}
