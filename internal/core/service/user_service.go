package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

type UserService struct {
	repo    ports.UserRepository
	creator creator
	logger  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:    repo,
		creator: creator{resource: ResourceUser, idem: idem, log: logger},
		logger:  logger,
	}
}

// CreateUser stores a new user and returns its id.
func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*ports.CreateResult, error) {
	if blank(in.Username) || blank(in.Email) {
		return nil, domain.NewValidationError(domain.MsgUserFieldsRequired)
	}

	res, err := s.creator.create(ctx, in.IdempotencyKey, func(id string) error {
		return s.repo.Create(ctx, &domain.User{ID: id, Username: in.Username, Email: in.Email})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", res.ID).Msg("user created")
	return res, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", id, err)
	}
	return u, nil
}
