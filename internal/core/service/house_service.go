package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

type HouseService struct {
	repo    ports.HouseRepository
	creator creator
	logger  zerolog.Logger
}

func NewHouseService(repo ports.HouseRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *HouseService {
	return &HouseService{
		repo:    repo,
		creator: creator{resource: ResourceHouse, idem: idem, log: logger},
		logger:  logger,
	}
}

// CreateHouse stores a new house and returns its id.
func (s *HouseService) CreateHouse(ctx context.Context, in ports.CreateHouseInput) (*ports.CreateResult, error) {
	if blank(in.Name) || blank(in.Owner) {
		return nil, domain.NewValidationError(domain.MsgHouseFieldsRequired)
	}

	res, err := s.creator.create(ctx, in.IdempotencyKey, func(id string) error {
		return s.repo.Create(ctx, &domain.House{ID: id, Name: in.Name, Owner: in.Owner})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("house_id", res.ID).Msg("house created")
	return res, nil
}

func (s *HouseService) GetHouse(ctx context.Context, id string) (*domain.House, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get house %q: %w", id, err)
	}
	return h, nil
}
