package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

type RoomService struct {
	repo    ports.RoomRepository
	creator creator
	logger  zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *RoomService {
	return &RoomService{
		repo:    repo,
		creator: creator{resource: ResourceRoom, idem: idem, log: logger},
		logger:  logger,
	}
}

// AddRoom stores a room under houseID. The house is not looked up: a room
// may reference a house that does not exist.
func (s *RoomService) AddRoom(ctx context.Context, in ports.AddRoomInput) (*ports.CreateResult, error) {
	if blank(in.Name) {
		return nil, domain.NewValidationError(domain.MsgRoomFieldsRequired)
	}

	res, err := s.creator.create(ctx, in.IdempotencyKey, func(id string) error {
		return s.repo.Create(ctx, &domain.Room{ID: id, Name: in.Name, HouseID: in.HouseID})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("room_id", res.ID).Str("house_id", in.HouseID).Msg("room added")
	return res, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room %q: %w", id, err)
	}
	return r, nil
}

func (s *RoomService) ListRoomsByHouse(ctx context.Context, houseID string) ([]*domain.Room, error) {
	rooms, err := s.repo.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("list rooms of house %q: %w", houseID, err)
	}
	return rooms, nil
}
