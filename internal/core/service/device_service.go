package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
	"github.com/smarthome-io/smarthome-api/internal/pkg/metrics"
)

type DeviceService struct {
	repo    ports.DeviceRepository
	events  ports.DeviceEventSink
	creator creator
	logger  zerolog.Logger
	now     func() time.Time
}

func NewDeviceService(repo ports.DeviceRepository, idem ports.IdempotencyStore, events ports.DeviceEventSink, logger zerolog.Logger) *DeviceService {
	return &DeviceService{
		repo:    repo,
		events:  events,
		creator: creator{resource: ResourceDevice, idem: idem, log: logger},
		logger:  logger,
		now:     time.Now,
	}
}

// AddDevice stores a device under roomID with status OFF. The room is not
// looked up.
func (s *DeviceService) AddDevice(ctx context.Context, in ports.AddDeviceInput) (*ports.CreateResult, error) {
	if blank(in.Name) || blank(in.Type) {
		return nil, domain.NewValidationError(domain.MsgDeviceFieldsRequired)
	}

	var created *domain.Device
	res, err := s.creator.create(ctx, in.IdempotencyKey, func(id string) error {
		d := &domain.Device{
			ID:     id,
			Name:   in.Name,
			Type:   in.Type,
			Status: domain.StatusOff,
			RoomID: in.RoomID,
		}
		if err := s.repo.Create(ctx, d); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	// created stays nil on an idempotent replay: nothing changed.
	if created != nil {
		s.events.Enqueue(s.stateEvent(created))
	}

	s.logger.Info().Str("device_id", res.ID).Str("room_id", in.RoomID).Msg("device added")
	return res, nil
}

func (s *DeviceService) GetDevice(ctx context.Context, id string) (*domain.Device, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get device %q: %w", id, err)
	}
	return d, nil
}

func (s *DeviceService) ListDevicesByRoom(ctx context.Context, roomID string) ([]*domain.Device, error) {
	devices, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list devices of room %q: %w", roomID, err)
	}
	return devices, nil
}

// ToggleDevice flips the device between ON and OFF and returns the updated
// record.
func (s *DeviceService) ToggleDevice(ctx context.Context, id string) (*domain.Device, error) {
	d, err := s.repo.ToggleStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle device %q: %w", id, err)
	}

	metrics.DeviceTogglesTotal.WithLabelValues(string(d.Status)).Inc()
	s.events.Enqueue(s.stateEvent(d))

	s.logger.Info().Str("device_id", d.ID).Str("status", string(d.Status)).Msg("device toggled")
	return d, nil
}

func (s *DeviceService) stateEvent(d *domain.Device) ports.DeviceStateEvent {
	return ports.DeviceStateEvent{
		DeviceID:  d.ID,
		RoomID:    d.RoomID,
		Name:      d.Name,
		Type:      d.Type,
		Status:    string(d.Status),
		Timestamp: s.now().UTC(),
	}
}
