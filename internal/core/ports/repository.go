package ports

import (
	"context"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

// UserRepository persists users. Create returns domain.ErrDuplicateID when
// the id is taken; FindByID returns domain.ErrUserNotFound on a miss.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// HouseRepository persists houses.
type HouseRepository interface {
	Create(ctx context.Context, h *domain.House) error
	FindByID(ctx context.Context, id string) (*domain.House, error)
}

// RoomRepository persists rooms.
type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	// ListByHouse returns rooms carrying houseID, sorted by name then id.
	// An unknown house yields an empty slice, not an error.
	ListByHouse(ctx context.Context, houseID string) ([]*domain.Room, error)
}

// DeviceRepository persists devices.
type DeviceRepository interface {
	Create(ctx context.Context, d *domain.Device) error
	FindByID(ctx context.Context, id string) (*domain.Device, error)
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Device, error)
	// ToggleStatus flips the device status atomically and returns the
	// updated record.
	ToggleStatus(ctx context.Context, id string) (*domain.Device, error)
}
