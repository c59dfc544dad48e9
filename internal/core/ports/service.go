package ports

import (
	"context"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

// CreateResult is returned by every create/add operation.
type CreateResult struct {
	ID string
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// CreateUserInput carries the fields needed to create a user.
type CreateUserInput struct {
	Username       string
	Email          string
	IdempotencyKey string
}

// CreateHouseInput carries the fields needed to create a house.
type CreateHouseInput struct {
	Name           string
	Owner          string
	IdempotencyKey string
}

// AddRoomInput carries the fields needed to add a room to a house.
type AddRoomInput struct {
	HouseID        string
	Name           string
	IdempotencyKey string
}

// AddDeviceInput carries the fields needed to add a device to a room.
type AddDeviceInput struct {
	RoomID         string
	Name           string
	Type           string
	IdempotencyKey string
}

type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*CreateResult, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

type HouseService interface {
	CreateHouse(ctx context.Context, in CreateHouseInput) (*CreateResult, error)
	GetHouse(ctx context.Context, id string) (*domain.House, error)
}

type RoomService interface {
	AddRoom(ctx context.Context, in AddRoomInput) (*CreateResult, error)
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	ListRoomsByHouse(ctx context.Context, houseID string) ([]*domain.Room, error)
}

type DeviceService interface {
	AddDevice(ctx context.Context, in AddDeviceInput) (*CreateResult, error)
	GetDevice(ctx context.Context, id string) (*domain.Device, error)
	ListDevicesByRoom(ctx context.Context, roomID string) ([]*domain.Device, error)
	ToggleDevice(ctx context.Context, id string) (*domain.Device, error)
}
