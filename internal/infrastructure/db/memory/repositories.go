package memory

import (
	"context"
	"sort"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

type UserRepository struct {
	users *table[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: newTable[domain.User]()}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	return r.users.insert(u.ID, *u)
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users.get(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// Len reports the number of stored users.
func (r *UserRepository) Len() int { return r.users.len() }

type HouseRepository struct {
	houses *table[domain.House]
}

func NewHouseRepository() *HouseRepository {
	return &HouseRepository{houses: newTable[domain.House]()}
}

func (r *HouseRepository) Create(_ context.Context, h *domain.House) error {
	return r.houses.insert(h.ID, *h)
}

func (r *HouseRepository) FindByID(_ context.Context, id string) (*domain.House, error) {
	h, ok := r.houses.get(id)
	if !ok {
		return nil, domain.ErrHouseNotFound
	}
	return &h, nil
}

// Len reports the number of stored houses.
func (r *HouseRepository) Len() int { return r.houses.len() }

type RoomRepository struct {
	rooms *table[domain.Room]
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{rooms: newTable[domain.Room]()}
}

func (r *RoomRepository) Create(_ context.Context, room *domain.Room) error {
	return r.rooms.insert(room.ID, *room)
}

func (r *RoomRepository) FindByID(_ context.Context, id string) (*domain.Room, error) {
	room, ok := r.rooms.get(id)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return &room, nil
}

func (r *RoomRepository) ListByHouse(_ context.Context, houseID string) ([]*domain.Room, error) {
	rows := r.rooms.filter(func(room domain.Room) bool { return room.HouseID == houseID })
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})

	out := make([]*domain.Room, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

// Len reports the number of stored rooms.
func (r *RoomRepository) Len() int { return r.rooms.len() }

type DeviceRepository struct {
	devices *table[domain.Device]
}

func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{devices: newTable[domain.Device]()}
}

func (r *DeviceRepository) Create(_ context.Context, d *domain.Device) error {
	return r.devices.insert(d.ID, *d)
}

func (r *DeviceRepository) FindByID(_ context.Context, id string) (*domain.Device, error) {
	d, ok := r.devices.get(id)
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	return &d, nil
}

func (r *DeviceRepository) ListByRoom(_ context.Context, roomID string) ([]*domain.Device, error) {
	rows := r.devices.filter(func(d domain.Device) bool { return d.RoomID == roomID })
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})

	out := make([]*domain.Device, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *DeviceRepository) ToggleStatus(_ context.Context, id string) (*domain.Device, error) {
	d, ok := r.devices.update(id, func(d domain.Device) domain.Device {
		d.Status = d.Status.Toggled()
		return d
	})
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	return &d, nil
}

// Len reports the number of stored devices.
func (r *DeviceRepository) Len() int { return r.devices.len() }
