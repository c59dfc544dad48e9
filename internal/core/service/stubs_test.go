package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Map-backed stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byID[u.ID]; ok {
		return domain.ErrDuplicateID
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubHouseRepo struct {
	byID map[string]*domain.House
}

func newStubHouseRepo() *stubHouseRepo {
	return &stubHouseRepo{byID: make(map[string]*domain.House)}
}

func (r *stubHouseRepo) Create(_ context.Context, h *domain.House) error {
	if _, ok := r.byID[h.ID]; ok {
		return domain.ErrDuplicateID
	}
	clone := *h
	r.byID[h.ID] = &clone
	return nil
}

func (r *stubHouseRepo) FindByID(_ context.Context, id string) (*domain.House, error) {
	h, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrHouseNotFound
	}
	clone := *h
	return &clone, nil
}

type stubRoomRepo struct {
	byID map[string]*domain.Room
}

func newStubRoomRepo() *stubRoomRepo {
	return &stubRoomRepo{byID: make(map[string]*domain.Room)}
}

func (r *stubRoomRepo) Create(_ context.Context, room *domain.Room) error {
	if _, ok := r.byID[room.ID]; ok {
		return domain.ErrDuplicateID
	}
	clone := *room
	r.byID[room.ID] = &clone
	return nil
}

func (r *stubRoomRepo) FindByID(_ context.Context, id string) (*domain.Room, error) {
	room, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	clone := *room
	return &clone, nil
}

func (r *stubRoomRepo) ListByHouse(_ context.Context, houseID string) ([]*domain.Room, error) {
	var out []*domain.Room
	for _, room := range r.byID {
		if room.HouseID == houseID {
			clone := *room
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubDeviceRepo struct {
	byID      map[string]*domain.Device
	toggleErr error
}

func newStubDeviceRepo() *stubDeviceRepo {
	return &stubDeviceRepo{byID: make(map[string]*domain.Device)}
}

func (r *stubDeviceRepo) Create(_ context.Context, d *domain.Device) error {
	if _, ok := r.byID[d.ID]; ok {
		return domain.ErrDuplicateID
	}
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

func (r *stubDeviceRepo) FindByID(_ context.Context, id string) (*domain.Device, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDeviceRepo) ListByRoom(_ context.Context, roomID string) ([]*domain.Device, error) {
	var out []*domain.Device
	for _, d := range r.byID {
		if d.RoomID == roomID {
			clone := *d
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubDeviceRepo) ToggleStatus(_ context.Context, id string) (*domain.Device, error) {
	if r.toggleErr != nil {
		return nil, r.toggleErr
	}
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	d.Status = d.Status.Toggled()
	clone := *d
	return &clone, nil
}

// slowHouseRepo serialises access to a stubHouseRepo and holds every Create
// for delay, widening the window in which concurrent creates overlap.
type slowHouseRepo struct {
	mu    sync.Mutex
	inner *stubHouseRepo
	delay time.Duration
}

func (r *slowHouseRepo) Create(ctx context.Context, h *domain.House) error {
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Create(ctx, h)
}

func (r *slowHouseRepo) FindByID(ctx context.Context, id string) (*domain.House, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.FindByID(ctx, id)
}

func (r *slowHouseRepo) stored() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inner.byID)
}

// ---------------------------------------------------------------------------
// Idempotency and event stubs
// ---------------------------------------------------------------------------

type stubIdem struct {
	mu        sync.Mutex
	entries   map[string]string
	lookupErr error
}

func newStubIdem() *stubIdem {
	return &stubIdem{entries: make(map[string]string)}
}

func (s *stubIdem) Lookup(_ context.Context, resource, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.entries[resource+"/"+key]
	return id, ok, nil
}

func (s *stubIdem) Remember(_ context.Context, resource, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[resource+"/"+key]; !ok {
		s.entries[resource+"/"+key] = id
	}
	return nil
}

type stubSink struct {
	events []ports.DeviceStateEvent
}

func (s *stubSink) Enqueue(e ports.DeviceStateEvent) {
	s.events = append(s.events, e)
}

var errStoreDown = errors.New("store unavailable")

// fixedIDs makes newID return ids in order, then panics if exhausted.
func fixedIDs(ids ...string) func() {
	prev := newID
	i := 0
	newID = func() string {
		id := ids[i]
		i++
		return id
	}
	return func() { newID = prev }
}
