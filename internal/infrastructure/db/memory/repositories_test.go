package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &domain.User{ID: "u1", Username: "Alice", Email: "alice@example.com"}
	require.NoError(t, repo.Create(ctx, u))

	// Mutating the caller's copy must not leak into the store.
	u.Username = "Mallory"

	got, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Username)

	_, err = repo.FindByID(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRepositories_RejectDuplicateID(t *testing.T) {
	ctx := context.Background()

	users := NewUserRepository()
	require.NoError(t, users.Create(ctx, &domain.User{ID: "x", Username: "a", Email: "a"}))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{ID: "x", Username: "b", Email: "b"}), domain.ErrDuplicateID)

	houses := NewHouseRepository()
	require.NoError(t, houses.Create(ctx, &domain.House{ID: "x", Name: "a", Owner: "a"}))
	assert.ErrorIs(t, houses.Create(ctx, &domain.House{ID: "x"}), domain.ErrDuplicateID)

	got, err := houses.FindByID(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name, "existing record must survive a collision")
}

func TestRoomRepository_ListByHouseSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()
	for _, r := range []domain.Room{
		{ID: "3", Name: "Kitchen", HouseID: "h1"},
		{ID: "2", Name: "Attic", HouseID: "h1"},
		{ID: "1", Name: "Attic", HouseID: "h1"},
		{ID: "4", Name: "Garage", HouseID: "h2"},
	} {
		r := r
		require.NoError(t, repo.Create(ctx, &r))
	}

	rooms, err := repo.ListByHouse(ctx, "h1")
	require.NoError(t, err)
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	none, err := repo.ListByHouse(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Equal(t, 4, repo.Len())
}

func TestDeviceRepository_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewDeviceRepository()
	require.NoError(t, repo.Create(ctx, &domain.Device{ID: "d1", Name: "Lamp", Type: "Light", Status: domain.StatusOff, RoomID: "r1"}))

	d, err := repo.ToggleStatus(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOn, d.Status)

	stored, err := repo.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOn, stored.Status)

	_, err = repo.ToggleStatus(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
}

func TestDeviceRepository_ConcurrentTogglesAreSerialised(t *testing.T) {
	ctx := context.Background()
	repo := NewDeviceRepository()
	require.NoError(t, repo.Create(ctx, &domain.Device{ID: "d1", Status: domain.StatusOff}))

	const toggles = 100
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.ToggleStatus(ctx, "d1")
		}()
	}
	wg.Wait()

	d, err := repo.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOff, d.Status, "an even number of toggles must restore the initial state")
}

func TestDeviceRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewDeviceRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(ctx, &domain.Device{ID: fmt.Sprintf("d%d", i), RoomID: "r1", Status: domain.StatusOff})
		}(i)
	}
	wg.Wait()

	devices, err := repo.ListByRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, devices, 50)
}
