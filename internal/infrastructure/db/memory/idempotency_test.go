package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_RememberAndLookup(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(time.Hour)

	_, ok, err := s.Lookup(ctx, "user", "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remember(ctx, "user", "k1", "id-1"))
	require.NoError(t, s.Remember(ctx, "user", "k1", "id-2"))

	id, ok, err := s.Lookup(ctx, "user", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "id-1", id, "first remembered id wins")

	_, ok, _ = s.Lookup(ctx, "house", "k1")
	assert.False(t, ok, "keys are scoped per resource")
}

func TestIdempotencyStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewIdempotencyStore(time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Remember(ctx, "device", "k", "d1"))

	now = now.Add(59 * time.Second)
	_, ok, _ := s.Lookup(ctx, "device", "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = s.Lookup(ctx, "device", "k")
	assert.False(t, ok)

	require.NoError(t, s.Remember(ctx, "device", "k", "d2"))
	id, ok, _ := s.Lookup(ctx, "device", "k")
	assert.True(t, ok)
	assert.Equal(t, "d2", id)
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultIdempotencyTTL, NewIdempotencyStore(0).ttl)
}

func TestIdempotencyStore_RememberSweepsExpiredKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewIdempotencyStore(time.Minute)
	s.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Remember(ctx, "user", k, "id-"+k))
	}
	require.Equal(t, 3, s.Len())

	// Keys a, b, c are never looked up again; the next Remember after they
	// expire must still drop them.
	now = now.Add(time.Minute + sweepInterval)
	require.NoError(t, s.Remember(ctx, "user", "d", "id-d"))

	assert.Equal(t, 1, s.Len())
	id, ok, _ := s.Lookup(ctx, "user", "d")
	assert.True(t, ok)
	assert.Equal(t, "id-d", id)
}
