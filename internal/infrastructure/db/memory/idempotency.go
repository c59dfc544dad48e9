package memory

import (
	"context"
	"sync"
	"time"
)

// DefaultIdempotencyTTL is how long an Idempotency-Key is remembered.
const DefaultIdempotencyTTL = 24 * time.Hour

// sweepInterval bounds how often Remember scans for expired entries.
const sweepInterval = time.Minute

type idemEntry struct {
	id        string
	expiresAt time.Time
}

// IdempotencyStore is the in-process ports.IdempotencyStore used when no
// Redis is configured. Expired entries are dropped on lookup of their key and
// by a sweep that Remember runs at most once per sweepInterval.
type IdempotencyStore struct {
	mu        sync.Mutex
	entries   map[string]idemEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{
		entries: make(map[string]idemEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *IdempotencyStore) Lookup(_ context.Context, resource, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := resource + ":" + key
	e, ok := s.entries[k]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, k)
		return "", false, nil
	}
	return e.id, true, nil
}

func (s *IdempotencyStore) Remember(_ context.Context, resource, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	k := resource + ":" + key
	if e, ok := s.entries[k]; ok && now.Before(e.expiresAt) {
		return nil
	}
	s.entries[k] = idemEntry{id: id, expiresAt: now.Add(s.ttl)}
	return nil
}

// sweep deletes expired entries. Callers hold s.mu.
func (s *IdempotencyStore) sweep(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.nextSweep = now.Add(sweepInterval)
}

// Len reports the number of stored keys, expired or not.
func (s *IdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
