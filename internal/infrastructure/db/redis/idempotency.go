package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers Idempotency-Key → record id mappings in Redis.
// Key format: idempotency:<resource>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl selects the default (24h).
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the id previously stored for (resource, key).
func (s *IdempotencyStore) Lookup(ctx context.Context, resource, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(resource, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember stores id for (resource, key) unless an entry already exists.
func (s *IdempotencyStore) Remember(ctx context.Context, resource, key, id string) error {
	if err := s.client.SetNX(ctx, s.key(resource, key), id, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(resource, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", resource, key)
}
