package ports

import "context"

// IdempotencyStore remembers which record a client-supplied Idempotency-Key
// produced, per resource kind.
type IdempotencyStore interface {
	// Lookup returns the id stored for (resource, key) and whether it exists.
	Lookup(ctx context.Context, resource, key string) (string, bool, error)
	// Remember stores id for (resource, key). An existing entry is kept.
	Remember(ctx context.Context, resource, key, id string) error
}
