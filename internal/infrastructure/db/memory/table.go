// Package memory provides process-local repositories. Records live until the
// process exits; nothing is persisted.
package memory

import (
	"sync"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
)

// table is a mutex-guarded map from id to record. Records are stored and
// returned by value so callers never share memory with the store.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) insert(id string, row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; exists {
		return domain.ErrDuplicateID
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	return row, ok
}

// update applies fn to the row under the write lock and stores the result.
func (t *table[T]) update(id string, fn func(T) T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return row, false
	}
	row = fn(row)
	t.rows[id] = row
	return row, true
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0)
	for _, row := range t.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
