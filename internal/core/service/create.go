package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
	"github.com/smarthome-io/smarthome-api/internal/pkg/metrics"
)

// Resource kinds, used as idempotency scopes and metric labels.
const (
	ResourceUser   = "user"
	ResourceHouse  = "house"
	ResourceRoom   = "room"
	ResourceDevice = "device"
)

// maxIDAttempts bounds how many fresh ids are tried when a store reports a
// collision. With 122 random bits per id a second attempt is already
// vanishingly unlikely.
const maxIDAttempts = 3

// newID generates a record id. Swapped out in tests.
var newID = uuid.NewString

// inflight collapses concurrent creates that carry the same resource and
// Idempotency-Key into a single insert.
var inflight singleflight.Group

// creator runs the shared create flow: idempotency replay, id generation
// with collision retry, metrics, and remembering the idempotency key.
type creator struct {
	resource string
	idem     ports.IdempotencyStore
	log      zerolog.Logger
}

func (c creator) create(ctx context.Context, idempotencyKey string, insert func(id string) error) (*ports.CreateResult, error) {
	if idempotencyKey == "" || c.idem == nil {
		return c.insertAndRemember(ctx, "", insert)
	}

	ran := false
	v, err, _ := inflight.Do(c.resource+":"+idempotencyKey, func() (any, error) {
		ran = true
		return c.insertAndRemember(ctx, idempotencyKey, insert)
	})
	if err != nil {
		return nil, err
	}

	res := *v.(*ports.CreateResult)
	if !ran && !res.AlreadyExisted {
		// Another request with the same key stored the record while this one waited.
		metrics.IdempotentReplaysTotal.WithLabelValues(c.resource).Inc()
		c.log.Info().Str("resource", c.resource).Str("idempotency_key", idempotencyKey).Str("id", res.ID).Msg("idempotent replay")
		res.AlreadyExisted = true
	}
	return &res, nil
}

func (c creator) insertAndRemember(ctx context.Context, idempotencyKey string, insert func(id string) error) (*ports.CreateResult, error) {
	useIdem := idempotencyKey != ""

	if useIdem {
		id, ok, err := c.idem.Lookup(ctx, c.resource, idempotencyKey)
		switch {
		case err != nil:
			c.log.Warn().Err(err).Str("resource", c.resource).Msg("idempotency lookup failed, creating anyway")
		case ok:
			metrics.IdempotentReplaysTotal.WithLabelValues(c.resource).Inc()
			c.log.Info().Str("resource", c.resource).Str("idempotency_key", idempotencyKey).Str("id", id).Msg("idempotent replay")
			return &ports.CreateResult{ID: id, AlreadyExisted: true}, nil
		}
	}

	id, err := insertWithFreshID(insert)
	if err != nil {
		c.log.Error().Err(err).Str("resource", c.resource).Msg("failed to create record")
		return nil, fmt.Errorf("create %s: %w", c.resource, err)
	}
	metrics.RecordsCreatedTotal.WithLabelValues(c.resource).Inc()

	if useIdem {
		if err := c.idem.Remember(ctx, c.resource, idempotencyKey, id); err != nil {
			c.log.Warn().Err(err).Str("resource", c.resource).Msg("failed to store idempotency key")
		}
	}

	return &ports.CreateResult{ID: id}, nil
}

func insertWithFreshID(insert func(id string) error) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := newID()
		err := insert(id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, domain.ErrDuplicateID) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: gave up after %d attempts", domain.ErrDuplicateID, maxIDAttempts)
}

// blank reports whether a required field is missing.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
