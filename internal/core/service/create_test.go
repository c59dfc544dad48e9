package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

func TestCreate_RetriesOnIDCollision(t *testing.T) {
	repo := newStubHouseRepo()
	repo.byID["taken"] = &domain.House{ID: "taken", Name: "Old", Owner: "Ann"}
	defer fixedIDs("taken", "fresh")()

	svc := NewHouseService(repo, nil, zerolog.Nop())
	res, err := svc.CreateHouse(context.Background(), ports.CreateHouseInput{Name: "New", Owner: "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != "fresh" {
		t.Fatalf("expected fresh id, got %q", res.ID)
	}
	if repo.byID["taken"].Name != "Old" {
		t.Fatal("existing record must not be overwritten")
	}
}

func TestCreate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newStubHouseRepo()
	repo.byID["taken"] = &domain.House{ID: "taken"}
	defer fixedIDs("taken", "taken", "taken")()

	svc := NewHouseService(repo, nil, zerolog.Nop())
	_, err := svc.CreateHouse(context.Background(), ports.CreateHouseInput{Name: "New", Owner: "Bob"})

	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one record, got %d", len(repo.byID))
	}
}

func TestCreate_IdempotencyReplay(t *testing.T) {
	repo := newStubHouseRepo()
	idem := newStubIdem()
	svc := NewHouseService(repo, idem, zerolog.Nop())
	in := ports.CreateHouseInput{Name: "Dream Home", Owner: "John Doe", IdempotencyKey: "key-1"}

	first, err := svc.CreateHouse(context.Background(), in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.CreateHouse(context.Background(), in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if second.ID != first.ID || !second.AlreadyExisted || first.AlreadyExisted {
		t.Fatalf("unexpected results: first=%+v second=%+v", first, second)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one stored house, got %d", len(repo.byID))
	}
}

func TestCreate_IdempotencyScopedByResource(t *testing.T) {
	idem := newStubIdem()
	users := NewUserService(newStubUserRepo(), idem, zerolog.Nop())
	houses := NewHouseService(newStubHouseRepo(), idem, zerolog.Nop())

	u, err := users.CreateUser(context.Background(), ports.CreateUserInput{Username: "a", Email: "b", IdempotencyKey: "same"})
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	h, err := houses.CreateHouse(context.Background(), ports.CreateHouseInput{Name: "a", Owner: "b", IdempotencyKey: "same"})
	if err != nil {
		t.Fatalf("house: %v", err)
	}
	if h.AlreadyExisted || h.ID == u.ID {
		t.Fatal("keys must not be shared across resource kinds")
	}
}

func TestCreate_IdempotencyLookupError_CreatesAnyway(t *testing.T) {
	repo := newStubHouseRepo()
	idem := newStubIdem()
	idem.lookupErr = errStoreDown
	svc := NewHouseService(repo, idem, zerolog.Nop())

	res, err := svc.CreateHouse(context.Background(), ports.CreateHouseInput{Name: "n", Owner: "o", IdempotencyKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AlreadyExisted || len(repo.byID) != 1 {
		t.Fatalf("expected a fresh record, got %+v", res)
	}
}

func TestCreate_NoIdempotencyKey_AlwaysCreates(t *testing.T) {
	repo := newStubHouseRepo()
	svc := NewHouseService(repo, newStubIdem(), zerolog.Nop())
	in := ports.CreateHouseInput{Name: "n", Owner: "o"}

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateHouse(context.Background(), in); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if len(repo.byID) != 3 {
		t.Fatalf("expected 3 houses, got %d", len(repo.byID))
	}
}

func TestCreate_ConcurrentRetriesWithSameKeyStoreOneRecord(t *testing.T) {
	repo := &slowHouseRepo{inner: newStubHouseRepo(), delay: 10 * time.Millisecond}
	svc := NewHouseService(repo, newStubIdem(), zerolog.Nop())
	in := ports.CreateHouseInput{Name: "Dream Home", Owner: "John Doe", IdempotencyKey: "retry-1"}

	const callers = 5
	results := make([]*ports.CreateResult, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.CreateHouse(context.Background(), in)
		}(i)
	}
	wg.Wait()

	fresh := 0
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i].ID != results[0].ID {
			t.Fatalf("callers got different ids: %q vs %q", results[i].ID, results[0].ID)
		}
		if !results[i].AlreadyExisted {
			fresh++
		}
	}
	if fresh != 1 {
		t.Fatalf("expected exactly one fresh create, got %d", fresh)
	}
	if n := repo.stored(); n != 1 {
		t.Fatalf("expected one stored house, got %d", n)
	}
}
