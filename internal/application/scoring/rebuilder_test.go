package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/brandmatch"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

func TestRebuildOnceIndexesBrandsAndVariations(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	index := brandmatch.NewIndex(0.75, nil)
	rb := NewRebuilder(index, store, nil, nil, time.Hour, newFakeClock(), nil)

	if err := rb.RebuildOnce(context.Background()); err != nil {
		t.Fatalf("RebuildOnce: %v", err)
	}
	if !index.Ready() {
		t.Fatal("index must be ready after rebuild")
	}
	if _, ok := index.Lookup("nike"); !ok {
		t.Error("canonical name missing from index")
	}
	if _, ok := index.Lookup("nikey"); !ok {
		t.Error("variation missing from index")
	}
}

func TestRebuildColdStartFallsBackToSeeds(t *testing.T) {
	store := newMockGraphStore()
	store.listErr = errors.Unavailable("graph down")
	index := brandmatch.NewIndex(0.75, nil)
	rb := NewRebuilder(index, store, nil, []string{"Nike", "Adidas"}, time.Hour, newFakeClock(), nil)

	if err := rb.RebuildOnce(context.Background()); err != nil {
		t.Fatalf("cold-start rebuild should seed, got: %v", err)
	}
	if !index.Ready() {
		t.Fatal("seeded index must be ready")
	}
	if m, ok := index.Lookup("adidas"); !ok || m.Brand != "Adidas" {
		t.Errorf("seed brand lookup = %+v,%v", m, ok)
	}
}

func TestRebuildFailureKeepsCurrentGeneration(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	index := brandmatch.NewIndex(0.75, nil)
	rb := NewRebuilder(index, store, nil, nil, time.Hour, newFakeClock(), nil)

	if err := rb.RebuildOnce(context.Background()); err != nil {
		t.Fatalf("initial rebuild: %v", err)
	}

	store.listErr = errors.Unavailable("graph down")
	err := rb.RebuildOnce(context.Background())
	if !errors.IsCode(err, errors.ErrCodeIndexRebuildFailed) {
		t.Errorf("err = %v, want ErrCodeIndexRebuildFailed", err)
	}
	if _, ok := index.Lookup("nike"); !ok {
		t.Error("previous generation must keep serving after a failed rebuild")
	}
}

type fakeLocker struct {
	acquired bool
	calls    int
}

func (l *fakeLocker) TryAcquire(_ context.Context, _ string, _ time.Duration) (func(), bool, error) {
	l.calls++
	if !l.acquired {
		return nil, false, nil
	}
	return func() {}, true, nil
}

func TestRebuildRespectsDistributedLock(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	index := brandmatch.NewIndex(0.75, nil)

	locker := &fakeLocker{acquired: false}
	rb := NewRebuilder(index, store, locker, nil, time.Hour, newFakeClock(), nil)

	err := rb.RebuildOnce(context.Background())
	if !errors.IsCode(err, errors.ErrCodeIndexRebuildBusy) {
		t.Errorf("err = %v, want ErrCodeIndexRebuildBusy", err)
	}
	if index.Ready() {
		t.Error("lock-skipped rebuild must not touch the index")
	}

	locker.acquired = true
	if err := rb.RebuildOnce(context.Background()); err != nil {
		t.Fatalf("RebuildOnce with lock: %v", err)
	}
	if !index.Ready() {
		t.Error("index must build once the lock is held")
	}
}

//Personal.AI order the ending
