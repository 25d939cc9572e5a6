package scoring

import (
	"context"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/brandmatch"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/types/common"
)

// Locker serializes index rebuilds across replicas.  Nil lockers mean
// single-instance deployment; rebuilds proceed unguarded.
type Locker interface {
	// TryAcquire returns acquired=false, without error, when another holder
	// owns the lock.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

const rebuildLockKey = "variation_index_rebuild"

// Rebuilder periodically reconstructs the variation index from the graph
// store, falling back to the configured seed brands when the store cannot be
// enumerated on a cold start.
type Rebuilder struct {
	index      *brandmatch.Index
	store      brand.GraphStore
	locker     Locker
	seedBrands []string
	interval   time.Duration
	clock      common.Clock
	logger     logging.Logger
}

func NewRebuilder(
	index *brandmatch.Index,
	store brand.GraphStore,
	locker Locker,
	seedBrands []string,
	interval time.Duration,
	clock common.Clock,
	logger logging.Logger,
) *Rebuilder {
	if clock == nil {
		clock = common.SystemClock()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Rebuilder{
		index:      index,
		store:      store,
		locker:     locker,
		seedBrands: seedBrands,
		interval:   interval,
		clock:      clock,
		logger:     logger.Named("index_rebuilder"),
	}
}

// RebuildOnce runs one rebuild cycle.  A ready index is never replaced by a
// failed enumeration; the previous generation keeps serving.
func (r *Rebuilder) RebuildOnce(ctx context.Context) error {
	if r.locker != nil {
		release, acquired, err := r.locker.TryAcquire(ctx, rebuildLockKey, r.interval)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeIndexRebuildFailed, "failed to acquire rebuild lock")
		}
		if !acquired {
			r.logger.Debug("index rebuild already running elsewhere, skipping")
			return errors.New(errors.ErrCodeIndexRebuildBusy, "rebuild lock held by another instance")
		}
		defer release()
	}

	names, err := r.store.ListBrandNames(ctx)
	if err != nil || len(names) == 0 {
		if r.index.Ready() {
			if err == nil {
				return errors.New(errors.ErrCodeIndexRebuildFailed, "brand enumeration returned no brands, keeping current index generation")
			}
			return errors.Wrap(err, errors.ErrCodeIndexRebuildFailed, "brand enumeration failed, keeping current index generation")
		}
		// Cold start with an unreachable or empty graph: build a minimal
		// index from the seed list so exact matches work immediately.
		r.logger.Warn("brand enumeration failed on cold start, seeding index",
			logging.Int("seed_brands", len(r.seedBrands)),
			logging.Err(err),
		)
		r.index.Rebuild(seedRecords(r.seedBrands), r.clock.Now())
		return nil
	}

	records := make([]brand.BrandRecord, 0, len(names))
	for _, name := range names {
		variations, err := r.store.FetchVariations(ctx, name)
		if err != nil {
			r.logger.Warn("failed to load variations for brand",
				logging.String("brand", name),
				logging.Err(err),
			)
			// The canonical name alone is still worth indexing.
		}
		records = append(records, brand.BrandRecord{Name: name, Variations: variations})
	}

	r.index.Rebuild(records, r.clock.Now())
	return nil
}

// Run rebuilds immediately, then on every tick until ctx is cancelled.
func (r *Rebuilder) Run(ctx context.Context) {
	if err := r.RebuildOnce(ctx); err != nil && !errors.IsCode(err, errors.ErrCodeIndexRebuildBusy) {
		r.logger.Error("initial index rebuild failed", logging.Err(err))
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RebuildOnce(ctx); err != nil && !errors.IsCode(err, errors.ErrCodeIndexRebuildBusy) {
				r.logger.Error("periodic index rebuild failed", logging.Err(err))
			}
		}
	}
}

func seedRecords(names []string) []brand.BrandRecord {
	records := make([]brand.BrandRecord, 0, len(names))
	for _, name := range names {
		records = append(records, brand.BrandRecord{Name: name})
	}
	return records
}

//Personal.AI order the ending
