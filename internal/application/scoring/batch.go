package scoring

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/config"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/brandmatch"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// ItemResult pairs one batch listing with its verdict.  Err is non-nil for
// rejected and failed listings; Result may still carry a terminal outcome.
type ItemResult struct {
	Result *listing.ScoreResult
	Err    error
}

// BatchCoordinator analyzes many listings with bounded concurrency.
// Listings are processed in fixed-size chunks with a pacing pause between
// them so a large batch cannot saturate the graph store; results always come
// back in input order.
type BatchCoordinator struct {
	svc         *Service
	chunkSize   int
	concurrency int
	timeout     time.Duration
	chunkPause  time.Duration
	logger      logging.Logger
}

func NewBatchCoordinator(svc *Service, cfg config.BatchConfig, logger logging.Logger) *BatchCoordinator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &BatchCoordinator{
		svc:         svc,
		chunkSize:   cfg.ChunkSize,
		concurrency: cfg.Concurrency,
		timeout:     cfg.Timeout,
		chunkPause:  cfg.ChunkPause,
		logger:      logger.Named("batch_coordinator"),
	}
}

// AnalyzeBatch scores every listing, returning one ItemResult per input in
// the same order.  When the batch deadline expires, listings not yet started
// come back with incomplete-outcome stubs instead of blocking forever.
func (b *BatchCoordinator) AnalyzeBatch(ctx context.Context, inputs []listing.Input) ([]ItemResult, error) {
	if len(inputs) == 0 {
		return nil, errors.New(errors.ErrCodeListingEmptyBatch, "batch contains no listings")
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	b.prewarm(ctx, inputs)

	out := make([]ItemResult, len(inputs))
	sem := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup

	start := 0
	for start < len(inputs) {
		end := start + b.chunkSize
		if end > len(inputs) {
			end = len(inputs)
		}

		for i := start; i < end; i++ {
			select {
			case <-ctx.Done():
				wg.Wait()
				b.fillRemaining(inputs, out, i)
				return out, nil
			case sem <- struct{}{}:
			}

			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				res, err := b.svc.Analyze(ctx, &inputs[i])
				out[i] = ItemResult{Result: res, Err: err}
			}(i)
		}
		start = end

		if start < len(inputs) && b.chunkPause > 0 {
			select {
			case <-ctx.Done():
				wg.Wait()
				b.fillRemaining(inputs, out, start)
				return out, nil
			case <-time.After(b.chunkPause):
			}
		}
	}

	wg.Wait()

	// Analyze calls cut off by the deadline surface through their own
	// results; anything still empty here was never started.
	b.fillRemaining(inputs, out, 0)
	return out, nil
}

// prewarm loads the brand context for every distinct brand mentioned in the
// batch, so the per-listing passes hit a warm cache.  Failures are left for
// the listings themselves to surface.
func (b *BatchCoordinator) prewarm(ctx context.Context, inputs []listing.Input) {
	if !b.svc.index.Ready() {
		return
	}

	// Cheap pass only: a declared brand resolves with a single exact lookup,
	// and undeclared listings get the exact/variation scan without the fuzzy
	// edit-distance work.  Fuzzy-only brands warm up on first analysis.
	brands := make(map[string]struct{})
	for i := range inputs {
		if declared := brandmatch.Normalize(inputs[i].DeclaredBrand); declared != "" {
			if m, ok := b.svc.index.LookupExact(declared); ok {
				brands[m.Brand] = struct{}{}
				continue
			}
		}
		if mention := brandmatch.Best(b.svc.extractor.ExtractExact(inputs[i].Text()), inputs[i].DeclaredBrand); mention != nil {
			brands[mention.Brand] = struct{}{}
		}
	}
	if len(brands) == 0 {
		return
	}

	sem := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup
	for name := range brands {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			defer func() { <-sem }()
			if _, err := b.svc.cache.Get(ctx, name); err != nil {
				b.logger.Debug("batch prewarm miss",
					logging.String("brand", name),
					logging.Err(err),
				)
			}
		}(name)
	}
	wg.Wait()
}

// fillRemaining stubs every result slot from index from onward that no worker
// claimed, marking it incomplete.
func (b *BatchCoordinator) fillRemaining(inputs []listing.Input, out []ItemResult, from int) {
	for i := from; i < len(out); i++ {
		if out[i].Result == nil && out[i].Err == nil {
			out[i] = ItemResult{
				Result: &listing.ScoreResult{
					ListingID: inputs[i].ID,
					Outcome:   listing.OutcomeIncomplete,
					RiskLevel: listing.RiskNone,
				},
				Err: errors.New(errors.ErrCodeBatchTimeout, "batch deadline expired before this listing was analyzed"),
			}
		}
	}
}

//Personal.AI order the ending
