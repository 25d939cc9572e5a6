package scoring

import (
	"context"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/config"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/brandmatch"
	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/indicators"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/types/common"
)

// EventPublisher emits analysis lifecycle events.  Nil publishers are
// allowed; publishing is fire-and-forget and never fails a listing.
type EventPublisher interface {
	PublishScored(ctx context.Context, result *listing.ScoreResult) error
	PublishGraphUpdated(ctx context.Context, brandName string) error
}

// Recorder receives scoring telemetry.
type Recorder interface {
	ObserveAnalysis(outcome listing.Outcome, duration time.Duration)
	ObserveCacheHit(hit bool)
}

// writeBackTimeout bounds the async variation write-back so an unreachable
// graph store cannot pile up goroutines.
const writeBackTimeout = 5 * time.Second

// Service is the single-listing analysis pipeline: extract the brand, load
// its context, run the indicator detectors, fold the findings into a score.
type Service struct {
	index     *brandmatch.Index
	extractor *brandmatch.Extractor
	registry  *indicators.Registry
	scorer    *indicators.Scorer
	cache     *ContextCache
	store     brand.GraphStore
	publisher EventPublisher
	recorder  Recorder
	clock     common.Clock

	// seedExtractor matches against the bundled seed-brand list, exact-only.
	// Used until the rebuilder publishes the first real index generation.
	seedExtractor *brandmatch.Extractor

	writeBackFloor float64
	logger         logging.Logger
}

// NewService wires the pipeline.  index is shared with the rebuild manager;
// publisher and recorder may be nil.
func NewService(
	cfg *config.Config,
	index *brandmatch.Index,
	store brand.GraphStore,
	publisher EventPublisher,
	recorder Recorder,
	clock common.Clock,
	logger logging.Logger,
) *Service {
	if clock == nil {
		clock = common.SystemClock()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := &Service{
		index:          index,
		extractor:      brandmatch.NewExtractor(index, cfg.Matching.MaxWindowTokens, logger),
		registry:       indicators.NewRegistry(scorerConfig(cfg)),
		scorer:         indicators.NewScorer(scorerConfig(cfg)),
		store:          store,
		publisher:      publisher,
		recorder:       recorder,
		clock:          clock,
		writeBackFloor: cfg.Matching.WriteBackFloor,
		logger:         logger.Named("scoring_service"),
	}

	// A floor of 1.0 disables the fuzzy pass: non-identical strings never
	// reach similarity 1.0, so the cold-start fallback is exact-only.
	seedIndex := brandmatch.NewIndex(1.0, logger)
	seedIndex.Rebuild(seedRecords(cfg.Matching.SeedBrands), clock.Now())
	s.seedExtractor = brandmatch.NewExtractor(seedIndex, cfg.Matching.MaxWindowTokens, logger)

	// The cached bundle includes attribute schemas and patterns, so its
	// freshness window is the shorter attribute TTL, not the variation one.
	s.cache = NewContextCache(cfg.Cache.Capacity, cfg.Cache.AttributeTTL, s.loadContext, clock, logger)
	return s
}

func scorerConfig(cfg *config.Config) indicators.Config {
	return indicators.Config{
		PricingWeight:              cfg.Scoring.PricingWeight,
		AttributeWeight:            cfg.Scoring.AttributeWeight,
		SellerWeight:               cfg.Scoring.SellerWeight,
		DescriptionWeight:          cfg.Scoring.LanguageWeight,
		GeographyWeight:            cfg.Scoring.GeographyWeight,
		PriceFraction:              cfg.Scoring.PriceFraction,
		LikelyCounterfeitThreshold: cfg.Scoring.LikelyCounterfeitThreshold,
	}
}

// Cache exposes the brand-context cache for invalidation on graph updates.
func (s *Service) Cache() *ContextCache { return s.cache }

// Analyze scores one listing.  A structurally invalid listing returns a
// rejected-outcome result together with an ErrCodeListingInvalid error so
// transport layers can map it.  Infrastructure trouble degrades rather than
// fails: before the first index build matching falls back to the exact-only
// seed list, and an unreachable graph store yields a stale or empty context,
// both surfaced through the result's Degraded flag.
func (s *Service) Analyze(ctx context.Context, in *listing.Input) (*listing.ScoreResult, error) {
	start := s.clock.Now()

	if err := in.Validate(); err != nil {
		result := &listing.ScoreResult{
			Outcome:    listing.OutcomeRejected,
			RiskLevel:  listing.RiskNone,
			AnalyzedAt: start,
		}
		if in != nil {
			result.ListingID = in.ID
		}
		s.observe(result.Outcome, start)
		return result, err
	}
	extractor := s.extractor
	seedFallback := !s.index.Ready()
	if seedFallback {
		s.logger.Debug("variation index not built yet, matching against seed brands only",
			logging.String("listing_id", in.ID),
		)
		extractor = s.seedExtractor
	}

	normalized := brandmatch.Normalize(in.Text())
	mention := brandmatch.Best(extractor.Extract(in.Text()), in.DeclaredBrand)

	// No brand in the text: terminal zero-score result, nothing to load.
	if mention == nil {
		result := &listing.ScoreResult{
			ListingID:  in.ID,
			Score:      0,
			Confidence: 0,
			RiskLevel:  listing.RiskNone,
			Outcome:    listing.OutcomeScored,
			Degraded:   seedFallback,
			AnalyzedAt: start,
		}
		s.observe(result.Outcome, start)
		s.publish(ctx, result)
		return result, nil
	}

	bctx, err := s.cache.Get(ctx, mention.Brand)
	if err != nil {
		return nil, err
	}

	results, complete := s.runDetectors(ctx, &indicators.Evidence{
		Listing:        in,
		Mention:        mention,
		Brand:          bctx,
		NormalizedText: normalized,
	})

	verdict := s.scorer.Score(results, mention.Confidence, bctx)

	outcome := listing.OutcomeScored
	if !complete {
		outcome = listing.OutcomeIncomplete
	}
	result := &listing.ScoreResult{
		ListingID:         in.ID,
		Score:             verdict.Score,
		Confidence:        verdict.Confidence,
		RiskLevel:         verdict.RiskLevel,
		LikelyCounterfeit: verdict.LikelyCounterfeit,
		Mention:           mention,
		Indicators:        results,
		Outcome:           outcome,
		Degraded:          bctx.Stale || seedFallback,
		AnalyzedAt:        start,
	}

	s.maybeWriteBack(mention, bctx)
	s.observe(outcome, start)
	s.publish(ctx, result)
	return result, nil
}

// runDetectors fans the registry out concurrently and collects results in
// registry order.  When ctx expires before all detectors finish, the missing
// slots are filled as unevaluated and complete=false.
func (s *Service) runDetectors(ctx context.Context, ev *indicators.Evidence) ([]listing.IndicatorResult, bool) {
	detectors := s.registry.Detectors()
	results := make([]listing.IndicatorResult, len(detectors))
	filled := make([]bool, len(detectors))

	if ctx.Err() != nil {
		// Deadline already spent before the detectors could start.
		for i, d := range detectors {
			results[i] = listing.IndicatorResult{
				Name:      d.Name(),
				Evaluated: false,
				Rationale: "analysis deadline expired",
			}
		}
		return results, false
	}

	type indexed struct {
		i   int
		res listing.IndicatorResult
	}
	done := make(chan indexed, len(detectors))
	for i, d := range detectors {
		go func(i int, d indicators.Detector) {
			done <- indexed{i: i, res: d.Detect(ctx, ev)}
		}(i, d)
	}

	collected := 0
	complete := true

collect:
	for collected < len(detectors) {
		// Prefer draining finished detectors over noticing the deadline, so
		// work that actually completed is never discarded.
		select {
		case r := <-done:
			results[r.i] = r.res
			filled[r.i] = true
			collected++
			continue
		default:
		}
		select {
		case r := <-done:
			results[r.i] = r.res
			filled[r.i] = true
			collected++
		case <-ctx.Done():
			complete = false
			break collect
		}
	}

	if !complete {
		for i, d := range detectors {
			if !filled[i] {
				results[i] = listing.IndicatorResult{
					Name:      d.Name(),
					Evaluated: false,
					Rationale: "analysis deadline expired",
				}
			}
		}
		s.logger.Warn("analysis deadline expired before all detectors finished",
			logging.Int("completed", collected),
			logging.Int("total", len(detectors)),
		)
	}
	return results, complete
}

// maybeWriteBack registers a high-confidence fuzzy match as a new variation,
// asynchronously and best-effort.
func (s *Service) maybeWriteBack(mention *listing.BrandMention, bctx *brand.Context) {
	if mention.Type != listing.MatchFuzzy || mention.Confidence < s.writeBackFloor {
		return
	}
	if bctx.Stale {
		return // the store is known to be struggling
	}

	v := brand.Variation{
		Name:       mention.Matched,
		Brand:      mention.Brand,
		RiskWeight: mention.Confidence,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeBackTimeout)
		defer cancel()
		if err := s.store.UpsertVariation(ctx, mention.Brand, v); err != nil {
			s.logger.Warn("variation write-back failed",
				logging.String("brand", mention.Brand),
				logging.String("variation", v.Name),
				logging.Err(err),
			)
			return
		}
		if s.publisher != nil {
			_ = s.publisher.PublishGraphUpdated(ctx, mention.Brand)
		}
	}()
}

// loadContext is the cache loader: it assembles the full brand context from
// the graph store.  Unknown brands yield the empty context, cached like any
// other so repeated unknown-brand listings do not hammer the graph.
func (s *Service) loadContext(ctx context.Context, brandName string) (*brand.Context, error) {
	record, err := s.store.FetchBrandRecord(ctx, brandName)
	if err != nil {
		if errors.IsNotFound(err) {
			return brand.EmptyContext(brandName, s.clock.Now()), nil
		}
		return nil, err
	}

	variations, err := s.store.FetchVariations(ctx, brandName)
	if err != nil {
		return nil, err
	}
	schema, err := s.store.FetchAttributeSchema(ctx, brandName)
	if err != nil {
		return nil, err
	}
	patterns, err := s.store.FetchCounterfeitPatterns(ctx, brandName)
	if err != nil {
		return nil, err
	}

	record.Variations = variations
	record.Patterns = patterns
	return &brand.Context{
		Record:     record,
		Attributes: schema,
		Patterns:   patterns,
		FetchedAt:  s.clock.Now(),
	}, nil
}

func (s *Service) observe(outcome listing.Outcome, start time.Time) {
	if s.recorder != nil {
		s.recorder.ObserveAnalysis(outcome, s.clock.Now().Sub(start))
	}
}

func (s *Service) publish(ctx context.Context, result *listing.ScoreResult) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishScored(ctx, result); err != nil {
		s.logger.Warn("failed to publish scored event",
			logging.String("listing_id", result.ListingID),
			logging.Err(err),
		)
	}
}

//Personal.AI order the ending
