package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/brandmatch"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// newTestService builds a service over the mock store with a built index.
func newTestService(t *testing.T, store *mockGraphStore, pub EventPublisher) (*Service, *fakeClock) {
	t.Helper()
	cfg := testServiceConfig()
	cfg.Matching.WriteBackFloor = 0.78 // let 0.8-confidence fuzzy matches write back

	clock := newFakeClock()
	index := brandmatch.NewIndex(cfg.Matching.SimilarityFloor, nil)
	svc := NewService(cfg, index, store, pub, nil, clock, nil)

	rb := NewRebuilder(index, store, nil, cfg.Matching.SeedBrands, time.Hour, clock, nil)
	if err := rb.RebuildOnce(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return svc, clock
}

func TestAnalyzeSuspiciousListing(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	pub := &mockPublisher{}
	svc, _ := newTestService(t, store, pub)

	res, err := svc.Analyze(context.Background(), &listing.Input{
		ID:             "l1",
		Title:          "NIKE Air Max replica",
		Description:    "Mirror quality, factory direct, same as original.",
		Price:          12,
		Category:       "shoes",
		Seller:         "replica-king",
		ShippingOrigin: "XX",
		Attributes:     map[string]string{"color": "neon-green"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.Outcome != listing.OutcomeScored {
		t.Errorf("outcome = %v, want scored", res.Outcome)
	}
	if res.Mention == nil || res.Mention.Brand != "Nike" {
		t.Fatalf("mention = %+v, want Nike", res.Mention)
	}
	if res.Score < 80 {
		t.Errorf("score = %d, want HIGH-risk territory for a fully red listing", res.Score)
	}
	if res.RiskLevel != listing.RiskHigh {
		t.Errorf("risk = %v, want HIGH", res.RiskLevel)
	}
	if !res.LikelyCounterfeit {
		t.Error("fully red listing must be flagged likely counterfeit")
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0 for exact match with full evaluation", res.Confidence)
	}
	if len(res.Indicators) != 5 {
		t.Errorf("got %d indicator results, want 5", len(res.Indicators))
	}
	if res.Degraded {
		t.Error("fresh context must not be degraded")
	}
	if pub.scoredCount() != 1 {
		t.Errorf("published %d scored events, want 1", pub.scoredCount())
	}
}

func TestAnalyzeCleanListing(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	svc, _ := newTestService(t, store, nil)

	res, err := svc.Analyze(context.Background(), &listing.Input{
		ID:             "l2",
		Title:          "Nike Air Max 90",
		Description:    "Brand new in box, purchased from the official store.",
		Price:          110,
		Category:       "shoes",
		Seller:         "trusted sneaker boutique",
		ShippingOrigin: "US",
		Attributes:     map[string]string{"color": "black"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("score = %d, want 0 for a clean listing", res.Score)
	}
	if res.RiskLevel != listing.RiskNone || res.LikelyCounterfeit {
		t.Errorf("clean listing verdict: %+v", res)
	}
}

func TestAnalyzeNoBrandIsTerminalZero(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	svc, _ := newTestService(t, store, nil)

	before := store.fetchCalls
	res, err := svc.Analyze(context.Background(), &listing.Input{
		ID:    "l3",
		Title: "generic running shoes size 42",
		Price: 5,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Score != 0 || res.Mention != nil || res.Outcome != listing.OutcomeScored {
		t.Errorf("no-brand result: %+v", res)
	}
	if res.Confidence != 0 {
		t.Errorf("no-brand confidence = %v, want 0", res.Confidence)
	}
	if store.fetchCalls != before {
		t.Error("no-brand listings must not touch the graph store")
	}
}

func TestAnalyzeInvalidListingRejected(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	svc, _ := newTestService(t, store, nil)

	res, err := svc.Analyze(context.Background(), &listing.Input{ID: "l4", Price: 10})
	if !errors.IsCode(err, errors.ErrCodeListingInvalid) {
		t.Fatalf("err = %v, want ErrCodeListingInvalid", err)
	}
	if res == nil || res.Outcome != listing.OutcomeRejected {
		t.Errorf("result = %+v, want rejected outcome", res)
	}
}

func TestAnalyzeBeforeFirstIndexBuildUsesSeedBrands(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	cfg := testServiceConfig()
	svc := NewService(cfg, brandmatch.NewIndex(cfg.Matching.SimilarityFloor, nil), store, nil, nil, newFakeClock(), nil)

	// Exact seed-brand hit still scores, flagged degraded.
	res, err := svc.Analyze(context.Background(), &listing.Input{
		ID: "s1", Title: "nike shoes replica", Price: 10, Category: "shoes",
	})
	if err != nil {
		t.Fatalf("Analyze before first build: %v", err)
	}
	if res.Mention == nil || res.Mention.Brand != "Nike" || res.Mention.Type != listing.MatchExact {
		t.Fatalf("mention = %+v, want exact Nike from the seed list", res.Mention)
	}
	if !res.Degraded {
		t.Error("seed-list matching must mark the result degraded")
	}

	// The seed fallback is exact-only: a fuzzy spelling finds nothing.
	res, err = svc.Analyze(context.Background(), &listing.Input{
		ID: "s2", Title: "nikee shoes", Price: 10,
	})
	if err != nil {
		t.Fatalf("Analyze fuzzy-only before first build: %v", err)
	}
	if res.Mention != nil || res.Score != 0 {
		t.Errorf("fuzzy seed result = %+v, want no mention", res)
	}
	if !res.Degraded {
		t.Error("seed-list no-mention result must still be degraded")
	}
}

func TestAnalyzeStoreDownColdCacheStillScores(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	svc, _ := newTestService(t, store, nil)

	// Store goes down before anything is cached for Nike.
	store.setFetchErr(errors.Unavailable("graph down"))

	res, err := svc.Analyze(context.Background(), &listing.Input{
		ID: "l9", Title: "nike shoes replica", Price: 10,
	})
	if err != nil {
		t.Fatalf("Analyze with cold cache and store down: %v", err)
	}
	if res.Mention == nil || res.Mention.Brand != "Nike" {
		t.Fatalf("mention = %+v, want Nike", res.Mention)
	}
	if !res.Degraded {
		t.Error("empty-context verdict must carry Degraded=true")
	}
	if res.Score == 0 {
		t.Error("replica language should move the score even without graph data")
	}
}

func TestAnalyzeSteepDiscountVariationListing(t *testing.T) {
	store := newMockGraphStore()
	store.records["Nike"] = &brand.BrandRecord{
		Name:       "Nike",
		Regions:    []string{"US", "EU"},
		Baselines:  map[string]float64{"shoes": 120},
		Variations: []brand.Variation{{Name: "Jrdn", Brand: "Nike"}},
	}
	store.patterns["Nike"] = []brand.CounterfeitPattern{
		{Name: "pricing", Weight: 0.8},
		{Name: "description", Weight: 0.5},
		{Name: "geography", Weight: 0.5},
	}
	svc, _ := newTestService(t, store, nil)

	res, err := svc.Analyze(context.Background(), &listing.Input{
		ID:             "l10",
		Title:          "Nike Air Jrdn Shoes 80% Off",
		Price:          45.99,
		Category:       "shoes",
		Seller:         "discount_luxury_goods",
		ShippingOrigin: "Unspecified",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Mention == nil || res.Mention.Brand != "Nike" {
		t.Fatalf("mention = %+v, want Nike", res.Mention)
	}

	triggered := map[string]bool{}
	for _, ind := range res.Indicators {
		if ind.Triggered {
			triggered[ind.Name] = true
		}
	}
	for _, name := range []string{"pricing", "description", "geography"} {
		if !triggered[name] {
			t.Errorf("indicator %q should trigger: %+v", name, res.Indicators)
		}
	}
	if triggered["seller"] {
		t.Error("a plain storefront name must not trigger the seller indicator")
	}
	if !res.LikelyCounterfeit {
		t.Errorf("score = %d with pattern-weighted pricing, description, and geography hits: want likely counterfeit", res.Score)
	}
	if res.Score < 60 {
		t.Errorf("score = %d, want at or above the likely-counterfeit threshold", res.Score)
	}
}

func TestAnalyzeUnknownBrandDegradesGracefully(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	store.records["Rolex"] = &brand.BrandRecord{Name: "Rolex"}
	svc, _ := newTestService(t, store, nil)

	res, err := svc.Analyze(context.Background(), &listing.Input{
		ID:    "l5",
		Title: "Rolex watch replica",
		Price: 20,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// Rolex has no baselines, regions, or schema: only seller and
	// description detectors can judge, so confidence is discounted.
	if res.Confidence >= 1.0 {
		t.Errorf("confidence = %v, want discounted below 1.0", res.Confidence)
	}
	if res.Score == 0 {
		t.Error("replica language should still move the score")
	}
}

func TestAnalyzeStaleContextMarksDegraded(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	svc, clock := newTestService(t, store, nil)

	in := &listing.Input{ID: "l6", Title: "nike shoes", Price: 90, Category: "shoes"}
	if _, err := svc.Analyze(context.Background(), in); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	clock.advance(2 * time.Hour) // well past the context TTL
	store.setFetchErr(errors.Unavailable("graph down"))

	res, err := svc.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze with stale cache: %v", err)
	}
	if !res.Degraded {
		t.Error("result served from stale context must carry Degraded=true")
	}
}

func TestAnalyzeWriteBackOnHighConfidenceFuzzyMatch(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	pub := &mockPublisher{}
	svc, _ := newTestService(t, store, pub)

	// "nikee" folds to itself and fuzzy-matches Nike at 0.8, above the
	// test write-back floor of 0.78.
	res, err := svc.Analyze(context.Background(), &listing.Input{
		ID:    "l7",
		Title: "nikee running shoes",
		Price: 50,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Mention == nil || res.Mention.Type != listing.MatchFuzzy {
		t.Fatalf("mention = %+v, want fuzzy", res.Mention)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if vs := store.upsertedVariations(); len(vs) > 0 {
			if vs[0].Name != "nikee" || vs[0].Brand != "Nike" {
				t.Errorf("write-back variation = %+v", vs[0])
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("variation write-back never reached the store")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAnalyzeDeadlineYieldsIncomplete(t *testing.T) {
	store := newMockGraphStore()
	store.addNike()
	svc, _ := newTestService(t, store, nil)

	// Warm the cache first so the expired context is already resident.
	if _, err := svc.Analyze(context.Background(), &listing.Input{Title: "nike", Price: 90, Category: "shoes"}); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already expired when the detectors start

	res, err := svc.Analyze(ctx, &listing.Input{ID: "l8", Title: "nike shoes", Price: 90, Category: "shoes"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Outcome != listing.OutcomeIncomplete {
		t.Errorf("outcome = %v, want incomplete under an expired context", res.Outcome)
	}
}

//Personal.AI order the ending
