package indicators

import (
	"testing"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

func fullResults(severities map[string]float64) []listing.IndicatorResult {
	names := []string{IndicatorPricing, IndicatorAttribute, IndicatorSeller, IndicatorDescription, IndicatorGeography}
	out := make([]listing.IndicatorResult, len(names))
	for i, name := range names {
		sev, triggered := severities[name]
		out[i] = listing.IndicatorResult{Name: name, Evaluated: true, Triggered: triggered, Severity: sev}
	}
	return out
}

func TestScoreNothingTriggered(t *testing.T) {
	s := NewScorer(testConfig())
	v := s.Score(fullResults(nil), 1.0, testBrandContext())

	if v.Score != 0 {
		t.Errorf("score = %d, want 0", v.Score)
	}
	if v.RiskLevel != listing.RiskNone {
		t.Errorf("risk = %v, want NONE", v.RiskLevel)
	}
	if v.LikelyCounterfeit {
		t.Error("clean listing flagged likely counterfeit")
	}
	if v.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0 for fully evaluated exact match", v.Confidence)
	}
}

func TestScoreWeightedSum(t *testing.T) {
	s := NewScorer(testConfig())

	// pricing 0.30×1.0 + geography 0.20×0.8 = 0.46 → 46.
	v := s.Score(fullResults(map[string]float64{
		IndicatorPricing:   1.0,
		IndicatorGeography: 0.8,
	}), 1.0, testBrandContext())

	if v.Score != 46 {
		t.Errorf("score = %d, want 46", v.Score)
	}
	if v.RiskLevel != listing.RiskLow {
		t.Errorf("risk = %v, want LOW", v.RiskLevel)
	}
	if v.LikelyCounterfeit {
		t.Error("score 46 must not cross the 60 threshold")
	}
}

func TestScoreBrandMultiplierAmplifies(t *testing.T) {
	s := NewScorer(testConfig())
	bctx := testBrandContext()
	bctx.Patterns = []brand.CounterfeitPattern{{Name: IndicatorPricing, Weight: 1.0}}

	// pricing 0.30×1.0×(1+1.0) = 0.60 → 60, exactly the likely threshold.
	v := s.Score(fullResults(map[string]float64{IndicatorPricing: 1.0}), 1.0, bctx)

	if v.Score != 60 {
		t.Errorf("score = %d, want 60", v.Score)
	}
	if !v.LikelyCounterfeit {
		t.Error("score at threshold must be flagged likely counterfeit")
	}
	if v.RiskLevel != listing.RiskMedium {
		t.Errorf("risk = %v, want MEDIUM", v.RiskLevel)
	}
}

func TestScoreClampsAtHundred(t *testing.T) {
	s := NewScorer(testConfig())
	bctx := testBrandContext()
	bctx.Patterns = []brand.CounterfeitPattern{
		{Name: IndicatorPricing, Weight: 1.0},
		{Name: IndicatorAttribute, Weight: 1.0},
		{Name: IndicatorSeller, Weight: 1.0},
		{Name: IndicatorDescription, Weight: 1.0},
		{Name: IndicatorGeography, Weight: 1.0},
	}

	v := s.Score(fullResults(map[string]float64{
		IndicatorPricing:     1.0,
		IndicatorAttribute:   1.0,
		IndicatorSeller:      1.0,
		IndicatorDescription: 1.0,
		IndicatorGeography:   1.0,
	}), 1.0, bctx)

	if v.Score != 100 {
		t.Errorf("score = %d, want clamp at 100", v.Score)
	}
	if v.RiskLevel != listing.RiskHigh {
		t.Errorf("risk = %v, want HIGH", v.RiskLevel)
	}
}

func TestScoreMonotoneInSeverity(t *testing.T) {
	s := NewScorer(testConfig())
	bctx := testBrandContext()

	prev := -1
	for _, sev := range []float64{0.2, 0.4, 0.6, 0.8, 1.0} {
		v := s.Score(fullResults(map[string]float64{IndicatorPricing: sev}), 1.0, bctx)
		if v.Score < prev {
			t.Errorf("score must not fall as severity rises: %d after %d", v.Score, prev)
		}
		prev = v.Score
	}
}

func TestConfidenceDiscountedByCompleteness(t *testing.T) {
	s := NewScorer(testConfig())

	results := fullResults(map[string]float64{IndicatorPricing: 1.0})
	// Three of five detectors could not judge.
	results[1].Evaluated = false
	results[3].Evaluated = false
	results[4].Evaluated = false

	v := s.Score(results, 0.9, testBrandContext())

	want := 0.9 * 2.0 / 5.0
	if diff := v.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %v, want %v", v.Confidence, want)
	}

	// Unevaluated indicators never move the score itself.
	full := s.Score(fullResults(map[string]float64{IndicatorPricing: 1.0}), 0.9, testBrandContext())
	if v.Score != full.Score {
		t.Errorf("score changed with completeness: %d vs %d", v.Score, full.Score)
	}
}

func TestScoreEmptyResults(t *testing.T) {
	s := NewScorer(testConfig())
	v := s.Score(nil, 1.0, testBrandContext())
	if v.Score != 0 || v.Confidence != 0 {
		t.Errorf("empty results: %+v", v)
	}
}

//Personal.AI order the ending
