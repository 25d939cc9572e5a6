package indicators

import (
	"math"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// Config carries the scorer's tunables: one convex weight per indicator, the
// pricing suspicion fraction, and the likely-counterfeit threshold on the
// 0-100 scale.
type Config struct {
	PricingWeight     float64
	AttributeWeight   float64
	SellerWeight      float64
	DescriptionWeight float64
	GeographyWeight   float64

	PriceFraction              float64
	LikelyCounterfeitThreshold int
}

func (c Config) weightOf(name string) float64 {
	switch name {
	case IndicatorPricing:
		return c.PricingWeight
	case IndicatorAttribute:
		return c.AttributeWeight
	case IndicatorSeller:
		return c.SellerWeight
	case IndicatorDescription:
		return c.DescriptionWeight
	case IndicatorGeography:
		return c.GeographyWeight
	}
	return 0
}

// Verdict is the scorer's output for one listing.
type Verdict struct {
	Score             int
	Confidence        float64
	RiskLevel         listing.RiskLevel
	LikelyCounterfeit bool
}

// Scorer folds indicator findings into a 0-100 score.  Stateless and safe
// for concurrent use.
type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score combines the findings: each triggered indicator contributes
// weight × severity × brand multiplier to a [0,1] accumulator, which maps to
// the 0-100 scale.  Confidence is the brand-match confidence discounted by
// the fraction of indicators that could be evaluated, so a listing judged on
// one detector out of five never looks as certain as a fully judged one.
//
// results must be the full registry-ordered slice; indicators a deadline cut
// off arrive with Evaluated=false and simply lower the completeness.
func (s *Scorer) Score(results []listing.IndicatorResult, mentionConfidence float64, bctx *brand.Context) Verdict {
	raw := 0.0
	evaluated := 0
	for _, res := range results {
		if res.Evaluated {
			evaluated++
		}
		if !res.Triggered {
			continue
		}
		raw += s.cfg.weightOf(res.Name) * res.Severity * bctx.Multiplier(res.Name)
	}
	if raw > 1.0 {
		raw = 1.0
	}
	if raw < 0 {
		raw = 0
	}

	completeness := 0.0
	if len(results) > 0 {
		completeness = float64(evaluated) / float64(len(results))
	}

	score := int(math.Round(raw * 100))
	return Verdict{
		Score:             score,
		Confidence:        mentionConfidence * completeness,
		RiskLevel:         listing.RiskLevelForScore(score),
		LikelyCounterfeit: score > 0 && score >= s.cfg.LikelyCounterfeitThreshold,
	}
}

//Personal.AI order the ending
