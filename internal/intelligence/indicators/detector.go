// Package indicators implements the counterfeit-indicator detectors and the
// weighted scorer that folds their findings into a 0-100 risk score.
package indicators

import (
	"context"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// Indicator names.  These double as counterfeit-pattern keys in the brand
// graph: a pattern registered under an indicator's name amplifies that
// indicator for the brand.
const (
	IndicatorPricing     = "pricing"
	IndicatorAttribute   = "attribute"
	IndicatorSeller      = "seller"
	IndicatorDescription = "description"
	IndicatorGeography   = "geography"
)

// Evidence is the bundle a detector judges: the validated listing, the
// winning brand mention, and the brand's graph context.
type Evidence struct {
	Listing *listing.Input
	Mention *listing.BrandMention
	Brand   *brand.Context

	// NormalizedText is the lexically normalized title+description, shared
	// so every detector sees the same fold.
	NormalizedText string
}

// Detector judges one counterfeit signal.  Implementations must be stateless
// and safe for concurrent use; per-call state lives in Evidence.
//
// Detect never returns an error: a detector that cannot judge reports
// Evaluated=false, which discounts result confidence instead of failing the
// listing.
type Detector interface {
	Name() string
	Detect(ctx context.Context, ev *Evidence) listing.IndicatorResult
}

// Registry is the fixed, ordered set of detectors.  Order is part of the
// public result contract: IndicatorResult slices always follow it.
type Registry struct {
	detectors []Detector
}

// NewRegistry builds the standard five-detector registry.
func NewRegistry(cfg Config) *Registry {
	return &Registry{detectors: []Detector{
		NewPricingDetector(cfg.PriceFraction),
		NewAttributeDetector(),
		NewSellerDetector(),
		NewDescriptionDetector(),
		NewGeographyDetector(),
	}}
}

// Detectors returns the registry's detectors in evaluation order.
func (r *Registry) Detectors() []Detector {
	return r.detectors
}

// Len returns the number of registered detectors.
func (r *Registry) Len() int {
	return len(r.detectors)
}

// skipped builds the result for a detector that lacked the data to judge.
func skipped(name, why string) listing.IndicatorResult {
	return listing.IndicatorResult{Name: name, Evaluated: false, Rationale: why}
}

// clear builds the result for a detector that judged and found nothing.
func clear(name string) listing.IndicatorResult {
	return listing.IndicatorResult{Name: name, Evaluated: true}
}

//Personal.AI order the ending
