package indicators

import (
	"context"
	"fmt"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// PricingDetector flags listings priced suspiciously far below the brand's
// reference baseline for the product type.
type PricingDetector struct {
	// fraction of the baseline below which a price is suspicious, in (0,1).
	fraction float64
}

func NewPricingDetector(fraction float64) *PricingDetector {
	return &PricingDetector{fraction: fraction}
}

func (d *PricingDetector) Name() string { return IndicatorPricing }

func (d *PricingDetector) Detect(_ context.Context, ev *Evidence) listing.IndicatorResult {
	if ev.Listing.Price <= 0 {
		return skipped(d.Name(), "listing has no stated price")
	}
	baseline, ok := ev.Brand.Baseline(ev.Listing.Category)
	if !ok || baseline <= 0 {
		return skipped(d.Name(), "no price baseline for brand")
	}

	ratio := ev.Listing.Price / baseline
	if ratio >= d.fraction {
		return clear(d.Name())
	}

	// Severity grows as the price falls further below the suspicion line:
	// 0.5 at the line, 1.0 for a near-free listing.
	severity := 0.5 + 0.5*(1-ratio/d.fraction)
	return listing.IndicatorResult{
		Name:      d.Name(),
		Evaluated: true,
		Triggered: true,
		Severity:  severity,
		Rationale: fmt.Sprintf("price %.2f is %.0f%% of the %.2f baseline", ev.Listing.Price, ratio*100, baseline),
	}
}

//Personal.AI order the ending
