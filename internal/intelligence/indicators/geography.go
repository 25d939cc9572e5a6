package indicators

import (
	"context"
	"fmt"
	"strings"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// GeographyDetector checks the shipping origin against the brand's known
// legitimate distribution regions.
type GeographyDetector struct{}

func NewGeographyDetector() *GeographyDetector { return &GeographyDetector{} }

func (d *GeographyDetector) Name() string { return IndicatorGeography }

func (d *GeographyDetector) Detect(_ context.Context, ev *Evidence) listing.IndicatorResult {
	origin := strings.TrimSpace(ev.Listing.ShippingOrigin)
	if origin == "" {
		return skipped(d.Name(), "listing has no shipping origin")
	}
	if ev.Brand == nil || ev.Brand.Record == nil || len(ev.Brand.Record.Regions) == 0 {
		return skipped(d.Name(), "brand has no registered distribution regions")
	}
	regions := ev.Brand.Record.Regions

	for _, r := range regions {
		if strings.EqualFold(r, origin) {
			return clear(d.Name())
		}
	}

	return listing.IndicatorResult{
		Name:      d.Name(),
		Evaluated: true,
		Triggered: true,
		Severity:  0.8,
		Rationale: fmt.Sprintf("ships from %s, outside the brand's distribution regions", origin),
	}
}

//Personal.AI order the ending
