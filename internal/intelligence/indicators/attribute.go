package indicators

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// AttributeDetector checks the seller-declared attributes against the values
// the brand legitimately produces for the product type.  A declared color the
// brand never made is a classic counterfeit tell.
type AttributeDetector struct{}

func NewAttributeDetector() *AttributeDetector { return &AttributeDetector{} }

func (d *AttributeDetector) Name() string { return IndicatorAttribute }

func (d *AttributeDetector) Detect(_ context.Context, ev *Evidence) listing.IndicatorResult {
	if len(ev.Listing.Attributes) == 0 {
		return skipped(d.Name(), "listing declares no attributes")
	}

	// Deterministic evaluation order regardless of map iteration.
	names := make([]string, 0, len(ev.Listing.Attributes))
	for name := range ev.Listing.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	checked := 0
	var mismatched []string
	for _, name := range names {
		valid := ev.Brand.ValidValues(ev.Listing.Category, name)
		if valid == nil {
			continue // schema has no opinion on this attribute
		}
		checked++
		if !containsFold(valid, ev.Listing.Attributes[name]) {
			mismatched = append(mismatched, fmt.Sprintf("%s=%s", name, ev.Listing.Attributes[name]))
		}
	}

	if checked == 0 {
		return skipped(d.Name(), "brand schema covers none of the declared attributes")
	}
	if len(mismatched) == 0 {
		return clear(d.Name())
	}

	return listing.IndicatorResult{
		Name:      d.Name(),
		Evaluated: true,
		Triggered: true,
		Severity:  float64(len(mismatched)) / float64(checked),
		Rationale: fmt.Sprintf("%d of %d checkable attributes invalid for brand: %s",
			len(mismatched), checked, strings.Join(mismatched, ", ")),
	}
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
