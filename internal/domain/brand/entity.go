// Package brand holds the brand knowledge-graph domain model: the canonical
// brand records, their registered variations, counterfeit patterns, and the
// read-only per-brand context bundle handed to indicator detectors.
package brand

import (
	"time"
)

// CounterfeitPattern is a known counterfeit signature registered against a
// brand.  Weight amplifies matching indicators during scoring.
type CounterfeitPattern struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"` // in [0,1]
	Description string  `json:"description"`
}

// Variation is a registered alternative spelling or alias of a brand.
// Every variation belongs to exactly one brand at a given point in time.
type Variation struct {
	Name string `json:"name"`

	// Brand is the canonical name of the owning BrandRecord.  Back-reference
	// only; the record owns the variation, never the other way around.
	Brand string `json:"brand"`

	// RiskWeight is the counterfeit-risk weight of this spelling in [0,1].
	// Deliberate misspellings registered from takedown data carry high
	// weights; benign abbreviations carry low ones.
	RiskWeight float64 `json:"risk_weight"`
}

// AttributeSchema maps product type → attribute name → the set of values the
// brand legitimately produces.
type AttributeSchema map[string]map[string][]string

// BrandRecord is the canonical identity node for a brand.
// Created and updated only by graph synchronization; treated as immutable
// within a scoring pass.
type BrandRecord struct {
	Name         string               `json:"name"`
	ProductTypes []string             `json:"product_types"`
	Variations   []Variation          `json:"variations"`
	Patterns     []CounterfeitPattern `json:"patterns"`

	// Regions lists the brand's known legitimate distribution regions.
	Regions []string `json:"regions"`

	// Baselines maps product type → expected reference price.
	Baselines map[string]float64 `json:"baselines"`
}

// Context is the read-only per-brand bundle handed to indicator detectors.
// Built once per brand per batch and shared by every listing of that brand
// within the batch; lifetime is one batch cycle or one cache TTL window,
// whichever is shorter.
type Context struct {
	Record     *BrandRecord         `json:"record"`
	Attributes AttributeSchema      `json:"attributes"`
	Patterns   []CounterfeitPattern `json:"patterns"`
	FetchedAt  time.Time            `json:"fetched_at"`

	// Stale marks a context served past its TTL because the graph store was
	// unreachable.  Downstream results carry a degraded-confidence flag.
	Stale bool `json:"stale"`
}

// EmptyContext returns the context used for brands unknown to the graph:
// a record with no attributes, patterns, or baselines.  Detectors degrade to
// "not triggered" on it, which reduces the completeness fraction.
func EmptyContext(name string, fetchedAt time.Time) *Context {
	return &Context{
		Record:    &BrandRecord{Name: name},
		FetchedAt: fetchedAt,
	}
}

// Known reports whether the context carries real graph data, as opposed to
// the empty placeholder for an unknown brand.
func (c *Context) Known() bool {
	if c == nil || c.Record == nil {
		return false
	}
	return len(c.Attributes) > 0 || len(c.Patterns) > 0 ||
		len(c.Record.Variations) > 0 || len(c.Record.Baselines) > 0
}

// Multiplier returns the brand-specific score multiplier for the named
// indicator: 1 + weight of the matching counterfeit pattern, or 1.0 when the
// brand has no pattern registered under that name.
func (c *Context) Multiplier(indicator string) float64 {
	if c == nil {
		return 1.0
	}
	for _, p := range c.Patterns {
		if p.Name == indicator {
			return 1.0 + p.Weight
		}
	}
	return 1.0
}

// Baseline returns the expected price for productType, falling back to the
// cheapest known baseline when the product type is not registered.  The
// second return value is false when the brand has no baselines at all.
func (c *Context) Baseline(productType string) (float64, bool) {
	if c == nil || c.Record == nil || len(c.Record.Baselines) == 0 {
		return 0, false
	}
	if v, ok := c.Record.Baselines[productType]; ok {
		return v, true
	}
	min := 0.0
	first := true
	for _, v := range c.Record.Baselines {
		if first || v < min {
			min = v
			first = false
		}
	}
	return min, true
}

// ValidValues returns the legitimate values for an attribute of productType.
// A nil return means the schema has no opinion and the attribute cannot be
// judged.
func (c *Context) ValidValues(productType, attribute string) []string {
	if c == nil || c.Attributes == nil {
		return nil
	}
	attrs, ok := c.Attributes[productType]
	if !ok {
		return nil
	}
	return attrs[attribute]
}

//Personal.AI order the ending
