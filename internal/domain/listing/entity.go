// Package listing holds the marketplace-listing domain model: the raw listing
// input, brand mentions found in it, per-indicator findings, and the final
// risk score.
package listing

import (
	"strings"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// Input is a raw marketplace listing submitted for analysis.
type Input struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Price in the listing's currency; zero means unstated.
	Price float64 `json:"price"`

	Seller         string `json:"seller"`
	ShippingOrigin string `json:"shipping_origin"`

	// DeclaredBrand is the brand claimed by the seller, if any.  The engine
	// extracts brands from free text regardless; the declared brand only
	// biases tie-breaking.
	DeclaredBrand string `json:"declared_brand"`

	// Category is the seller-declared product type, e.g. "shoes".
	Category string `json:"category"`

	// Attributes are the seller-declared attribute values, e.g. color, size.
	Attributes map[string]string `json:"attributes"`
}

// Validate checks that the listing carries enough material to analyze.
// Returns ErrCodeListingInvalid for a structurally unusable listing.
func (in *Input) Validate() error {
	if in == nil {
		return errors.New(errors.ErrCodeListingInvalid, "listing is nil")
	}
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Description) == "" {
		return errors.New(errors.ErrCodeListingInvalid, "listing has neither title nor description")
	}
	if in.Price < 0 {
		return errors.New(errors.ErrCodeListingInvalid, "listing price is negative")
	}
	return nil
}

// Text returns the analyzable free text of the listing: title and description
// joined, title first.
func (in *Input) Text() string {
	switch {
	case in.Title == "":
		return in.Description
	case in.Description == "":
		return in.Title
	default:
		return in.Title + " " + in.Description
	}
}

// MatchType classifies how a brand mention was found.
type MatchType string

const (
	// MatchExact is a direct hit on the canonical brand name.
	MatchExact MatchType = "exact"
	// MatchVariation is a hit on a registered variation.
	MatchVariation MatchType = "variation"
	// MatchFuzzy is a similarity hit above the configured floor.
	MatchFuzzy MatchType = "fuzzy"
)

// Span locates a mention inside the listing's normalized text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// BrandMention is one brand found in a listing's text.
type BrandMention struct {
	// Brand is the canonical brand name the mention resolved to.
	Brand string `json:"brand"`

	// Matched is the normalized substring that produced the match.
	Matched string `json:"matched"`

	Type MatchType `json:"type"`

	// Confidence in [0,1]: 1.0 for exact and variation matches, the
	// similarity ratio for fuzzy ones.
	Confidence float64 `json:"confidence"`

	Span Span `json:"span"`
}

// IndicatorResult is the finding of one counterfeit-indicator detector.
type IndicatorResult struct {
	Name string `json:"name"`

	// Evaluated is false when the detector lacked the data to judge, e.g. no
	// price baseline for the brand.  Unevaluated indicators reduce the
	// completeness fraction but never the score.
	Evaluated bool `json:"evaluated"`

	Triggered bool `json:"triggered"`

	// Severity in [0,1]; meaningful only when Triggered.
	Severity float64 `json:"severity"`

	// Rationale is a short human-readable explanation of the finding.
	Rationale string `json:"rationale"`
}

// Outcome classifies how an analysis terminated.
type Outcome string

const (
	// OutcomeScored means the full pipeline ran and produced a score.
	OutcomeScored Outcome = "scored"
	// OutcomeRejected means the listing failed validation.
	OutcomeRejected Outcome = "rejected"
	// OutcomeIncomplete means the deadline expired before all detectors
	// finished; the score covers only the indicators that completed.
	OutcomeIncomplete Outcome = "incomplete"
)

// RiskLevel buckets a score for human triage.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
	RiskNone   RiskLevel = "NONE"
)

// RiskLevelForScore maps a 0–100 score to its triage bucket.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskHigh
	case score >= 50:
		return RiskMedium
	case score > 0:
		return RiskLow
	default:
		return RiskNone
	}
}

// ScoreResult is the final verdict for one listing.
type ScoreResult struct {
	ListingID string `json:"listing_id"`

	// Score is the counterfeit-risk score in [0,100].  Zero when no brand
	// was found.
	Score int `json:"score"`

	// Confidence in [0,1]: brand-match confidence discounted by the fraction
	// of indicators that could actually be evaluated.
	Confidence float64 `json:"confidence"`

	RiskLevel RiskLevel `json:"risk_level"`

	// LikelyCounterfeit is true when Score crosses the configured threshold.
	LikelyCounterfeit bool `json:"likely_counterfeit"`

	// Mention is the winning brand mention, nil when no brand was found.
	Mention *BrandMention `json:"mention,omitempty"`

	// Indicators lists every detector finding, in registry order.
	Indicators []IndicatorResult `json:"indicators"`

	Outcome Outcome `json:"outcome"`

	// Degraded is true when the brand context was served stale because the
	// graph store was unreachable.
	Degraded bool `json:"degraded"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Triggered returns only the indicator findings that fired.
func (r *ScoreResult) Triggered() []IndicatorResult {
	out := make([]IndicatorResult, 0, len(r.Indicators))
	for _, ind := range r.Indicators {
		if ind.Triggered {
			out = append(out, ind)
		}
	}
	return out
}

//Personal.AI order the ending
