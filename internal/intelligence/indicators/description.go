package indicators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// descriptionRedFlags are phrases, matched against the normalized listing
// text, that sellers of counterfeits use to hedge authenticity claims.
// Phrases must themselves be in normalized form (lowercase, no punctuation).
var descriptionRedFlags = []string{
	"replica",
	"knockoff",
	"knock off",
	"aaa quality",
	"1 1 quality", // "1:1 quality" after normalization
	"mirror quality",
	"factory direct",
	"inspired by",
	"same as original",
	"same as authentic",
	"oem quality",
	"copy of",
	"unauthorized",
	"no box no tag",
	"not original",
}

// discountClaim matches steep-discount come-ons like "80 off" or "90 off"
// ("80% Off" once normalization strips the percent sign). Half off or less is
// ordinary retail; 50+ points off a brand-name item reads as a bait claim.
var discountClaim = regexp.MustCompile(` (?:[5-9][0-9]|100) off `)

// DescriptionDetector scans the normalized title and description for
// authenticity-hedging language.
type DescriptionDetector struct{}

func NewDescriptionDetector() *DescriptionDetector { return &DescriptionDetector{} }

func (d *DescriptionDetector) Name() string { return IndicatorDescription }

func (d *DescriptionDetector) Detect(_ context.Context, ev *Evidence) listing.IndicatorResult {
	text := ev.NormalizedText
	if text == "" {
		return skipped(d.Name(), "listing has no text")
	}

	padded := " " + text + " "
	var hits []string
	for _, phrase := range descriptionRedFlags {
		if strings.Contains(padded, " "+phrase+" ") {
			hits = append(hits, phrase)
		}
	}

	if m := discountClaim.FindString(padded); m != "" {
		hits = append(hits, strings.TrimSpace(m)+" discount claim")
	}

	if len(hits) == 0 {
		return clear(d.Name())
	}

	severity := 0.5 + 0.25*float64(len(hits)-1)
	if severity > 1.0 {
		severity = 1.0
	}
	return listing.IndicatorResult{
		Name:      d.Name(),
		Evaluated: true,
		Triggered: true,
		Severity:  severity,
		Rationale: fmt.Sprintf("red-flag language: %s", strings.Join(hits, "; ")),
	}
}

//Personal.AI order the ending
