package indicators

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// sellerRedFlags are account-name fragments strongly correlated with
// counterfeit storefronts in takedown data.
var sellerRedFlags = []string{
	"replica",
	"rep",
	"factory",
	"wholesale",
	"outlet",
	"aaa",
	"mirror",
	"1to1",
	"unauth",
}

// SellerDetector scores the seller account name for disposable-storefront
// signals: red-flag fragments, digit-heavy handles, throwaway-short names.
type SellerDetector struct{}

func NewSellerDetector() *SellerDetector { return &SellerDetector{} }

func (d *SellerDetector) Name() string { return IndicatorSeller }

func (d *SellerDetector) Detect(_ context.Context, ev *Evidence) listing.IndicatorResult {
	seller := strings.TrimSpace(strings.ToLower(ev.Listing.Seller))
	if seller == "" {
		return skipped(d.Name(), "listing has no seller")
	}

	var hits []string
	for _, flag := range sellerRedFlags {
		if matchesFlag(seller, flag) {
			hits = append(hits, flag)
		}
	}
	if digitFraction(seller) > 0.5 {
		hits = append(hits, "digit-heavy name")
	}
	if len([]rune(seller)) <= 3 {
		hits = append(hits, "throwaway-short name")
	}

	if len(hits) == 0 {
		return clear(d.Name())
	}

	severity := 0.4 + 0.2*float64(len(hits))
	if severity > 1.0 {
		severity = 1.0
	}
	return listing.IndicatorResult{
		Name:      d.Name(),
		Evaluated: true,
		Triggered: true,
		Severity:  severity,
		Rationale: fmt.Sprintf("seller name signals: %s", strings.Join(hits, ", ")),
	}
}

// matchesFlag matches short flags only as whole name segments so "rep" does
// not fire inside "reputable"; longer flags match as substrings.
func matchesFlag(seller, flag string) bool {
	if len(flag) > 3 {
		return strings.Contains(seller, flag)
	}
	for _, seg := range strings.FieldsFunc(seller, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if seg == flag {
			return true
		}
	}
	return false
}

func digitFraction(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	digits := 0
	for _, r := range runes {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return float64(digits) / float64(len(runes))
}

//Personal.AI order the ending
