package indicators

import (
	"context"
	"testing"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/brandmatch"
)

func testConfig() Config {
	return Config{
		PricingWeight:              0.30,
		AttributeWeight:            0.20,
		SellerWeight:               0.15,
		DescriptionWeight:          0.15,
		GeographyWeight:            0.20,
		PriceFraction:              0.4,
		LikelyCounterfeitThreshold: 60,
	}
}

func testBrandContext() *brand.Context {
	return &brand.Context{
		Record: &brand.BrandRecord{
			Name:      "Nike",
			Regions:   []string{"US", "EU", "VN"},
			Baselines: map[string]float64{"shoes": 100},
		},
		Attributes: brand.AttributeSchema{
			"shoes": {"color": {"black", "white", "red"}},
		},
		FetchedAt: time.Now(),
	}
}

func evidence(in *listing.Input) *Evidence {
	return &Evidence{
		Listing:        in,
		Mention:        &listing.BrandMention{Brand: "Nike", Type: listing.MatchExact, Confidence: 1.0},
		Brand:          testBrandContext(),
		NormalizedText: brandmatch.Normalize(in.Text()),
	}
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry(testConfig())
	want := []string{IndicatorPricing, IndicatorAttribute, IndicatorSeller, IndicatorDescription, IndicatorGeography}
	if r.Len() != len(want) {
		t.Fatalf("registry has %d detectors, want %d", r.Len(), len(want))
	}
	for i, d := range r.Detectors() {
		if d.Name() != want[i] {
			t.Errorf("detector %d = %q, want %q", i, d.Name(), want[i])
		}
	}
}

func TestPricingDetector(t *testing.T) {
	d := NewPricingDetector(0.4)
	ctx := context.Background()

	// Far below 40% of the 100 baseline.
	res := d.Detect(ctx, evidence(&listing.Input{Title: "nike shoes", Category: "shoes", Price: 10}))
	if !res.Evaluated || !res.Triggered {
		t.Fatalf("cheap listing: %+v", res)
	}
	if res.Severity <= 0.5 || res.Severity > 1.0 {
		t.Errorf("severity = %v, want in (0.5,1]", res.Severity)
	}

	// At a plausible price.
	res = d.Detect(ctx, evidence(&listing.Input{Title: "nike shoes", Category: "shoes", Price: 90}))
	if !res.Evaluated || res.Triggered {
		t.Errorf("plausible price triggered: %+v", res)
	}

	// No price on the listing.
	res = d.Detect(ctx, evidence(&listing.Input{Title: "nike shoes", Category: "shoes"}))
	if res.Evaluated {
		t.Errorf("priceless listing must be skipped: %+v", res)
	}

	// No baseline for the brand.
	ev := evidence(&listing.Input{Title: "nike shoes", Category: "shoes", Price: 10})
	ev.Brand = brand.EmptyContext("Nike", time.Now())
	if res := d.Detect(ctx, ev); res.Evaluated {
		t.Errorf("baseline-less brand must be skipped: %+v", res)
	}
}

func TestPricingSeverityMonotone(t *testing.T) {
	d := NewPricingDetector(0.4)
	ctx := context.Background()

	prev := 2.0
	for _, price := range []float64{5, 15, 25, 35} {
		res := d.Detect(ctx, evidence(&listing.Input{Title: "x nike", Category: "shoes", Price: price}))
		if !res.Triggered {
			t.Fatalf("price %v should trigger", price)
		}
		if res.Severity >= prev {
			t.Errorf("severity must fall as price rises: %v at price %v", res.Severity, price)
		}
		prev = res.Severity
	}
}

func TestAttributeDetector(t *testing.T) {
	d := NewAttributeDetector()
	ctx := context.Background()

	// Invalid color for the brand.
	res := d.Detect(ctx, evidence(&listing.Input{
		Title: "nike shoes", Category: "shoes",
		Attributes: map[string]string{"color": "neon-pink"},
	}))
	if !res.Triggered || res.Severity != 1.0 {
		t.Fatalf("invalid color: %+v", res)
	}

	// Valid color, case-insensitive.
	res = d.Detect(ctx, evidence(&listing.Input{
		Title: "nike shoes", Category: "shoes",
		Attributes: map[string]string{"color": "Black"},
	}))
	if !res.Evaluated || res.Triggered {
		t.Errorf("valid color triggered: %+v", res)
	}

	// One of two checkable attributes invalid: the unknown "size" attribute
	// has no schema opinion and is not counted.
	res = d.Detect(ctx, evidence(&listing.Input{
		Title: "nike shoes", Category: "shoes",
		Attributes: map[string]string{"color": "green", "size": "42"},
	}))
	if !res.Triggered || res.Severity != 1.0 {
		t.Errorf("partial schema coverage: %+v", res)
	}

	// No declared attributes.
	res = d.Detect(ctx, evidence(&listing.Input{Title: "nike shoes", Category: "shoes"}))
	if res.Evaluated {
		t.Errorf("attribute-less listing must be skipped: %+v", res)
	}

	// Schema covers nothing the listing declares.
	res = d.Detect(ctx, evidence(&listing.Input{
		Title: "nike shoes", Category: "shoes",
		Attributes: map[string]string{"material": "mesh"},
	}))
	if res.Evaluated {
		t.Errorf("uncovered attributes must be skipped: %+v", res)
	}
}

func TestSellerDetector(t *testing.T) {
	d := NewSellerDetector()
	ctx := context.Background()

	cases := []struct {
		seller    string
		triggered bool
	}{
		{"replica-king", true},
		{"nike_factory_outlet", true},
		{"rep_store", true},
		{"reputable goods co", false},
		{"x9183749912", true}, // digit-heavy
		{"ab", true},          // throwaway-short
		{"classic sneaker shop", false},
	}
	for _, tc := range cases {
		res := d.Detect(ctx, evidence(&listing.Input{Title: "nike", Seller: tc.seller}))
		if !res.Evaluated {
			t.Errorf("seller %q must be evaluated", tc.seller)
			continue
		}
		if res.Triggered != tc.triggered {
			t.Errorf("seller %q triggered = %v, want %v (%s)", tc.seller, res.Triggered, tc.triggered, res.Rationale)
		}
	}

	res := d.Detect(ctx, evidence(&listing.Input{Title: "nike"}))
	if res.Evaluated {
		t.Errorf("seller-less listing must be skipped: %+v", res)
	}
}

func TestDescriptionDetector(t *testing.T) {
	d := NewDescriptionDetector()
	ctx := context.Background()

	res := d.Detect(ctx, evidence(&listing.Input{
		Title:       "Nike shoes",
		Description: "Mirror quality, 1:1 quality with original, factory direct.",
	}))
	if !res.Triggered {
		t.Fatalf("red-flag description: %+v", res)
	}
	if res.Severity <= 0.5 {
		t.Errorf("multiple hits should raise severity above the single-hit base, got %v", res.Severity)
	}

	res = d.Detect(ctx, evidence(&listing.Input{
		Title:       "Nike Air Max 90",
		Description: "Brand new in box with receipt from the official store.",
	}))
	if !res.Evaluated || res.Triggered {
		t.Errorf("clean description triggered: %+v", res)
	}
}

func TestDescriptionDetectorDiscountClaim(t *testing.T) {
	d := NewDescriptionDetector()
	ctx := context.Background()

	// "80% Off" normalizes to "80 off", which reads as a bait discount.
	res := d.Detect(ctx, evidence(&listing.Input{Title: "Nike Air Shoes 80% Off"}))
	if !res.Triggered {
		t.Fatalf("steep discount claim: %+v", res)
	}
	if res.Severity != 0.5 {
		t.Errorf("single-hit severity = %v, want 0.5", res.Severity)
	}

	// Ordinary sale depth stays clear.
	res = d.Detect(ctx, evidence(&listing.Input{Title: "Nike Air Shoes 20% Off"}))
	if !res.Evaluated || res.Triggered {
		t.Errorf("modest discount triggered: %+v", res)
	}
}

func TestGeographyDetector(t *testing.T) {
	d := NewGeographyDetector()
	ctx := context.Background()

	res := d.Detect(ctx, evidence(&listing.Input{Title: "nike", ShippingOrigin: "XX"}))
	if !res.Triggered || res.Severity != 0.8 {
		t.Fatalf("out-of-region origin: %+v", res)
	}

	res = d.Detect(ctx, evidence(&listing.Input{Title: "nike", ShippingOrigin: "us"}))
	if !res.Evaluated || res.Triggered {
		t.Errorf("in-region origin triggered (case-insensitive): %+v", res)
	}

	res = d.Detect(ctx, evidence(&listing.Input{Title: "nike"}))
	if res.Evaluated {
		t.Errorf("origin-less listing must be skipped: %+v", res)
	}

	ev := evidence(&listing.Input{Title: "nike", ShippingOrigin: "XX"})
	ev.Brand = brand.EmptyContext("Nike", time.Now())
	if res := d.Detect(ctx, ev); res.Evaluated {
		t.Errorf("region-less brand must be skipped: %+v", res)
	}
}

//Personal.AI order the ending
