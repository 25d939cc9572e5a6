package brandmatch

import (
	"testing"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	ix := NewIndex(0.75, nil)
	ix.Rebuild([]brand.BrandRecord{
		{
			Name: "Nike",
			Variations: []brand.Variation{
				{Name: "nikey", Brand: "Nike", RiskWeight: 0.9},
			},
		},
		{Name: "Louis Vuitton"},
		{Name: "New Balance"},
	}, time.Now())
	return NewExtractor(ix, 3, nil)
}

func TestExtractSingleBrand(t *testing.T) {
	e := testExtractor(t)

	got := e.Extract("Brand new NIKE running shoes")
	if len(got) != 1 {
		t.Fatalf("got %d mentions: %+v", len(got), got)
	}
	m := got[0]
	if m.Brand != "Nike" || m.Type != listing.MatchExact || m.Confidence != 1.0 {
		t.Errorf("mention = %+v", m)
	}
	if m.Matched != "nike" {
		t.Errorf("matched substring = %q, want %q", m.Matched, "nike")
	}
}

func TestExtractMultiWordBrandIsGreedy(t *testing.T) {
	e := testExtractor(t)

	got := e.Extract("Cheap Louis Vuitton bag")
	if len(got) != 1 {
		t.Fatalf("got %d mentions: %+v", len(got), got)
	}
	if got[0].Brand != "Louis Vuitton" || got[0].Matched != "louis vuitton" {
		t.Errorf("mention = %+v", got[0])
	}
}

func TestExtractNarrowExactBeatsWiderFuzzy(t *testing.T) {
	ix := NewIndex(0.75, nil)
	ix.Rebuild([]brand.BrandRecord{
		{Name: "Nike"},
		{Name: "Nike Air"},
	}, time.Now())
	e := NewExtractor(ix, 3, nil)

	// "nike airr" fuzzy-matches "Nike Air" below 1.0, but the single token
	// "nike" is an exact hit and must win the position.
	got := e.Extract("nike airr shoes")
	if len(got) == 0 {
		t.Fatal("no mentions")
	}
	m := got[0]
	if m.Brand != "Nike" || m.Type != listing.MatchExact || m.Confidence != 1.0 {
		t.Errorf("mention = %+v, want the exact single-token hit over the wider fuzzy window", m)
	}
	if m.Matched != "nike" {
		t.Errorf("matched substring = %q, want %q", m.Matched, "nike")
	}
}

func TestExtractExactSkipsFuzzy(t *testing.T) {
	e := testExtractor(t)

	got := e.ExtractExact("nikey shoes and louis vuitton bags")
	if len(got) != 2 {
		t.Fatalf("got %d mentions: %+v", len(got), got)
	}
	if got[0].Brand != "Nike" || got[0].Type != listing.MatchVariation {
		t.Errorf("variation mention = %+v", got[0])
	}
	if got[1].Brand != "Louis Vuitton" || got[1].Matched != "louis vuitton" {
		t.Errorf("mention = %+v", got[1])
	}

	// A fuzzy-only spelling finds nothing on the cheap pass.
	if got := e.ExtractExact("nikee shoes"); got != nil {
		t.Errorf("fuzzy-only text must yield nothing, got %+v", got)
	}
}

func TestExtractLeetspeakVariant(t *testing.T) {
	e := testExtractor(t)

	got := e.Extract("N1KE air shoes")
	if len(got) != 1 || got[0].Brand != "Nike" {
		t.Fatalf("leetspeak mention = %+v", got)
	}
	// The folded form matches the canonical name exactly.
	if got[0].Type != listing.MatchExact {
		t.Errorf("match type = %v, want exact", got[0].Type)
	}
}

func TestExtractMultipleBrandsInOrder(t *testing.T) {
	e := testExtractor(t)

	got := e.Extract("nike vs new balance comparison")
	if len(got) != 2 {
		t.Fatalf("got %d mentions: %+v", len(got), got)
	}
	if got[0].Brand != "Nike" || got[1].Brand != "New Balance" {
		t.Errorf("mentions out of order: %+v", got)
	}
	if got[0].Span.Start >= got[1].Span.Start {
		t.Error("spans must be in text order")
	}
}

func TestExtractNoBrand(t *testing.T) {
	e := testExtractor(t)
	if got := e.Extract("generic running shoes size 42"); got != nil {
		t.Errorf("expected no mentions, got %+v", got)
	}
	if got := e.Extract(""); got != nil {
		t.Errorf("empty text must yield no mentions, got %+v", got)
	}
}

func TestBestPrefersConfidenceThenDeclared(t *testing.T) {
	fuzzy := listing.BrandMention{Brand: "Nike", Type: listing.MatchFuzzy, Confidence: 0.8, Span: listing.Span{Start: 0}}
	exact := listing.BrandMention{Brand: "Adidas", Type: listing.MatchExact, Confidence: 1.0, Span: listing.Span{Start: 10}}
	exact2 := listing.BrandMention{Brand: "Puma", Type: listing.MatchExact, Confidence: 1.0, Span: listing.Span{Start: 20}}

	if got := Best([]listing.BrandMention{fuzzy, exact}, ""); got.Brand != "Adidas" {
		t.Errorf("Best picked %q, want highest confidence", got.Brand)
	}

	// Declared brand breaks confidence ties.
	if got := Best([]listing.BrandMention{exact, exact2}, "Puma"); got.Brand != "Puma" {
		t.Errorf("Best picked %q, want declared-brand tiebreak", got.Brand)
	}

	// Earliest span breaks remaining ties.
	if got := Best([]listing.BrandMention{exact2, exact}, ""); got.Brand != "Adidas" {
		t.Errorf("Best picked %q, want earliest span", got.Brand)
	}

	if Best(nil, "Nike") != nil {
		t.Error("Best(nil) must be nil")
	}
}

func TestBestDeclaredBrandBoostsConfidence(t *testing.T) {
	fuzzy := listing.BrandMention{Brand: "Nike", Type: listing.MatchFuzzy, Confidence: 0.8}

	got := Best([]listing.BrandMention{fuzzy}, "Nike")
	if got.Confidence < 0.9-1e-9 || got.Confidence > 0.9+1e-9 {
		t.Errorf("confidence = %v, want 0.8 boosted to 0.9", got.Confidence)
	}

	// Already at the ceiling: the boost must not push past 1.0.
	exact := listing.BrandMention{Brand: "Nike", Type: listing.MatchExact, Confidence: 1.0}
	if got := Best([]listing.BrandMention{exact}, "Nike"); got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want capped at 1.0", got.Confidence)
	}

	// Disagreeing declared brand earns nothing.
	if got := Best([]listing.BrandMention{fuzzy}, "Adidas"); got.Confidence != 0.8 {
		t.Errorf("confidence = %v, want unchanged when the declared brand disagrees", got.Confidence)
	}
}

//Personal.AI order the ending
