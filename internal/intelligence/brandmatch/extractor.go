package brandmatch

import (
	"strings"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
)

// Extractor finds brand mentions in listing text by sliding token windows
// over the normalized token stream and resolving each window against the
// variation index.
type Extractor struct {
	index           *Index
	maxWindowTokens int
	logger          logging.Logger
}

// NewExtractor wires an extractor to its index.  maxWindowTokens bounds the
// n-gram width; multi-word brand names longer than the window are invisible.
func NewExtractor(index *Index, maxWindowTokens int, logger logging.Logger) *Extractor {
	if maxWindowTokens < 1 {
		maxWindowTokens = 1
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Extractor{
		index:           index,
		maxWindowTokens: maxWindowTokens,
		logger:          logger.Named("brand_extractor"),
	}
}

// Extract returns every brand mention in text.  At each token position every
// window width is tried and the highest-similarity resolution wins, the wider
// window on ties, so an exact single-token hit is never shadowed by a weaker
// fuzzy multi-token one.  Consumed tokens are not revisited; mentions appear
// in text order.
func (e *Extractor) Extract(text string) []listing.BrandMention {
	toks := Tokenize(text)
	if len(toks) == 0 {
		return nil
	}

	var mentions []listing.BrandMention
	for i := 0; i < len(toks); {
		maxW := e.maxWindowTokens
		if rem := len(toks) - i; rem < maxW {
			maxW = rem
		}

		bestW := 0
		var best Match
		var bestCandidate string
		for w := maxW; w >= 1; w-- {
			candidate := joinWindow(toks[i : i+w])
			m, ok := e.index.Lookup(candidate)
			if !ok {
				continue
			}
			// Strict >: the widest window is tried first, so ties keep it.
			if bestW == 0 || m.Confidence > best.Confidence {
				best = m
				bestW = w
				bestCandidate = candidate
			}
		}
		if bestW == 0 {
			i++
			continue
		}

		mentions = append(mentions, listing.BrandMention{
			Brand:      best.Brand,
			Matched:    bestCandidate,
			Type:       best.Type,
			Confidence: best.Confidence,
			Span:       listing.Span{Start: toks[i].Start, End: toks[i+bestW-1].End},
		})
		i += bestW
	}
	return mentions
}

// ExtractExact is the cheap pass: only exact and registered-variation hits,
// no fuzzy scan.  The batch coordinator uses it to group listings by brand
// before the full per-listing extraction.
func (e *Extractor) ExtractExact(text string) []listing.BrandMention {
	toks := Tokenize(text)
	if len(toks) == 0 {
		return nil
	}

	var mentions []listing.BrandMention
	for i := 0; i < len(toks); {
		matched := false
		maxW := e.maxWindowTokens
		if rem := len(toks) - i; rem < maxW {
			maxW = rem
		}
		for w := maxW; w >= 1; w-- {
			candidate := joinWindow(toks[i : i+w])
			m, ok := e.index.LookupExact(candidate)
			if !ok {
				continue
			}
			mentions = append(mentions, listing.BrandMention{
				Brand:      m.Brand,
				Matched:    candidate,
				Type:       m.Type,
				Confidence: m.Confidence,
				Span:       listing.Span{Start: toks[i].Start, End: toks[i+w-1].End},
			})
			i += w
			matched = true
			break
		}
		if !matched {
			i++
		}
	}
	return mentions
}

// declaredBrandBoost is added to the winning mention's confidence when the
// seller-declared brand is confirmed by a text match, capped at 1.0.
const declaredBrandBoost = 0.1

// Best picks the winning mention for scoring: highest confidence, with the
// seller-declared brand breaking ties, then the earliest span.  A winner that
// confirms the declared brand gets a confidence boost, since declared and
// detected brand agreeing is itself a signal.  Returns nil when mentions is
// empty.
func Best(mentions []listing.BrandMention, declaredBrand string) *listing.BrandMention {
	if len(mentions) == 0 {
		return nil
	}
	declared := Normalize(declaredBrand)

	best := 0
	for i := 1; i < len(mentions); i++ {
		if better(mentions[i], mentions[best], declared) {
			best = i
		}
	}
	m := mentions[best]
	if declared != "" && Normalize(m.Brand) == declared {
		m.Confidence += declaredBrandBoost
		if m.Confidence > 1.0 {
			m.Confidence = 1.0
		}
	}
	return &m
}

func better(a, b listing.BrandMention, declared string) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if declared != "" {
		aDecl := Normalize(a.Brand) == declared
		bDecl := Normalize(b.Brand) == declared
		if aDecl != bDecl {
			return aDecl
		}
	}
	return a.Span.Start < b.Span.Start
}

func joinWindow(toks []Token) string {
	if len(toks) == 1 {
		return toks[0].Text
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

//Personal.AI order the ending
