package brandmatch

import (
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
)

// entry is one indexed name: a canonical brand or a registered variation,
// keyed by its normalized form.
type entry struct {
	key       string // normalized name
	brand     string // canonical brand name
	matchType listing.MatchType
}

// bucketKey groups fuzzy candidates by first rune and rune-length band so a
// lookup scans a small candidate slice instead of the whole corpus.
type bucketKey struct {
	first  rune
	length int
}

// snapshot is one immutable generation of the index.  Readers hold a single
// generation for the duration of a lookup; rebuilds publish a new generation
// with an atomic pointer swap and never mutate a published one.
type snapshot struct {
	exact   map[string]entry
	buckets map[bucketKey][]entry
	builtAt time.Time
	brands  int
	entries int
}

// Index resolves normalized candidate strings to brands.  Safe for
// concurrent use; lookups are lock-free.
type Index struct {
	current atomic.Pointer[snapshot]
	floor   float64
	logger  logging.Logger
}

// Match is a successful index lookup.
type Match struct {
	Brand      string
	Type       listing.MatchType
	Confidence float64
}

// NewIndex creates an empty, not-yet-ready index.  floor is the minimum
// similarity ratio for fuzzy matches, in [0,1].
func NewIndex(floor float64, logger logging.Logger) *Index {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Index{floor: floor, logger: logger.Named("variation_index")}
}

// Ready reports whether at least one rebuild has been published.
func (ix *Index) Ready() bool {
	return ix.current.Load() != nil
}

// BuiltAt returns the publish time of the current generation, zero when the
// index has never been built.
func (ix *Index) BuiltAt() time.Time {
	s := ix.current.Load()
	if s == nil {
		return time.Time{}
	}
	return s.builtAt
}

// Stats describes the current index generation.
type Stats struct {
	Ready   bool      `json:"ready"`
	Brands  int       `json:"brands"`
	Entries int       `json:"entries"`
	BuiltAt time.Time `json:"built_at"`
}

// Stats returns counters for the current generation, all zero before the
// first rebuild.
func (ix *Index) Stats() Stats {
	s := ix.current.Load()
	if s == nil {
		return Stats{}
	}
	return Stats{Ready: true, Brands: s.brands, Entries: s.entries, BuiltAt: s.builtAt}
}

// Rebuild constructs a fresh generation from the full brand corpus and
// atomically swaps it in.  In-flight lookups keep reading the previous
// generation until they finish.
func (ix *Index) Rebuild(records []brand.BrandRecord, now time.Time) {
	s := &snapshot{
		exact:   make(map[string]entry),
		buckets: make(map[bucketKey][]entry),
		builtAt: now,
		brands:  len(records),
	}

	for _, rec := range records {
		s.add(entry{key: Normalize(rec.Name), brand: rec.Name, matchType: listing.MatchExact})
		for _, v := range rec.Variations {
			s.add(entry{key: Normalize(v.Name), brand: rec.Name, matchType: listing.MatchVariation})
		}
	}

	ix.current.Store(s)
	ix.logger.Info("variation index rebuilt",
		logging.Int("brands", s.brands),
		logging.Int("entries", s.entries),
	)
}

func (s *snapshot) add(e entry) {
	if e.key == "" {
		return
	}
	// First writer wins: canonical names are inserted before variations, so
	// a variation colliding with a canonical name never downgrades it.
	if _, exists := s.exact[e.key]; exists {
		return
	}
	s.exact[e.key] = e
	s.entries++

	first, _ := utf8.DecodeRuneInString(e.key)
	bk := bucketKey{first: first, length: utf8.RuneCountInString(e.key)}
	s.buckets[bk] = append(s.buckets[bk], e)
}

// LookupExact resolves one normalized candidate against registered names
// only, skipping the fuzzy pass.
func (ix *Index) LookupExact(candidate string) (Match, bool) {
	s := ix.current.Load()
	if s == nil || candidate == "" {
		return Match{}, false
	}
	if e, ok := s.exact[candidate]; ok {
		return Match{Brand: e.brand, Type: e.matchType, Confidence: 1.0}, true
	}
	return Match{}, false
}

// Lookup resolves one normalized candidate.  Exact and variation hits return
// confidence 1.0; fuzzy hits return the similarity ratio.  Returns false when
// the index is not ready or nothing clears the floor.
func (ix *Index) Lookup(candidate string) (Match, bool) {
	s := ix.current.Load()
	if s == nil || candidate == "" {
		return Match{}, false
	}

	if e, ok := s.exact[candidate]; ok {
		return Match{Brand: e.brand, Type: e.matchType, Confidence: 1.0}, true
	}

	// Fuzzy pass: candidates sharing the first rune, rune length within the
	// edit allowance implied by the floor.
	candLen := utf8.RuneCountInString(candidate)
	if candLen < 3 {
		// Too short to fuzzy-match meaningfully.
		return Match{}, false
	}
	first, _ := utf8.DecodeRuneInString(candidate)

	best := Match{}
	found := false
	maxDelta := maxEditAllowance(candLen, ix.floor)
	for l := candLen - maxDelta; l <= candLen+maxDelta; l++ {
		if l < 1 {
			continue
		}
		for _, e := range s.buckets[bucketKey{first: first, length: l}] {
			sim := similarity(candidate, e.key)
			if sim < ix.floor {
				continue
			}
			if !found || sim > best.Confidence {
				best = Match{Brand: e.brand, Type: listing.MatchFuzzy, Confidence: sim}
				found = true
			}
		}
	}
	return best, found
}

// maxEditAllowance is the largest edit distance a pair can have and still
// reach the floor, given the candidate length.
func maxEditAllowance(candLen int, floor float64) int {
	return int(float64(candLen) * (1 - floor) / floor)
}

// similarity is 1 - levenshtein/maxLen, the normalized edit similarity.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes edit distance with the two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

//Personal.AI order the ending
