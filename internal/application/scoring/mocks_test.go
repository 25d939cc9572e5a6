package scoring

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/config"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// fakeClock is a manually advanced clock for TTL tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// mockGraphStore is an in-memory GraphStore.
type mockGraphStore struct {
	mu       sync.Mutex
	records  map[string]*brand.BrandRecord
	schemas  map[string]brand.AttributeSchema
	patterns map[string][]brand.CounterfeitPattern

	fetchErr error // returned by every Fetch* when set
	listErr  error

	fetchCalls int
	upserted   []brand.Variation
}

func newMockGraphStore() *mockGraphStore {
	return &mockGraphStore{
		records:  make(map[string]*brand.BrandRecord),
		schemas:  make(map[string]brand.AttributeSchema),
		patterns: make(map[string][]brand.CounterfeitPattern),
	}
}

func (m *mockGraphStore) addNike() {
	m.records["Nike"] = &brand.BrandRecord{
		Name:      "Nike",
		Regions:   []string{"US", "EU", "VN"},
		Baselines: map[string]float64{"shoes": 100},
		Variations: []brand.Variation{
			{Name: "nikey", Brand: "Nike", RiskWeight: 0.9},
		},
	}
	m.schemas["Nike"] = brand.AttributeSchema{
		"shoes": {"color": {"black", "white", "red"}},
	}
}

func (m *mockGraphStore) setFetchErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

func (m *mockGraphStore) FetchBrandRecord(_ context.Context, name string) (*brand.BrandRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	rec, ok := m.records[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeBrandNotFound, "brand not in graph")
	}
	cp := *rec
	return &cp, nil
}

func (m *mockGraphStore) FetchVariations(_ context.Context, name string) ([]brand.Variation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if rec, ok := m.records[name]; ok {
		return rec.Variations, nil
	}
	return nil, nil
}

func (m *mockGraphStore) FetchAttributeSchema(_ context.Context, name string) (brand.AttributeSchema, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.schemas[name], nil
}

func (m *mockGraphStore) FetchCounterfeitPatterns(_ context.Context, name string) ([]brand.CounterfeitPattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.patterns[name], nil
}

func (m *mockGraphStore) ListBrandNames(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	names := make([]string, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockGraphStore) UpsertVariation(_ context.Context, _ string, v brand.Variation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserted = append(m.upserted, v)
	return nil
}

func (m *mockGraphStore) UpsertPattern(_ context.Context, _ string, _ brand.CounterfeitPattern) error {
	return nil
}

func (m *mockGraphStore) upsertedVariations() []brand.Variation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]brand.Variation, len(m.upserted))
	copy(out, m.upserted)
	return out
}

// mockPublisher records published events.
type mockPublisher struct {
	mu      sync.Mutex
	scored  []*listing.ScoreResult
	updated []string
}

func (p *mockPublisher) PublishScored(_ context.Context, r *listing.ScoreResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scored = append(p.scored, r)
	return nil
}

func (p *mockPublisher) PublishGraphUpdated(_ context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = append(p.updated, name)
	return nil
}

func (p *mockPublisher) scoredCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.scored)
}

// testConfig returns a defaulted config suitable for tests.
func testServiceConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

//Personal.AI order the ending
