// Package scoring orchestrates listing analysis: brand-context caching, the
// single-listing pipeline, and the batch coordinator.
package scoring

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/types/common"
)

// ContextLoader fetches a brand's full context from the graph store.
type ContextLoader func(ctx context.Context, brandName string) (*brand.Context, error)

// ContextCache is the in-process LRU+TTL cache of brand contexts.  Concurrent
// misses for the same brand collapse into a single loader call.  When the
// loader fails with an unavailability error the cache degrades instead of
// failing the listing: an expired-but-resident entry is served with its Stale
// flag set, and with nothing resident at all an empty degraded context is
// served so the listing is still scored, at reduced completeness.
type ContextCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List // front = most recently used

	capacity int
	ttl      time.Duration
	clock    common.Clock
	loader   ContextLoader
	group    singleflight.Group
	logger   logging.Logger
}

type cacheEntry struct {
	key      string
	brandCtx *brand.Context
	storedAt time.Time
}

// NewContextCache builds a cache.  capacity bounds resident entries; ttl is
// the freshness window.  clock defaults to the system clock.
func NewContextCache(capacity int, ttl time.Duration, loader ContextLoader, clock common.Clock, logger logging.Logger) *ContextCache {
	if clock == nil {
		clock = common.SystemClock()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ContextCache{
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
		capacity: capacity,
		ttl:      ttl,
		clock:    clock,
		loader:   loader,
		logger:   logger.Named("context_cache"),
	}
}

// Get returns the context for brandName, loading it on a miss.  The returned
// context must be treated as read-only; it is shared across callers.
func (c *ContextCache) Get(ctx context.Context, brandName string) (*brand.Context, error) {
	if fresh, ok := c.lookupFresh(brandName); ok {
		return fresh, nil
	}

	v, err, _ := c.group.Do(brandName, func() (interface{}, error) {
		// Another flight may have filled the cache while this one queued.
		if fresh, ok := c.lookupFresh(brandName); ok {
			return fresh, nil
		}

		loaded, err := c.loader(ctx, brandName)
		if err != nil {
			if !errors.IsUnavailable(err) {
				return nil, err
			}
			if stale, ok := c.lookupStale(brandName); ok {
				c.logger.Warn("graph store unavailable, serving stale brand context",
					logging.String("brand", brandName),
					logging.Err(err),
				)
				return stale, nil
			}
			// Nothing resident for this brand: serve an empty degraded
			// context rather than fail the listing.  Not stored, so the next
			// miss retries the graph.
			c.logger.Warn("graph store unavailable with no cached context, serving empty degraded context",
				logging.String("brand", brandName),
				logging.Err(err),
			)
			empty := brand.EmptyContext(brandName, c.clock.Now())
			empty.Stale = true
			return empty, nil
		}

		c.store(brandName, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*brand.Context), nil
}

// Invalidate drops the entry for brandName, if resident.  Called when a
// graph-update event arrives for the brand.
func (c *ContextCache) Invalidate(brandName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[brandName]; ok {
		c.lru.Remove(elem)
		delete(c.entries, brandName)
	}
}

// Len returns the number of resident entries.
func (c *ContextCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *ContextCache) lookupFresh(key string) (*brand.Context, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)
	if c.clock.Now().Sub(entry.storedAt) >= c.ttl {
		return nil, false // expired entries stay resident for stale-serving
	}
	c.lru.MoveToFront(elem)
	return entry.brandCtx, true
}

// lookupStale returns an expired-but-resident entry, flagged stale, for
// degraded service while the graph store is down.
func (c *ContextCache) lookupStale(key string) (*brand.Context, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)

	stale := *entry.brandCtx
	stale.Stale = true
	return &stale, true
}

func (c *ContextCache) store(key string, bctx *brand.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).brandCtx = bctx
		elem.Value.(*cacheEntry).storedAt = c.clock.Now()
		c.lru.MoveToFront(elem)
		return
	}

	c.entries[key] = c.lru.PushFront(&cacheEntry{
		key:      key,
		brandCtx: bctx,
		storedAt: c.clock.Now(),
	})

	for c.capacity > 0 && c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

//Personal.AI order the ending
