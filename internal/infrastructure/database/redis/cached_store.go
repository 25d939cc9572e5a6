package redis

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

const (
	recordKeyPrefix     = "graph:record:"
	variationsKeyPrefix = "graph:variations:"
	schemaKeyPrefix     = "graph:schema:"
	patternsKeyPrefix   = "graph:patterns:"
)

// CachedGraphStore decorates a brand.GraphStore with a shared Redis layer so
// replicas do not each pay the graph round-trip for hot brands. Reads are
// cached per brand and facet; writes pass through and invalidate the facet
// they touched. When Redis itself is down reads bypass the cache entirely.
// Records and variations live under the longer variation TTL; attribute
// schemas and counterfeit patterns churn faster and get the shorter one.
type CachedGraphStore struct {
	inner        brand.GraphStore
	cache        Cache
	variationTTL time.Duration
	attributeTTL time.Duration
	logger       logging.Logger
}

// NewCachedGraphStore wraps inner with a Redis read-through cache.
func NewCachedGraphStore(inner brand.GraphStore, cache Cache, variationTTL, attributeTTL time.Duration, log logging.Logger) *CachedGraphStore {
	if variationTTL <= 0 {
		variationTTL = 15 * time.Minute
	}
	if attributeTTL <= 0 {
		attributeTTL = 5 * time.Minute
	}
	return &CachedGraphStore{
		inner:        inner,
		cache:        cache,
		variationTTL: variationTTL,
		attributeTTL: attributeTTL,
		logger:       log,
	}
}

// resolve classifies a GetOrSet failure: loader failures surface the
// underlying graph error, anything else means the cache layer itself broke
// and the caller should go straight to the graph.
func (s *CachedGraphStore) resolve(err error) (graphErr error, bypass bool) {
	if errors.IsCode(err, errors.ErrCodeCacheLoaderFailed) {
		if inner := stderrors.Unwrap(err); inner != nil {
			return inner, false
		}
		return err, false
	}
	s.logger.Warn("brand cache unavailable, reading graph directly", logging.Err(err))
	return nil, true
}

func (s *CachedGraphStore) FetchBrandRecord(ctx context.Context, name string) (*brand.BrandRecord, error) {
	var record brand.BrandRecord
	err := s.cache.GetOrSet(ctx, recordKeyPrefix+name, &record, s.variationTTL, func(ctx context.Context) (interface{}, error) {
		return s.inner.FetchBrandRecord(ctx, name)
	})
	if err != nil {
		graphErr, bypass := s.resolve(err)
		if bypass {
			return s.inner.FetchBrandRecord(ctx, name)
		}
		return nil, graphErr
	}
	return &record, nil
}

func (s *CachedGraphStore) FetchVariations(ctx context.Context, brandName string) ([]brand.Variation, error) {
	var variations []brand.Variation
	err := s.cache.GetOrSet(ctx, variationsKeyPrefix+brandName, &variations, s.variationTTL, func(ctx context.Context) (interface{}, error) {
		vs, err := s.inner.FetchVariations(ctx, brandName)
		if err != nil {
			return nil, err
		}
		// An empty slice is a valid answer; keep it distinguishable from a
		// nil loader result so it is cached positively.
		if vs == nil {
			vs = []brand.Variation{}
		}
		return vs, nil
	})
	if err != nil {
		graphErr, bypass := s.resolve(err)
		if bypass {
			return s.inner.FetchVariations(ctx, brandName)
		}
		return nil, graphErr
	}
	return variations, nil
}

func (s *CachedGraphStore) FetchAttributeSchema(ctx context.Context, brandName string) (brand.AttributeSchema, error) {
	var schema brand.AttributeSchema
	err := s.cache.GetOrSet(ctx, schemaKeyPrefix+brandName, &schema, s.attributeTTL, func(ctx context.Context) (interface{}, error) {
		sc, err := s.inner.FetchAttributeSchema(ctx, brandName)
		if err != nil {
			return nil, err
		}
		if sc == nil {
			sc = make(brand.AttributeSchema)
		}
		return sc, nil
	})
	if err != nil {
		graphErr, bypass := s.resolve(err)
		if bypass {
			return s.inner.FetchAttributeSchema(ctx, brandName)
		}
		return nil, graphErr
	}
	return schema, nil
}

func (s *CachedGraphStore) FetchCounterfeitPatterns(ctx context.Context, brandName string) ([]brand.CounterfeitPattern, error) {
	var patterns []brand.CounterfeitPattern
	err := s.cache.GetOrSet(ctx, patternsKeyPrefix+brandName, &patterns, s.attributeTTL, func(ctx context.Context) (interface{}, error) {
		ps, err := s.inner.FetchCounterfeitPatterns(ctx, brandName)
		if err != nil {
			return nil, err
		}
		if ps == nil {
			ps = []brand.CounterfeitPattern{}
		}
		return ps, nil
	})
	if err != nil {
		graphErr, bypass := s.resolve(err)
		if bypass {
			return s.inner.FetchCounterfeitPatterns(ctx, brandName)
		}
		return nil, graphErr
	}
	return patterns, nil
}

// ListBrandNames is used by index rebuilds, which want the graph's current
// view rather than a cached one.
func (s *CachedGraphStore) ListBrandNames(ctx context.Context) ([]string, error) {
	return s.inner.ListBrandNames(ctx)
}

func (s *CachedGraphStore) UpsertVariation(ctx context.Context, brandName string, v brand.Variation) error {
	if err := s.inner.UpsertVariation(ctx, brandName, v); err != nil {
		return err
	}
	s.invalidate(ctx, variationsKeyPrefix+brandName)
	return nil
}

func (s *CachedGraphStore) UpsertPattern(ctx context.Context, brandName string, p brand.CounterfeitPattern) error {
	if err := s.inner.UpsertPattern(ctx, brandName, p); err != nil {
		return err
	}
	s.invalidate(ctx, patternsKeyPrefix+brandName)
	return nil
}

// InvalidateBrand drops every cached facet for a brand. Event consumers call
// this when a graph-updated event arrives from another replica.
func (s *CachedGraphStore) InvalidateBrand(ctx context.Context, brandName string) {
	s.invalidate(ctx,
		recordKeyPrefix+brandName,
		variationsKeyPrefix+brandName,
		schemaKeyPrefix+brandName,
		patternsKeyPrefix+brandName,
	)
}

func (s *CachedGraphStore) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("failed to invalidate cached brand data", logging.Err(err))
	}
}

//Personal.AI order the ending
