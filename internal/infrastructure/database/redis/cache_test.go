package redis

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_SetGet(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewRedisCache(client, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "p", payload{Name: "nike", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, cache.Get(ctx, "p", &got))
	assert.Equal(t, "nike", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestCache_GetMiss(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewRedisCache(client, logging.NewNopLogger())

	var got payload
	err := cache.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_GetOrSet_LoadsOnce(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewRedisCache(client, logging.NewNopLogger())
	ctx := context.Background()

	var calls atomic.Int32
	loader := func(ctx context.Context) (interface{}, error) {
		calls.Add(1)
		return payload{Name: "loaded"}, nil
	}

	var first, second payload
	require.NoError(t, cache.GetOrSet(ctx, "k", &first, time.Minute, loader))
	require.NoError(t, cache.GetOrSet(ctx, "k", &second, time.Minute, loader))

	assert.Equal(t, "loaded", first.Name)
	assert.Equal(t, "loaded", second.Name)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_GetOrSet_LoaderError(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewRedisCache(client, logging.NewNopLogger())

	boom := errors.New(errors.ErrCodeGraphUnavailable, "graph down")
	var got payload
	err := cache.GetOrSet(context.Background(), "k", &got, time.Minute, func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCacheLoaderFailed))
	// The graph error stays reachable through the chain.
	assert.True(t, errors.IsUnavailable(err))
}

func TestCache_GetOrSet_NegativeCache(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewRedisCache(client, logging.NewNopLogger())
	ctx := context.Background()

	var calls atomic.Int32
	loader := func(ctx context.Context) (interface{}, error) {
		calls.Add(1)
		return nil, nil
	}

	var got payload
	err := cache.GetOrSet(ctx, "unknown", &got, time.Minute, loader)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, int32(1), calls.Load())

	// The sentinel absorbs the second lookup without invoking the loader.
	err = cache.GetOrSet(ctx, "unknown", &got, time.Minute, loader)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, int32(1), calls.Load())

	// Once the sentinel expires the loader runs again.
	mr.FastForward(time.Minute)
	err = cache.GetOrSet(ctx, "unknown", &got, time.Minute, loader)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_Delete(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewRedisCache(client, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", payload{Name: "a"}, time.Minute))
	require.NoError(t, cache.Delete(ctx, "a"))

	var got payload
	assert.ErrorIs(t, cache.Get(ctx, "a", &got), ErrCacheMiss)
}

func TestCache_DeleteByPrefix(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewRedisCache(client, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "graph:record:Nike", payload{Name: "nike"}, time.Minute))
	require.NoError(t, cache.Set(ctx, "graph:record:Adidas", payload{Name: "adidas"}, time.Minute))
	require.NoError(t, cache.Set(ctx, "other:key", payload{Name: "keep"}, time.Minute))

	deleted, err := cache.DeleteByPrefix(ctx, "graph:record:")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var got payload
	assert.NoError(t, cache.Get(ctx, "other:key", &got))
}

//Personal.AI order the ending
