package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdapd/internal/lookup/cache"
	"rdapd/internal/lookup/store"
	"rdapd/pkg/platform/sentinel"
	"rdapd/pkg/requestcontext"
)

func at(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func TestInMemoryCacheRoundTrip(t *testing.T) {
	c := cache.NewInMemoryCache(time.Minute)
	sample := store.SampleDomains()[0]
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.Set(at(now), "CNNIC.cn", sample))

	got, err := c.Get(at(now.Add(30*time.Second)), "cnnic.CN")
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestInMemoryCacheExpiresAfterTTL(t *testing.T) {
	c := cache.NewInMemoryCache(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Set(at(now), "cnnic.cn", store.SampleDomains()[0]))

	_, err := c.Get(at(now.Add(time.Minute)), "cnnic.cn")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryCacheMiss(t *testing.T) {
	c := cache.NewInMemoryCache(time.Minute)
	_, err := c.Get(context.Background(), "absent.cn")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryCacheIsolatesCallers(t *testing.T) {
	c := cache.NewInMemoryCache(time.Minute)
	ctx := context.Background()
	sample := store.SampleDomains()[0]
	require.NoError(t, c.Set(ctx, "cnnic.cn", sample))

	sample.Lang = "mutated"
	first, err := c.Get(ctx, "cnnic.cn")
	require.NoError(t, err)
	assert.Equal(t, "zh", first.Lang)

	first.Links = nil
	second, err := c.Get(ctx, "cnnic.cn")
	require.NoError(t, err)
	assert.NotNil(t, second.Links)
}

func TestInMemoryCacheInvalidate(t *testing.T) {
	c := cache.NewInMemoryCache(time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "cnnic.cn", store.SampleDomains()[0]))
	require.NoError(t, c.Invalidate(ctx, "CNNIC.CN"))

	_, err := c.Get(ctx, "cnnic.cn")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInvalidateDomainsEvictsRewrittenRecords(t *testing.T) {
	c := cache.NewInMemoryCache(time.Minute)
	ctx := context.Background()
	samples := store.SampleDomains()
	for _, d := range samples {
		require.NoError(t, c.Set(ctx, d.LdhName, d))
	}
	require.NoError(t, c.Set(ctx, "untouched.cn", samples[0]))

	require.NoError(t, cache.InvalidateDomains(ctx, c, append(samples, nil)))

	for _, d := range samples {
		_, err := c.Get(ctx, d.LdhName)
		assert.ErrorIs(t, err, sentinel.ErrNotFound, d.LdhName)
	}
	_, err := c.Get(ctx, "untouched.cn")
	assert.NoError(t, err)
}

func TestInMemoryCacheIgnoresNil(t *testing.T) {
	c := cache.NewInMemoryCache(time.Minute)
	require.NoError(t, c.Set(context.Background(), "cnnic.cn", nil))

	_, err := c.Get(context.Background(), "cnnic.cn")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
