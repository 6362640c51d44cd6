package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type queryKey string

func newPackageCache() *InMemoryCacheManager[queryKey, []string] {
	return NewInMemoryCacheManager[queryKey, []string]("registry-search", DefaultExpiration, DefaultCleanupInterval)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := newPackageCache()

	got, ok := cache.Get(context.Background(), "lodash")
	require.False(t, ok)
	require.Nil(t, got)
}

func TestInMemoryCacheManager_SetThenGet(t *testing.T) {
	cache := newPackageCache()
	cache.Set(context.Background(), "lodash", []string{"lodash", "lodash.merge"}, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "lodash")
	require.True(t, ok)
	require.Equal(t, []string{"lodash", "lodash.merge"}, got)
}

func TestInMemoryCacheManager_WrongTypeIsMiss(t *testing.T) {
	cache := newPackageCache()
	cache.cache.Set("lodash", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "lodash")
	require.False(t, ok)
	require.Nil(t, got)
}

func TestInMemoryCacheManager_Expires(t *testing.T) {
	cache := newPackageCache()
	cache.Set(context.Background(), "react", []string{"react"}, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "react")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := newPackageCache()

	_, ok := cache.GetWithRefresh(context.Background(), "vue", time.Hour)
	require.False(t, ok)

	cache.Set(context.Background(), "vue", []string{"vue"}, DefaultExpiration)
	got, ok := cache.GetWithRefresh(context.Background(), "vue", time.Hour)
	require.True(t, ok)
	require.Equal(t, []string{"vue"}, got)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := newPackageCache()
	ctx := context.Background()
	cache.Set(ctx, "a", []string{"a"}, DefaultExpiration)
	cache.Set(ctx, "b", []string{"b"}, DefaultExpiration)

	require.NoError(t, cache.Delete(ctx))
	require.NoError(t, cache.Delete(ctx, "a"))
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	_, ok = cache.Get(ctx, "b")
	require.True(t, ok)

	require.NoError(t, cache.Flush(ctx))
	_, ok = cache.Get(ctx, "b")
	require.False(t, ok)
}
