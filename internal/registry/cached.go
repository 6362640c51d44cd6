package registry

import (
	"context"
	"strings"
	"time"

	"github.com/zjrosen/favnpm/internal/cachemanager"
)

// Cached memoizes successful lookups for ttl within one session.
type Cached struct {
	rt  *cachemanager.ReadThroughCache[string, []Package, string]
	ttl time.Duration
}

var _ Searcher = (*Cached)(nil)

// NewCached wraps next with cache. A zero ttl bypasses the cache entirely.
func NewCached(next Searcher, cache cachemanager.CacheManager[string, []Package], ttl time.Duration) *Cached {
	return &Cached{
		rt:  cachemanager.NewReadThroughCache[string, []Package, string](cache, next.Search, ttl <= 0),
		ttl: ttl,
	}
}

// Search implements Searcher.
func (c *Cached) Search(ctx context.Context, query string) ([]Package, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return c.rt.Get(ctx, strings.ToLower(query), query, c.ttl)
}
