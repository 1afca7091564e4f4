package memory

import (
	"time"

	"news-feed-client/internal/entity"

	"github.com/patrickmn/go-cache"
)

// FeedCache holds merged feed pages for the lifetime of the process.
// Retention is deliberately longer than the staleness threshold: stale
// entries stay resident so a failed refresh can still serve the last good
// page, and the janitor bounds total growth over a long-lived session.
type FeedCache struct {
	cache *cache.Cache
}

func NewFeedCache(retention time.Duration) *FeedCache {
	c := cache.New(retention, retention/2)
	return &FeedCache{cache: c}
}

func (r *FeedCache) Get(key string) (*entity.FeedPage, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*entity.FeedPage), true
	}
	return nil, false
}

func (r *FeedCache) Set(key string, page *entity.FeedPage) {
	r.cache.Set(key, page, cache.DefaultExpiration)
}

func (r *FeedCache) Flush() {
	r.cache.Flush()
}

func (r *FeedCache) Len() int {
	return r.cache.ItemCount()
}
