package cache

import (
	"context"
	"strings"
	"time"

	"github.com/claimsdesk/claims-service/internal/config"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is used when claims.status_cache_ttl is unset
const DefaultExpiration = 30 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 1 * time.Hour

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache *goCache.Cache
}

// NewInMemoryCache creates a process-local cache. Entries expire after
// claims.status_cache_ttl.
func NewInMemoryCache(cfg *config.Configuration) Cache {
	expiration := DefaultExpiration
	if cfg != nil && cfg.Claims.StatusCacheTTL > 0 {
		expiration = cfg.Claims.StatusCacheTTL
	}
	return &InMemoryCache{
		cache: goCache.New(expiration, DefaultCleanupInterval),
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration == 0 {
		expiration = goCache.DefaultExpiration
	}
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

// DeleteByPrefix removes all keys with the given prefix
func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}
