package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// VendorCache caches extracted vendor-name lists per tenant and line item.
// A miss or a backend error is reported as a miss; callers fall through to
// a direct lookup.
type VendorCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, vendors []string)
}

// memoryCache is the default in-process TTL cache
type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-process vendor cache with the given TTL
func NewMemoryCache(ttl time.Duration) VendorCache {
	return &memoryCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]string, bool) {
	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	vendors, ok := value.([]string)
	return vendors, ok
}

func (c *memoryCache) Set(_ context.Context, key string, vendors []string) {
	c.store.SetDefault(key, vendors)
}

// redisCache shares vendor lookups across replicas. Values are JSON-encoded
// string lists.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed vendor cache
func NewRedisCache(client *redis.Client, ttl time.Duration) VendorCache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]string, bool) {
	data, err := c.client.Get(ctx, "vendors:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	var vendors []string
	if err := json.Unmarshal(data, &vendors); err != nil {
		return nil, false
	}
	return vendors, true
}

func (c *redisCache) Set(ctx context.Context, key string, vendors []string) {
	data, err := json.Marshal(vendors)
	if err != nil {
		return
	}
	// Best effort: a failed write only costs a future cache miss
	c.client.Set(ctx, "vendors:"+key, data, c.ttl)
}
