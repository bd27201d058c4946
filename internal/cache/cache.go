package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// LocationsKey caches the distinct-location list that feeds the filter UI.
const LocationsKey = "contracts:locations"

// Cache is a TTL-bounded read-through cache over Redis. A nil *Cache is
// valid and disables caching, so callers never branch on configuration.
type Cache struct {
	Rdb *redis.Client
	TTL time.Duration
}

// New returns a cache over the Redis at url, or nil when url is empty or
// unreachable at parse time.
func New(url string, ttl time.Duration) *Cache {
	if url == "" {
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, cache disabled")
		return nil
	}
	return &Cache{Rdb: redis.NewClient(opts), TTL: ttl}
}

// GetJSON loads key into dest; returns false on miss, error or nil cache.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.Rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON stores v under key for the cache TTL. Failures are logged, not
// returned: the cache is never allowed to fail a request.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Rdb.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Invalidate drops the given keys after a mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.Rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("cache invalidate failed")
	}
}
