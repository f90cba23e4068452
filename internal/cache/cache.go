// Package cache implements the optional read-through entity cache that
// fronts single-entity lookups.  Values are stored as JSON under
// "<prefix>:<kind>:<id>".  Writes refresh the corresponding entry and
// deletes invalidate it.  Every method tolerates a missing Redis
// client, so the cache is never required for correctness.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/shareit/internal/config"
)

// Cache is a JSON entity cache over Redis.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// New builds a Cache from the given config and client.  When caching is
// disabled or the client is nil, the returned cache treats every read
// as a miss and every write as a no-op.
func New(cfg config.CacheConfig, rdb *redis.Client) *Cache {
	if !cfg.Enabled {
		rdb = nil
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "shareit"
	}
	return &Cache{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (c *Cache) key(kind string, id uint64) string {
	return fmt.Sprintf("%s:%s:%d", c.prefix, kind, id)
}

// Get loads a cached entity into dest.  It reports false on a miss, a
// decode failure or when the cache is disabled.
func (c *Cache) Get(ctx context.Context, kind string, id uint64, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, c.key(kind, id)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Set stores an entity under its kind and id.  Failures are swallowed:
// a broken cache must never fail the request that tried to refresh it.
func (c *Cache) Set(ctx context.Context, kind string, id uint64, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(kind, id), data, c.ttl).Err()
}

// Invalidate drops the cached entry for an entity, if any.
func (c *Cache) Invalidate(ctx context.Context, kind string, id uint64) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.key(kind, id)).Err()
}
