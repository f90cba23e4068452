package config

import "time"

// CacheConfig defines settings for the read-through entity cache that
// sits in front of single-entity lookups.  When Enabled is false or no
// Redis client is available, services fall back to querying the store
// directly; the cache is never required for correctness.
type CacheConfig struct {
	Enabled bool          // toggle for the entity cache
	TTL     time.Duration // lifetime of a cached entity
	Prefix  string        // key namespace, e.g. "shareit"
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "5m")),
		Prefix:  getenv("CACHE_PREFIX", "shareit"),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
