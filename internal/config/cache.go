package config

import "time"

// CacheConfig controls the Redis response cache used on the availability
// endpoint.  When Enabled is false or no Redis client is available the cache
// middleware passes requests straight through.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads cache settings from the environment.  The short
// default TTL keeps availability responses close to live while absorbing
// bursts of status polling.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 5*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}
