package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"
)

// chartCacheEntry represents one cached chart response.
type chartCacheEntry struct {
	Response  *ChartResponse
	ExpiresAt time.Time
}

// ChartCache provides in-memory caching for charts API responses.
//
// This cache is for LOCAL DEVELOPMENT ONLY: it avoids hammering the public
// charts endpoint while iterating on data tooling. It is opt-in via
// ENABLE_CHART_CACHE=true and is disabled outright when API_ENV=production.
type ChartCache struct {
	mu    sync.RWMutex
	store map[string]*chartCacheEntry
	ttl   time.Duration
}

var (
	globalChartCache *ChartCache
	chartCacheOnce   sync.Once
)

// GetChartCache returns the global cache instance if caching is enabled,
// nil otherwise.
func GetChartCache() *ChartCache {
	if os.Getenv("ENABLE_CHART_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	chartCacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("CHART_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalChartCache = &ChartCache{
			store: make(map[string]*chartCacheEntry),
			ttl:   ttl,
		}

		go globalChartCache.cleanup()
	})

	return globalChartCache
}

// Get retrieves a cached response if present and not expired.
func (c *ChartCache) Get(key string) (*ChartResponse, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Response, true
}

// Set stores a response in the cache.
func (c *ChartCache) Set(key string, response *ChartResponse) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &chartCacheEntry{
		Response:  response,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ChartCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*chartCacheEntry)
}

// cleanup periodically removes expired entries.
func (c *ChartCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// GenerateChartCacheKey creates a deterministic cache key for a query.
func GenerateChartCacheKey(q ChartQuery) string {
	keyStr := fmt.Sprintf("%s:%s", q.Chart, q.Timespan)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
