package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Per-resource staleness windows. Entries older than the window are
// treated as absent and refetched on the next read.
const (
	gamesTTL        = 5 * time.Minute
	productsTTL     = 2 * time.Minute
	membersTTL      = 2 * time.Minute
	rechargesTTL    = 2 * time.Minute
	transactionsTTL = 2 * time.Minute
)

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// Cache is an in-process TTL cache keyed by resource path. Values are
// stored as JSON so callers get independent copies on every read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get unmarshals the cached value for key into dest. It reports false
// when the key is absent or its window has elapsed.
func (c *Cache) Get(key string, dest any) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return false
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false
	}
	return true
}

func (c *Cache) Set(key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{payload: payload, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate drops the entry for key. Invalidating an absent key is a
// no-op, so repeated invalidations are safe.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

// InvalidateResource drops the collection entry and every per-id entry
// under the resource prefix.
func (c *Cache) InvalidateResource(resource string) {
	prefix := resource + "/"
	c.mu.Lock()
	delete(c.entries, resource)
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func itemKey(resource string, id int64) string {
	return fmt.Sprintf("%s/%d", resource, id)
}
