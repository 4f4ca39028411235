package registrydata

import (
	"sync"
	"time"
)

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	value     string
	expiresAt time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (c *memoryCache) Get(key string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.mu.Lock()
		// re-check under write lock
		if e2, ok2 := c.entries[key]; ok2 {
			if !e2.expiresAt.IsZero() && c.now().After(e2.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *memoryCache) Set(key, value string, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = memEntry{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
	return nil
}
