package assistant

import "sync"

// MemoryCache is a process-local prompt cache guarded by a mutex. Keys
// are literal request strings: byte-different requests miss even when
// semantically identical. Entries are never persisted or evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]any
}

// NewMemoryCache builds an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]map[string]any)}
}

// Get returns the cached parse for an exact prompt string.
func (c *MemoryCache) Get(prompt string) (map[string]any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parsed, ok := c.entries[prompt]
	return parsed, ok
}

// Put stores a parsed response under the exact prompt string.
func (c *MemoryCache) Put(prompt string, parsed map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[prompt] = parsed
}

// Len reports the number of cached prompts.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// NopCache never hits and never stores; use it to disable caching.
type NopCache struct{}

// Get always misses.
func (NopCache) Get(string) (map[string]any, bool) { return nil, false }

// Put discards the entry.
func (NopCache) Put(string, map[string]any) {}
