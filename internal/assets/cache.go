package assets

import "sync"

// CacheStats counts how requests were served.
type CacheStats struct {
	Hits   int // served from a stored entry
	Shared int // joined a fetch already in flight
	Misses int // started a fetch
}

type inflight struct {
	done chan struct{}
	data []byte
	err  error
}

// Cache keeps fetched bytes keyed by the requested path, query string included,
// and collapses concurrent requests for the same key into one fetch.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	pending map[string]*inflight
	stats   CacheStats
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string][]byte),
		pending: make(map[string]*inflight),
	}
}

// Do returns the entry for key, running fetch at most once among concurrent callers.
// Errors are handed to every waiter but never stored.
func (c *Cache) Do(key string, fetch func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	if data, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.mu.Unlock()
		return data, nil
	}
	if call, ok := c.pending[key]; ok {
		c.stats.Shared++
		c.mu.Unlock()
		<-call.done
		return call.data, call.err
	}
	call := &inflight{done: make(chan struct{})}
	c.pending[key] = call
	c.stats.Misses++
	c.mu.Unlock()

	call.data, call.err = fetch()

	c.mu.Lock()
	delete(c.pending, key)
	if call.err == nil {
		c.entries[key] = call.data
	}
	c.mu.Unlock()
	close(call.done)
	return call.data, call.err
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
