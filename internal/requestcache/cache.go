// Package requestcache remembers recently seen request keys so duplicate
// submissions inside a short window can be flagged. The cache is advisory:
// it never blocks a request, it only reports whether an identical one was
// seen within the TTL.
package requestcache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is the duplicate-detection window when none is configured.
const DefaultTTL = 5 * time.Minute

// Cache tracks request keys with a fixed TTL. Safe for concurrent use.
type Cache struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	entries map[string]time.Time
}

// New returns a Cache with the given TTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]time.Time),
	}
}

// Seen records key and reports whether it was already recorded within the
// TTL. The key's window is refreshed on every call.
func (c *Cache) Seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	at, ok := c.entries[key]
	c.entries[key] = now
	return ok && now.Sub(at) < c.ttl
}

// Sweep drops entries older than the TTL and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, at := range c.entries {
		if now.Sub(at) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live entries, counting expired ones not yet
// swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeping sweeps at the given interval until ctx is done.
func (c *Cache) StartSweeping(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = c.ttl
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}
