package diff

import (
	"fmt"
	"sync"
	"time"

	"github.com/tyngw/mdtable-diff/internal/types"
)

// DefaultCacheTTL bounds how long a parsed diff is reused across a burst of
// refreshes before the diff source is consulted again.
const DefaultCacheTTL = 5 * time.Second

// Cache is a small TTL cache for parsed line changes, keyed by file identity
// and table line range. It exists purely to avoid redundant diff-source calls;
// entries expire passively after the TTL or are dropped explicitly on
// file-change notification. The clock is injected so tests control time.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	changes  []types.LineChange
	storedAt time.Time
}

// NewCache returns a cache with the given TTL. A zero or negative ttl falls
// back to DefaultCacheTTL; a nil now falls back to time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// CacheKey builds the cache key for one table of one file.
func CacheKey(filePath string, startLine, endLine int) string {
	return fmt.Sprintf("%s:%d-%d", filePath, startLine, endLine)
}

// Get returns the cached changes for key, or false when absent or expired.
func (c *Cache) Get(key string) ([]types.LineChange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.changes, true
}

// Put stores changes for key, stamped with the current time.
func (c *Cache) Put(key string, changes []types.LineChange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{changes: changes, storedAt: c.now()}
}

// Invalidate drops the entry for key, if any.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateFile drops every entry belonging to filePath, used on file-change
// notification.
func (c *Cache) InvalidateFile(filePath string) {
	prefix := filePath + ":"
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}
