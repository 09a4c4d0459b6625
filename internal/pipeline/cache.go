package pipeline

import (
	"fmt"
	"sync"

	"github.com/fundex/despesas/internal/model"
)

// CacheKey identifies one version of a ledger file on disk.
type CacheKey struct {
	Path    string // absolute
	MtimeNs int64
	Size    int64
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s@%d:%d", k.Path, k.MtimeNs, k.Size)
}

// Cache holds parsed tables keyed by file version. It is safe for
// concurrent use. Tables are immutable, so entries are shared without
// copying.
type Cache struct {
	mu      sync.RWMutex
	entries map[CacheKey]*model.Table
	closed  bool
}

// NewCache returns an empty, open cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[CacheKey]*model.Table)}
}

// Get returns the table stored for key.
func (c *Cache) Get(key CacheKey) (*model.Table, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.entries[key]
	return t, ok
}

// Put stores t under key and evicts older versions of the same path.
// It returns the number of evicted entries. Put on a closed cache is a no-op.
func (c *Cache) Put(key CacheKey, t *model.Table) int {
	if c == nil || t == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0
	}

	evicted := 0
	for k := range c.entries {
		if k.Path == key.Path && k != key {
			delete(c.entries, k)
			evicted++
		}
	}
	c.entries[key] = t
	return evicted
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry. The cache stays usable.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Close drops every entry and disables further Puts.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.closed = true
	return nil
}
