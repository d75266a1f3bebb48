package shortcut

import "sync"

// Cache owns an Index that is built lazily from a candidate source and
// rebuilt after Invalidate. It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	build func() []string
	idx   *Index
}

// NewCache returns a cache whose index is built from the candidates build
// returns at the time of the next EnsureBuilt.
func NewCache(build func() []string) *Cache {
	return &Cache{build: build}
}

// EnsureBuilt returns the current index, building it if needed.
func (c *Cache) EnsureBuilt() *Index {
	c.mu.RLock()
	idx := c.idx
	c.mu.RUnlock()
	if idx != nil {
		return idx
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idx == nil {
		c.idx = New(c.build())
	}
	return c.idx
}

// Invalidate discards the index. The next EnsureBuilt rebuilds it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = nil
}

// Built reports whether an index is currently cached.
func (c *Cache) Built() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.idx != nil
}
