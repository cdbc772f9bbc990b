package universe

import (
	"fmt"

	"eve-seeker/internal/logger"
)

// Store is the persistence backend for the security cache.
// LoadAll must tolerate a missing or malformed store by returning whatever it
// could read; the cache starts cold in that case rather than failing.
type Store interface {
	LoadAll() (map[int32]float64, error)
	SaveAll(map[int32]float64) error
}

// SecurityCache maps region IDs to a sampled security level.
// Entries are filled lazily, never evicted, and persisted via the Store.
type SecurityCache struct {
	store  Store
	levels map[int32]float64
}

// NewSecurityCache creates a cache pre-loaded from the store.
// A load failure is logged and leaves the cache empty.
func NewSecurityCache(store Store) *SecurityCache {
	c := &SecurityCache{
		store:  store,
		levels: make(map[int32]float64),
	}
	if store == nil {
		return c
	}
	levels, err := store.LoadAll()
	if err != nil {
		logger.Warn("Cache", fmt.Sprintf("Security cache load failed, starting empty: %v", err))
		return c
	}
	if levels != nil {
		c.levels = levels
	}
	return c
}

// Get returns the cached security level for a region.
func (c *SecurityCache) Get(regionID int32) (float64, bool) {
	level, ok := c.levels[regionID]
	return level, ok
}

// GetOrCompute returns the cached level, calling fill and caching its result
// on a miss. A fill that fails should return the -1 sentinel; that sentinel
// is cached too, matching the one-sample-per-region estimate semantics.
func (c *SecurityCache) GetOrCompute(regionID int32, fill func() float64) float64 {
	if level, ok := c.levels[regionID]; ok {
		return level
	}
	level := fill()
	c.levels[regionID] = level
	return level
}

// Len returns the number of cached regions.
func (c *SecurityCache) Len() int {
	return len(c.levels)
}

// Flush persists the full cache to the store.
func (c *SecurityCache) Flush() error {
	if c.store == nil {
		return nil
	}
	return c.store.SaveAll(c.levels)
}
