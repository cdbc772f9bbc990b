package esi

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// orderCacheEntry holds cached region orders together with their expiry.
type orderCacheEntry struct {
	orders  []MarketOrder
	expires time.Time // parsed Expires header
}

// orderCache is a thread-safe in-memory cache for region market orders.
// A singleflight.Group prevents duplicate in-flight fetches for the same region.
type orderCache struct {
	mu      sync.RWMutex
	entries map[int32]*orderCacheEntry
	group   singleflight.Group
}

func newOrderCache() *orderCache {
	return &orderCache{
		entries: make(map[int32]*orderCacheEntry),
	}
}

// get returns cached orders if they exist and have not expired.
func (oc *orderCache) get(regionID int32) ([]MarketOrder, bool) {
	oc.mu.RLock()
	defer oc.mu.RUnlock()

	e, ok := oc.entries[regionID]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.orders, true
}

// put stores orders in the cache with the given expiry.
func (oc *orderCache) put(regionID int32, orders []MarketOrder, expires time.Time) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.entries[regionID] = &orderCacheEntry{
		orders:  orders,
		expires: expires,
	}
}

// parseExpires reads the Expires header from an ESI response.
// Falls back to 5-minute TTL if header is missing or unparseable.
func parseExpires(resp *http.Response) time.Time {
	if exp := resp.Header.Get("Expires"); exp != "" {
		if t, err := time.Parse(time.RFC1123, exp); err == nil {
			return t
		}
	}
	// ESI market orders typically refresh every 5 minutes.
	return time.Now().Add(5 * time.Minute)
}
