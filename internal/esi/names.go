package esi

import (
	"fmt"
)

// NameStore is a persistent L2 cache for resolved entity names.
type NameStore interface {
	GetName(id int32) (string, bool)
	SetName(id int32, name string)
}

// nameEntry mirrors one element of the /universe/names/ response.
type nameEntry struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Names resolves entity IDs (types, regions, systems, ...) to names.
// Resolution order per ID: L1 in-memory cache, L2 persistent store, then one
// batched POST /universe/names/ call for whatever is still missing.
// IDs that cannot be resolved map to a "ID <n>" placeholder.
func (c *Client) Names(ids []int32) map[int32]string {
	resolved := make(map[int32]string, len(ids))
	seen := make(map[int32]bool, len(ids))
	var missing []int32

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if v, ok := c.nameCache.Load(id); ok {
			resolved[id] = v.(string)
			continue
		}
		if c.nameStore != nil {
			if name, ok := c.nameStore.GetName(id); ok {
				c.nameCache.Store(id, name)
				resolved[id] = name
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		var entries []nameEntry
		url := c.base + "/universe/names/?datasource=tranquility"
		if err := c.PostJSON(url, missing, &entries); err == nil {
			for _, e := range entries {
				resolved[e.ID] = e.Name
				c.nameCache.Store(e.ID, e.Name)
				if c.nameStore != nil {
					c.nameStore.SetName(e.ID, e.Name)
				}
			}
			// IDs ESI does not know keep a placeholder in L1 only, so
			// repeated lookups don't re-post them.
			for _, id := range missing {
				if _, ok := resolved[id]; !ok {
					c.nameCache.Store(id, fmt.Sprintf("ID %d", id))
				}
			}
		}
	}

	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			resolved[id] = fmt.Sprintf("ID %d", id)
		}
	}
	return resolved
}

// Name resolves a single entity ID to a name.
func (c *Client) Name(id int32) string {
	return c.Names([]int32{id})[id]
}
