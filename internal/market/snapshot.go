package market

import (
	"sort"
)

// Order is one condensed market lot: a price and the volume remaining at it.
type Order struct {
	Price  float64 `json:"price"`
	Volume int32   `json:"volume"`
}

// OrderSummary is the condensed per-item per-region order book view:
// at most 3 sell orders (ascending price) and 3 buy orders (descending price).
type OrderSummary struct {
	Sell []Order `json:"sell"`
	Buy  []Order `json:"buy"`
}

// Snapshot maps item type ID -> region ID -> condensed order summary.
// It is rebuilt wholesale on each refresh and never mutated afterwards.
type Snapshot map[int32]map[int32]OrderSummary

// Types returns the snapshot's item type IDs in ascending order.
func (s Snapshot) Types() []int32 {
	types := make([]int32, 0, len(s))
	for typeID := range s {
		types = append(types, typeID)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Regions returns an item's region IDs in ascending order.
func (s Snapshot) Regions(typeID int32) []int32 {
	regions := make([]int32, 0, len(s[typeID]))
	for regionID := range s[typeID] {
		regions = append(regions, regionID)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })
	return regions
}

// merge folds one region's per-item summaries into the snapshot.
func (s Snapshot) merge(regionID int32, items map[int32]OrderSummary) {
	for typeID, summary := range items {
		if _, ok := s[typeID]; !ok {
			s[typeID] = map[int32]OrderSummary{regionID: summary}
			continue
		}
		s[typeID][regionID] = summary
	}
}
