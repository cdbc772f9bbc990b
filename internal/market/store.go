package market

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists snapshots as a JSON document ordered by item type ID.
// The on-disk form is an array rather than a map so the ordering survives
// encoding (JSON objects with numeric string keys sort lexicographically).
type FileStore struct {
	Path string
}

// snapshotItem is the on-disk form of one item's per-region summaries.
type snapshotItem struct {
	TypeID  int32            `json:"type_id"`
	Regions []snapshotRegion `json:"regions"`
}

type snapshotRegion struct {
	RegionID int32   `json:"region_id"`
	Sell     []Order `json:"sell"`
	Buy      []Order `json:"buy"`
}

// Save writes the snapshot to disk, ordered by type ID then region ID.
func (fs *FileStore) Save(snapshot Snapshot) error {
	doc := make([]snapshotItem, 0, len(snapshot))
	for _, typeID := range snapshot.Types() {
		item := snapshotItem{TypeID: typeID}
		for _, regionID := range snapshot.Regions(typeID) {
			summary := snapshot[typeID][regionID]
			item.Regions = append(item.Regions, snapshotRegion{
				RegionID: regionID,
				Sell:     summary.Sell,
				Buy:      summary.Buy,
			})
		}
		doc = append(doc, item)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(fs.Path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(fs.Path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot back from disk. A missing or unreadable file
// returns an empty snapshot alongside the error; callers can keep going.
func (fs *FileStore) Load() (Snapshot, error) {
	snapshot := make(Snapshot)

	data, err := os.ReadFile(fs.Path)
	if err != nil {
		return snapshot, fmt.Errorf("read snapshot: %w", err)
	}
	var doc []snapshotItem
	if err := json.Unmarshal(data, &doc); err != nil {
		return snapshot, fmt.Errorf("decode snapshot: %w", err)
	}

	for _, item := range doc {
		regions := make(map[int32]OrderSummary, len(item.Regions))
		for _, r := range item.Regions {
			regions[r.RegionID] = OrderSummary{Sell: r.Sell, Buy: r.Buy}
		}
		snapshot[item.TypeID] = regions
	}
	return snapshot, nil
}
