package market

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	fs := &FileStore{Path: filepath.Join(t.TempDir(), "data", "market_prices.json")}

	snapshot := Snapshot{
		34: {
			1: OrderSummary{
				Sell: []Order{{Price: 10, Volume: 2}, {Price: 20, Volume: 3}},
				Buy:  []Order{{Price: 8, Volume: 5}},
			},
			2: OrderSummary{
				Sell: []Order{{Price: 12, Volume: 1}},
			},
		},
		620: {
			1: OrderSummary{
				Buy: []Order{{Price: 9e6, Volume: 1}},
			},
		},
	}

	if err := fs.Save(snapshot); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := fs.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, snapshot) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, snapshot)
	}
}

func TestFileStore_SaveOrderedByTypeID(t *testing.T) {
	fs := &FileStore{Path: filepath.Join(t.TempDir(), "market_prices.json")}

	snapshot := Snapshot{
		900: {1: OrderSummary{}},
		34:  {1: OrderSummary{}},
		100: {1: OrderSummary{}},
	}
	if err := fs.Save(snapshot); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(fs.Path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// 34 must appear before 100, and 100 before 900, in the document.
	s := string(data)
	i34 := strings.Index(s, `"type_id": 34`)
	i100 := strings.Index(s, `"type_id": 100`)
	i900 := strings.Index(s, `"type_id": 900`)
	if i34 < 0 || i100 < 0 || i900 < 0 {
		t.Fatalf("type_id entries missing from document:\n%s", s)
	}
	if !(i34 < i100 && i100 < i900) {
		t.Errorf("document not ordered by type_id: positions %d %d %d", i34, i100, i900)
	}
}

func TestFileStore_MissingFileReturnsEmpty(t *testing.T) {
	fs := &FileStore{Path: filepath.Join(t.TempDir(), "nope.json")}

	got, err := fs.Load()
	if err == nil {
		t.Error("Load of missing file should return the error for logging")
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Load of missing file = %v, want empty snapshot", got)
	}
}

func TestFileStore_CorruptFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	fs := &FileStore{Path: path}

	got, err := fs.Load()
	if err == nil {
		t.Error("Load of corrupt file should return the error for logging")
	}
	if len(got) != 0 {
		t.Errorf("Load of corrupt file = %v, want empty snapshot", got)
	}
}
