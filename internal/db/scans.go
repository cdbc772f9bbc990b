package db

import (
	"time"
)

// ScanRecord summarizes one completed ranking run.
type ScanRecord struct {
	ID          int64
	Timestamp   string
	TopN        int
	MinValue    float64
	MaxValue    float64
	MinSecurity float64
	Regions     int
	Deals       int
	TopMargin   float64
}

// RecordScan inserts a scan_history row and returns its ID (0 on failure).
func (d *DB) RecordScan(rec ScanRecord) int64 {
	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	res, err := d.sql.Exec(`
		INSERT INTO scan_history (timestamp, top_n, min_value, max_value, min_security, regions, deals, top_margin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.TopN, rec.MinValue, rec.MaxValue, rec.MinSecurity, rec.Regions, rec.Deals, rec.TopMargin)
	if err != nil {
		return 0
	}
	id, _ := res.LastInsertId()
	return id
}

// RecentScans returns the latest scans, newest first.
func (d *DB) RecentScans(limit int) []ScanRecord {
	rows, err := d.sql.Query(`
		SELECT id, timestamp, top_n, min_value, max_value, min_security, regions, deals, top_margin
		FROM scan_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var r ScanRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.TopN, &r.MinValue, &r.MaxValue,
			&r.MinSecurity, &r.Regions, &r.Deals, &r.TopMargin); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records
}
