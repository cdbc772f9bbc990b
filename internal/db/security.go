package db

// LoadAll reads every cached region security level.
// A missing or unreadable table yields an empty map and the error; callers
// are expected to treat that as a cold cache, not a fault.
func (d *DB) LoadAll() (map[int32]float64, error) {
	levels := make(map[int32]float64)

	rows, err := d.sql.Query("SELECT region_id, security FROM security_cache")
	if err != nil {
		return levels, err
	}
	defer rows.Close()

	for rows.Next() {
		var regionID int32
		var security float64
		if err := rows.Scan(&regionID, &security); err != nil {
			return levels, err
		}
		levels[regionID] = security
	}
	return levels, rows.Err()
}

// SaveAll replaces the persisted security cache with the given mapping.
func (d *DB) SaveAll(levels map[int32]float64) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM security_cache"); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO security_cache (region_id, security) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for regionID, security := range levels {
		if _, err := stmt.Exec(regionID, security); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
