package db

// GetName returns a cached name for an entity ID.
func (d *DB) GetName(id int32) (string, bool) {
	var name string
	err := d.sql.QueryRow("SELECT name FROM name_cache WHERE id = ?", id).Scan(&name)
	if err != nil {
		return "", false
	}
	return name, true
}

// SetName stores a resolved entity name.
func (d *DB) SetName(id int32, name string) {
	d.sql.Exec("INSERT OR REPLACE INTO name_cache (id, name) VALUES (?, ?)", id, name)
}
