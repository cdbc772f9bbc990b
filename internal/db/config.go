package db

import (
	"fmt"
	"strconv"

	"eve-seeker/internal/config"
)

// LoadConfig reads config from SQLite. If empty, returns defaults.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if len(m) == 0 {
		return cfg
	}

	if v, ok := m["top_n"]; ok {
		cfg.TopN, _ = strconv.Atoi(v)
	}
	if v, ok := m["min_value"]; ok {
		cfg.MinValue, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["max_value"]; ok {
		cfg.MaxValue, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["min_security"]; ok {
		cfg.MinSecurity, _ = strconv.ParseFloat(v, 64)
	}

	return cfg
}

// SaveConfig writes config to SQLite (upsert all fields).
func (d *DB) SaveConfig(cfg *config.Config) error {
	pairs := map[string]string{
		"top_n":        strconv.Itoa(cfg.TopN),
		"min_value":    fmt.Sprintf("%g", cfg.MinValue),
		"max_value":    fmt.Sprintf("%g", cfg.MaxValue),
		"min_security": fmt.Sprintf("%g", cfg.MinSecurity),
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for k, v := range pairs {
		if _, err := stmt.Exec(k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
