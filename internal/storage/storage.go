// Package storage opens the local SQLite database that backs the key-value
// store, the quiz history and the offline asset cache.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	createKVTableSQL = `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	createQuizResultsTableSQL = `
	CREATE TABLE IF NOT EXISTS quiz_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		correct INTEGER NOT NULL,
		incorrect INTEGER NOT NULL,
		percent INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	createAssetCacheTableSQL = `
	CREATE TABLE IF NOT EXISTS asset_cache (
		cache_name TEXT NOT NULL,
		url TEXT NOT NULL,
		body BLOB NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (cache_name, url)
	);`
)

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps writes from the UI loop and the background
	// cache refresh serialized.
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{createKVTableSQL, createQuizResultsTableSQL, createAssetCacheTableSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}
	return db, nil
}
