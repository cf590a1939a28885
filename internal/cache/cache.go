// Package cache provides SQLite-backed caching of loaded snapshots.
// The cache is stored in .wz/cache.db and keyed by export source; a
// fingerprint over the export's file metadata invalidates stale entries, so
// repeat runs against an unchanged export skip the walk-and-parse step.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache manages the .wz/cache.db SQLite database.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the cache database at the specified .wz directory.
// It initializes the schema if the database is new.
func Open(wzDir string) (*Cache, error) {
	if err := os.MkdirAll(wzDir, 0755); err != nil {
		return nil, fmt.Errorf("create .wz directory: %w", err)
	}
	dbPath := filepath.Join(wzDir, "cache.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	cache := &Cache{db: db, dbPath: dbPath}

	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return cache, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Clear removes all cached snapshots.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM snapshots;"); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.dbPath
}
