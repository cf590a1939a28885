package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/portalworks/wz/internal/snapshot"
)

// Get retrieves the cached snapshot for a source key. It returns false when
// no entry exists or the stored fingerprint no longer matches, so callers
// fall back to a fresh load.
func (c *Cache) Get(sourceKey, fingerprint string) (*snapshot.Snapshot, bool) {
	var storedFP string
	var data []byte
	err := c.db.QueryRow(
		"SELECT fingerprint, data FROM snapshots WHERE source_key = ?",
		sourceKey).Scan(&storedFP, &data)
	if err != nil {
		return nil, false
	}
	if storedFP != fingerprint {
		return nil, false
	}

	snap := snapshot.New()
	if err := json.Unmarshal(data, snap); err != nil {
		// A corrupt entry behaves like a miss.
		return nil, false
	}
	return snap, true
}

// Put stores a snapshot for a source key, replacing any previous entry.
func (c *Cache) Put(sourceKey, fingerprint string, snap *snapshot.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = c.db.Exec(`
		INSERT OR REPLACE INTO snapshots (source_key, fingerprint, data, cached_at)
		VALUES (?, ?, ?, ?)`,
		sourceKey, fingerprint, data, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store snapshot %s: %w", sourceKey, err)
	}
	return nil
}

// Entry holds cache bookkeeping for one source.
type Entry struct {
	SourceKey   string
	Fingerprint string
	CachedAt    time.Time
}

// GetEntry retrieves the bookkeeping row for a source key.
// Returns sql.ErrNoRows if the source has not been cached.
func (c *Cache) GetEntry(sourceKey string) (*Entry, error) {
	var entry Entry
	var cachedAt string
	err := c.db.QueryRow(`
		SELECT source_key, fingerprint, cached_at FROM snapshots WHERE source_key = ?`,
		sourceKey).Scan(&entry.SourceKey, &entry.Fingerprint, &cachedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get cache entry %s: %w", sourceKey, err)
	}
	entry.CachedAt, _ = time.Parse(time.RFC3339, cachedAt)
	return &entry, nil
}
