package cache

// schemaSQL defines the SQLite schema for the cache database.
// Tables:
//   - snapshots: one serialized snapshot per export source, with the
//     fingerprint that was current when it was cached
const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    source_key TEXT PRIMARY KEY,
    fingerprint TEXT NOT NULL,
    data BLOB NOT NULL,
    cached_at TEXT NOT NULL
);
`

// initSchema creates the database tables if they don't exist.
func (c *Cache) initSchema() error {
	_, err := c.db.Exec(schemaSQL)
	return err
}
