package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/portalworks/wz/internal/snapshot"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), ".wz"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func testSnap() *snapshot.Snapshot {
	snap := snapshot.New()
	snap.Spaces = []snapshot.Space{{ID: "SP1", Language: "master", Title: "Sales"}}
	id := "R1"
	snap.Roles = []snapshot.Role{{ID: &id}}
	snap.DirectRelations["R1"] = snapshot.DirectRelation{Spaces: []string{"SP1"}}
	return snap
}

func TestPutGetRoundTrip(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("/exports/a", "fp1", testSnap()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := c.Get("/exports/a", "fp1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.Spaces) != 1 || got.Spaces[0].Title != "Sales" {
		t.Errorf("unexpected spaces: %+v", got.Spaces)
	}
	if got.Roles[0].ID == nil || *got.Roles[0].ID != "R1" {
		t.Errorf("role id lost in round trip: %v", got.Roles[0].ID)
	}
	if len(got.DirectRelations["R1"].Spaces) != 1 {
		t.Errorf("relations lost in round trip: %+v", got.DirectRelations)
	}
}

func TestGetFingerprintMismatch(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("/exports/a", "fp1", testSnap()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, ok := c.Get("/exports/a", "fp2"); ok {
		t.Error("expected miss on fingerprint mismatch")
	}
}

func TestGetUnknownKey(t *testing.T) {
	c := openTestCache(t)
	if _, ok := c.Get("/exports/unknown", "fp1"); ok {
		t.Error("expected miss for unknown source key")
	}
}

func TestPutReplaces(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("/exports/a", "fp1", testSnap()); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}

	updated := testSnap()
	updated.Spaces[0].Title = "Marketing"
	if err := c.Put("/exports/a", "fp2", updated); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	if _, ok := c.Get("/exports/a", "fp1"); ok {
		t.Error("old fingerprint should no longer hit")
	}
	got, ok := c.Get("/exports/a", "fp2")
	if !ok || got.Spaces[0].Title != "Marketing" {
		t.Errorf("expected replaced entry, got ok=%v snap=%+v", ok, got)
	}
}

func TestGetEntry(t *testing.T) {
	c := openTestCache(t)

	if _, err := c.GetEntry("/exports/a"); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}

	if err := c.Put("/exports/a", "fp1", testSnap()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry, err := c.GetEntry("/exports/a")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry.Fingerprint != "fp1" {
		t.Errorf("fingerprint = %q, want fp1", entry.Fingerprint)
	}
	if time.Since(entry.CachedAt) > time.Minute {
		t.Errorf("cached_at not recent: %v", entry.CachedAt)
	}
}

func TestClear(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("/exports/a", "fp1", testSnap()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := c.Get("/exports/a", "fp1"); ok {
		t.Error("expected miss after Clear")
	}
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content", "1_DataFile_SP.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	fp1, err := Fingerprint(dir)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	fp2, err := Fingerprint(dir)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if fp1 != fp2 {
		t.Error("fingerprint not stable for unchanged tree")
	}

	// Changing a file's size changes the fingerprint.
	if err := os.WriteFile(path, []byte(`[{}]`), 0644); err != nil {
		t.Fatal(err)
	}
	fp3, err := Fingerprint(dir)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if fp3 == fp1 {
		t.Error("fingerprint unchanged after file modification")
	}
}
