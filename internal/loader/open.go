package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/portalworks/wz/internal/archive"
	"github.com/portalworks/wz/internal/cache"
	"github.com/portalworks/wz/internal/snapshot"
)

// OpenOptions controls how an export source is materialized.
type OpenOptions struct {
	// ExtractDir is where zip sources are extracted. Defaults to
	// "extracted_workzone" next to the working directory.
	ExtractDir string

	// CacheDir is the .wz directory holding cache.db. Empty disables the
	// snapshot cache.
	CacheDir string

	// Verbose enables per-file progress output.
	Verbose bool
}

// Open materializes a snapshot from an export source, which may be a zip
// archive or an already-extracted directory. Zip sources are extracted
// (recursively, for nested archives) first. When a cache directory is
// configured, an unchanged source is served from cache.db instead of
// re-walking the tree.
func Open(source string, opts OpenOptions) (*snapshot.Snapshot, error) {
	root, err := materialize(source, opts)
	if err != nil {
		return nil, err
	}

	var c *cache.Cache
	var sourceKey, fp string
	if opts.CacheDir != "" {
		c, err = cache.Open(opts.CacheDir)
		if err != nil {
			// A broken cache never blocks an analysis run.
			fmt.Fprintf(os.Stderr, "wz: snapshot cache unavailable: %v\n", err)
		} else {
			defer c.Close()
			sourceKey, err = filepath.Abs(root)
			if err != nil {
				sourceKey = root
			}
			fp, err = cache.Fingerprint(root)
			if err == nil {
				if snap, ok := c.Get(sourceKey, fp); ok {
					if opts.Verbose {
						fmt.Fprintf(os.Stderr, "wz: snapshot served from cache for %s\n", root)
					}
					return snap, nil
				}
			}
		}
	}

	l := New()
	l.Verbose = opts.Verbose
	snap, err := l.Load(root)
	if err != nil {
		return nil, err
	}

	if c != nil && fp != "" {
		if err := c.Put(sourceKey, fp, snap); err != nil {
			fmt.Fprintf(os.Stderr, "wz: caching snapshot: %v\n", err)
		}
	}

	return snap, nil
}

// materialize resolves the source argument to an extracted directory,
// extracting zip archives as needed.
func materialize(source string, opts OpenOptions) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoExport, source)
	}

	if info.IsDir() {
		return source, nil
	}

	if !strings.HasSuffix(source, ".zip") {
		return "", fmt.Errorf("%w: %s is neither a directory nor a zip archive", ErrNoExport, source)
	}

	dest := opts.ExtractDir
	if dest == "" {
		dest = "extracted_workzone"
	}
	if err := archive.ExtractRecursive(source, dest); err != nil {
		return "", err
	}
	return dest, nil
}
