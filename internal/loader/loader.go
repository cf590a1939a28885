// Package loader walks an extracted export tree, recognizes the known export
// files, and materializes the snapshot the reconstruction core consumes.
//
// Per-file failures are warnings, not errors: an unparsable file contributes
// an empty collection and the run continues. The loader only fails when the
// export root itself is absent, so the core either sees a complete snapshot
// or nothing.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/portalworks/wz/internal/snapshot"
)

// ErrNoExport is returned when the export root does not exist or is not a
// directory.
var ErrNoExport = errors.New("export directory not found")

// Loader reads an extracted export tree into a snapshot.
type Loader struct {
	// Warnings receives per-file load warnings. Defaults to os.Stderr.
	Warnings io.Writer

	// Verbose enables per-file progress output to Warnings.
	Verbose bool
}

// New returns a loader writing warnings to os.Stderr.
func New() *Loader {
	return &Loader{Warnings: os.Stderr}
}

// Load walks dir and assembles the snapshot.
func (l *Loader) Load(dir string) (*snapshot.Snapshot, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoExport, dir)
	}

	snap := snapshot.New()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.warnf("skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		kind := Classify(path)
		if kind == KindUnknown {
			return nil
		}
		l.loadFile(snap, path, kind)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk export %s: %w", dir, err)
	}

	return snap, nil
}

// loadFile parses one recognized file into the snapshot. Failures degrade to
// a warning and an unchanged snapshot.
func (l *Loader) loadFile(snap *snapshot.Snapshot, path string, kind Kind) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.warnf("reading %s (%s): %v", path, kind, err)
		return
	}

	switch kind {
	case KindMetadata:
		meta, err := snapshot.DecodeMetadata(data)
		if err != nil {
			l.warnf("%s: %v", path, err)
			return
		}
		snap.Metadata = meta
	case KindSpaces:
		spaces, err := snapshot.DecodeSpaces(data)
		if err != nil {
			l.warnf("%s: %v", path, err)
			return
		}
		snap.Spaces = append(snap.Spaces, spaces...)
	case KindPages:
		pages, err := snapshot.DecodePages(data)
		if err != nil {
			l.warnf("%s: %v", path, err)
			return
		}
		snap.Pages = append(snap.Pages, pages...)
	case KindSpacePageLinks:
		links, err := snapshot.DecodeSpacePageLinks(data)
		if err != nil {
			l.warnf("%s: %v", path, err)
			return
		}
		snap.SpacePageLinks = append(snap.SpacePageLinks, links...)
	case KindPageVizLinks:
		links, err := snapshot.DecodePageVizLinks(data)
		if err != nil {
			l.warnf("%s: %v", path, err)
			return
		}
		snap.PageVizLinks = append(snap.PageVizLinks, links...)
	case KindRoles:
		roles, err := snapshot.DecodeRoles(data)
		if err != nil {
			l.warnf("%s: %v", path, err)
			return
		}
		snap.Roles = append(snap.Roles, roles...)
	case KindApps:
		apps, err := snapshot.DecodeApps(data)
		if err != nil {
			l.warnf("%s: %v", path, err)
			return
		}
		snap.Apps = append(snap.Apps, apps...)
	case KindRelations:
		records, err := snapshot.DecodeRelations(data)
		if err != nil {
			l.warnf("%s: %v", path, err)
			return
		}
		snap.MergeRelations(records)
	}

	if l.Verbose {
		l.warnf("loaded %s from %s", kind, path)
	}
}

func (l *Loader) warnf(format string, args ...any) {
	w := l.Warnings
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "wz: "+format+"\n", args...)
}
