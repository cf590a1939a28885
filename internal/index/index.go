// Package index derives O(1) lookup maps from the snapshot's raw link
// collections so the report builders can join without scanning.
package index

import "github.com/portalworks/wz/internal/snapshot"

// Index holds the derived link mappings. All maps tolerate absent keys: a
// missing key yields a nil slice or empty string, never an error.
type Index struct {
	// PageVizIDs maps a page id to its visualization ids in source order.
	// Duplicates in the source collection are preserved.
	PageVizIDs map[string][]string

	// SpacePageIDs maps a space id to its page ids in source order.
	SpacePageIDs map[string][]string

	// PageSpaceID maps a page id back to its space. A page linked to more
	// than one space is a data anomaly; the last link wins.
	PageSpaceID map[string]string
}

// Build derives the index from a snapshot's link collections.
func Build(snap *snapshot.Snapshot) *Index {
	idx := &Index{
		PageVizIDs:   make(map[string][]string),
		SpacePageIDs: make(map[string][]string),
		PageSpaceID:  make(map[string]string),
	}

	for _, l := range snap.PageVizLinks {
		idx.PageVizIDs[l.PageID] = append(idx.PageVizIDs[l.PageID], l.VizID)
	}

	for _, l := range snap.SpacePageLinks {
		idx.SpacePageIDs[l.SpaceID] = append(idx.SpacePageIDs[l.SpaceID], l.PageID)
		idx.PageSpaceID[l.PageID] = l.SpaceID
	}

	return idx
}
