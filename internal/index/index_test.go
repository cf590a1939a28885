package index

import (
	"testing"

	"github.com/portalworks/wz/internal/snapshot"
)

func TestBuildPreservesSourceOrder(t *testing.T) {
	snap := snapshot.New()
	snap.PageVizLinks = []snapshot.PageVizLink{
		{PageID: "WP1", VizID: "app.b#2"},
		{PageID: "WP1", VizID: "app.a#1"},
		{PageID: "WP2", VizID: "app.c#3"},
	}
	snap.SpacePageLinks = []snapshot.SpacePageLink{
		{SpaceID: "SP1", PageID: "WP2"},
		{SpaceID: "SP1", PageID: "WP1"},
	}

	idx := Build(snap)

	wantViz := []string{"app.b#2", "app.a#1"}
	if got := idx.PageVizIDs["WP1"]; len(got) != 2 || got[0] != wantViz[0] || got[1] != wantViz[1] {
		t.Errorf("PageVizIDs[WP1] = %v, want %v", got, wantViz)
	}

	wantPages := []string{"WP2", "WP1"}
	if got := idx.SpacePageIDs["SP1"]; len(got) != 2 || got[0] != wantPages[0] || got[1] != wantPages[1] {
		t.Errorf("SpacePageIDs[SP1] = %v, want %v", got, wantPages)
	}
}

func TestBuildKeepsDuplicateVizLinks(t *testing.T) {
	snap := snapshot.New()
	snap.PageVizLinks = []snapshot.PageVizLink{
		{PageID: "WP1", VizID: "app.a#1"},
		{PageID: "WP1", VizID: "app.a#1"},
	}

	idx := Build(snap)

	if got := len(idx.PageVizIDs["WP1"]); got != 2 {
		t.Errorf("expected duplicate viz links preserved, got %d entries", got)
	}
}

func TestBuildReverseMapLastWins(t *testing.T) {
	snap := snapshot.New()
	snap.SpacePageLinks = []snapshot.SpacePageLink{
		{SpaceID: "SP1", PageID: "WP1"},
		{SpaceID: "SP2", PageID: "WP1"},
	}

	idx := Build(snap)

	if got := idx.PageSpaceID["WP1"]; got != "SP2" {
		t.Errorf("PageSpaceID[WP1] = %q, want %q", got, "SP2")
	}
}

func TestBuildToleratesAbsentKeys(t *testing.T) {
	idx := Build(snapshot.New())

	if got := idx.PageVizIDs["missing"]; got != nil {
		t.Errorf("expected nil slice for absent page, got %v", got)
	}
	if got := idx.PageSpaceID["missing"]; got != "" {
		t.Errorf("expected empty space id for absent page, got %q", got)
	}
}
