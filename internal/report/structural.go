package report

import (
	"github.com/portalworks/wz/internal/appid"
	"github.com/portalworks/wz/internal/index"
	"github.com/portalworks/wz/internal/snapshot"
)

// Build produces the structural report from a snapshot and its index. The
// result is a pure function of its inputs: building twice from the same
// snapshot yields an identical document.
func Build(snap *snapshot.Snapshot, idx *index.Index, opts Options) *Report {
	rep := &Report{
		Structure:     make([]SpaceEntry, 0),
		RolesAnalysis: make([]RoleEntry, 0),
	}

	// The listing accepts either canonical locale for spaces; work-page
	// titles are resolved by first id match across all locales.
	for _, sp := range snap.Spaces {
		if !opts.Locales.Canonical(sp.Language) {
			continue
		}
		entry := SpaceEntry{
			SpaceTitle: orPlaceholder(sp.Title, opts.Placeholder),
			SpaceID:    sp.ID,
			Pages:      make([]PageEntry, 0),
		}
		for _, pageID := range idx.SpacePageIDs[sp.ID] {
			pe := PageEntry{PageID: pageID, Apps: make([]string, 0)}
			if pg := snap.FindPage(pageID); pg != nil {
				pe.PageTitle = pg.Title
			}
			for _, vizID := range idx.PageVizIDs[pageID] {
				pe.Apps = append(pe.Apps, appid.FromViz(vizID))
			}
			entry.Pages = append(entry.Pages, pe)
		}
		rep.Structure = append(rep.Structure, entry)
	}

	for _, role := range snap.Roles {
		apps := snap.RoleApps(role)
		spaces := snap.Relations(role.ID).Spaces
		if spaces == nil {
			spaces = make([]string, 0)
		}
		rep.RolesAnalysis = append(rep.RolesAnalysis, RoleEntry{
			RoleID:     role.ID,
			ProviderID: nullable(role.ProviderID),
			AppCount:   len(apps),
			Apps:       apps,
			SpaceCount: len(spaces),
			Spaces:     spaces,
		})
	}

	// total_spaces counts the neutral locale only, unlike the structure
	// listing above; one logical space exists once per canonical locale.
	for _, sp := range snap.Spaces {
		if opts.Locales.NeutralOnly(sp.Language) {
			rep.Statistics.TotalSpaces++
		}
	}
	rep.Statistics.TotalRoles = len(snap.Roles)
	rep.Statistics.TotalApps = len(snap.Apps)

	return rep
}

func orPlaceholder(title, placeholder string) string {
	if title == "" {
		return placeholder
	}
	return title
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
