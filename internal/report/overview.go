package report

import (
	"fmt"
	"strings"

	"github.com/portalworks/wz/internal/appid"
	"github.com/portalworks/wz/internal/snapshot"
)

// Overview is the legacy overview document: a denormalized view with export
// metadata, friendly app names, reverse app→page/space membership, and
// per-role provider-matched visualizations. It predates the structural and
// hierarchy reports and is kept for operators used to its shape.
type Overview struct {
	ExportInfo ExportInfo         `json:"export_info" yaml:"export_info"`
	Spaces     []OverviewSpace    `json:"spaces" yaml:"spaces"`
	Pages      []OverviewPage     `json:"pages" yaml:"pages"`
	Apps       []OverviewApp      `json:"apps" yaml:"apps"`
	Roles      []OverviewRole     `json:"roles" yaml:"roles"`
	Statistics OverviewStatistics `json:"statistics" yaml:"statistics"`
}

// ExportInfo echoes the export_data metadata file.
type ExportInfo struct {
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	ExportedBy  string   `json:"exported_by,omitempty" yaml:"exported_by,omitempty"`
	Product     string   `json:"product,omitempty" yaml:"product,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	ProviderIDs []string `json:"provider_ids,omitempty" yaml:"provider_ids,omitempty"`
}

// OverviewSpace is one neutral-locale space.
type OverviewSpace struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	SortNumber  int    `json:"sort_number" yaml:"sort_number"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// OverviewViz is one visualization on a page with its friendly app name.
type OverviewViz struct {
	VizID   string `json:"viz_id" yaml:"viz_id"`
	AppName string `json:"app_name" yaml:"app_name"`
}

// OverviewPage is one display-locale page with its visualizations and the
// titles of the spaces it is linked into.
type OverviewPage struct {
	ID          string        `json:"id" yaml:"id"`
	Title       *string       `json:"title" yaml:"title"`
	Description *string       `json:"description" yaml:"description"`
	Spaces      []string      `json:"spaces" yaml:"spaces"`
	Apps        []OverviewViz `json:"apps" yaml:"apps"`
}

// OverviewApp is one business application with reverse page/space membership
// accumulated while walking the pages.
type OverviewApp struct {
	ID         *string   `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	ProviderID *string   `json:"provider_id" yaml:"provider_id"`
	Type       string    `json:"type" yaml:"type"`
	CreatedBy  string    `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	UpdatedBy  string    `json:"updated_by,omitempty" yaml:"updated_by,omitempty"`
	Pages      []*string `json:"pages" yaml:"pages"`
	Spaces     []string  `json:"spaces" yaml:"spaces"`
}

// OverviewRoleViz is one provider-matched visualization for a role.
type OverviewRoleViz struct {
	Page    *string `json:"page" yaml:"page"`
	VizID   string  `json:"viz_id" yaml:"viz_id"`
	AppName string  `json:"app_name" yaml:"app_name"`
}

// OverviewRole is one role with its provider-matched pages and
// visualizations. Matching here is against the full visualization id, the
// way the overview always did it; the hierarchy builder matches against the
// application id instead.
type OverviewRole struct {
	ID             *string           `json:"id" yaml:"id"`
	ProviderID     *string           `json:"provider_id" yaml:"provider_id"`
	Extends        *string           `json:"extends" yaml:"extends"`
	CreatedBy      string            `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	UpdatedBy      string            `json:"updated_by,omitempty" yaml:"updated_by,omitempty"`
	RelatedPages   []*string         `json:"related_pages" yaml:"related_pages"`
	RelatedVizs    []OverviewRoleViz `json:"related_visualizations" yaml:"related_visualizations"`
	Note           string            `json:"note" yaml:"note"`
}

// OverviewStatistics are the overview's own totals. Unlike the structural
// report these count the overview's filtered listings, plus the raw
// visualization total across pages.
type OverviewStatistics struct {
	TotalSpaces         int `json:"total_spaces" yaml:"total_spaces"`
	TotalPages          int `json:"total_pages" yaml:"total_pages"`
	TotalApps           int `json:"total_apps" yaml:"total_apps"`
	TotalRoles          int `json:"total_roles" yaml:"total_roles"`
	TotalVisualizations int `json:"total_visualizations" yaml:"total_visualizations"`
}

// BuildOverview produces the legacy overview document.
func BuildOverview(snap *snapshot.Snapshot, opts Options) *Overview {
	ov := &Overview{
		Spaces: make([]OverviewSpace, 0),
		Pages:  make([]OverviewPage, 0),
		Apps:   make([]OverviewApp, 0),
		Roles:  make([]OverviewRole, 0),
	}

	if snap.Metadata != nil {
		ov.ExportInfo = ExportInfo{
			Date:        snap.Metadata.Time,
			ExportedBy:  snap.Metadata.Username,
			Product:     snap.Metadata.Product,
			Version:     snap.Metadata.Version,
			ProviderIDs: snap.Metadata.ProviderIDs,
		}
	}

	for _, sp := range snap.Spaces {
		if !opts.Locales.NeutralOnly(sp.Language) {
			continue
		}
		ov.Spaces = append(ov.Spaces, OverviewSpace{
			ID:          sp.ID,
			Title:       sp.Title,
			SortNumber:  sp.SortNumber,
			Description: sp.Description,
		})
	}

	for i := range snap.Apps {
		a := snap.Apps[i]
		appType := "custom"
		if a.BaseTargetID != "" {
			appType = "extended"
		}
		ov.Apps = append(ov.Apps, OverviewApp{
			ID:         a.ID,
			Title:      overviewAppTitle(a),
			ProviderID: nullable(a.ProviderID),
			Type:       appType,
			CreatedBy:  a.CreatedBy,
			UpdatedBy:  a.UpdatedBy,
			Pages:      make([]*string, 0),
			Spaces:     make([]string, 0),
		})
	}

	// Page id -> titles of the neutral-locale spaces it is linked into.
	pageSpaceTitles := make(map[string][]string)
	for _, link := range snap.SpacePageLinks {
		for _, sp := range snap.Spaces {
			if sp.ID == link.SpaceID && opts.Locales.NeutralOnly(sp.Language) && sp.Title != "" {
				pageSpaceTitles[link.PageID] = append(pageSpaceTitles[link.PageID], sp.Title)
				break
			}
		}
	}

	totalVizs := 0
	for _, pg := range snap.Pages {
		if !opts.Locales.DisplayOnly(pg.Language) {
			continue
		}
		page := OverviewPage{
			ID:          pg.ID,
			Title:       pg.Title,
			Description: pg.Description,
			Spaces:      append(make([]string, 0), pageSpaceTitles[pg.ID]...),
			Apps:        make([]OverviewViz, 0),
		}
		for _, vizID := range pg.VizIDs {
			page.Apps = append(page.Apps, OverviewViz{
				VizID:   vizID,
				AppName: appid.FriendlyName(vizID),
			})
			// Accumulate reverse membership on every app the viz names.
			for j := range ov.Apps {
				app := &ov.Apps[j]
				if app.ID == nil {
					continue
				}
				if strings.Contains(vizID, *app.ID) || strings.HasPrefix(vizID, *app.ID) {
					if !containsTitle(app.Pages, pg.Title) {
						app.Pages = append(app.Pages, pg.Title)
					}
					for _, spTitle := range page.Spaces {
						if !containsString(app.Spaces, spTitle) {
							app.Spaces = append(app.Spaces, spTitle)
						}
					}
				}
			}
		}
		totalVizs += len(page.Apps)
		ov.Pages = append(ov.Pages, page)
	}

	for _, role := range snap.Roles {
		entry := OverviewRole{
			ID:           role.ID,
			ProviderID:   nullable(role.ProviderID),
			Extends:      nullable(role.Extends),
			CreatedBy:    role.CreatedBy,
			UpdatedBy:    role.UpdatedBy,
			RelatedPages: make([]*string, 0),
			RelatedVizs:  make([]OverviewRoleViz, 0),
		}
		if role.ProviderID != "" {
			for _, page := range ov.Pages {
				for _, viz := range page.Apps {
					if strings.HasPrefix(viz.VizID, role.ProviderID+"_") || strings.Contains(viz.VizID, role.ProviderID) {
						if !containsTitle(entry.RelatedPages, page.Title) {
							entry.RelatedPages = append(entry.RelatedPages, page.Title)
						}
						entry.RelatedVizs = append(entry.RelatedVizs, OverviewRoleViz{
							Page:    page.Title,
							VizID:   viz.VizID,
							AppName: viz.AppName,
						})
					}
				}
			}
		}
		if len(entry.RelatedVizs) > 0 {
			entry.Note = fmt.Sprintf("Found via provider matching in %d visualizations", len(entry.RelatedVizs))
		} else {
			entry.Note = "No visualizations found for this provider"
		}
		ov.Roles = append(ov.Roles, entry)
	}

	ov.Statistics = OverviewStatistics{
		TotalSpaces:         len(ov.Spaces),
		TotalPages:          len(ov.Pages),
		TotalApps:           len(ov.Apps),
		TotalRoles:          len(ov.Roles),
		TotalVisualizations: totalVizs,
	}

	return ov
}

// overviewAppTitle resolves an application's display title, falling back
// through the base-relation target id and the friendly-name heuristic.
func overviewAppTitle(a snapshot.App) string {
	if a.Title != "" {
		return a.Title
	}
	if a.BaseTargetID != "" {
		return appid.FriendlyName(a.BaseTargetID)
	}
	if a.ID != nil {
		return appid.FriendlyName(*a.ID)
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsTitle(list []*string, t *string) bool {
	for _, v := range list {
		if v == nil && t == nil {
			return true
		}
		if v != nil && t != nil && *v == *t {
			return true
		}
	}
	return false
}
