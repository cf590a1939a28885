// Package report builds the flat structural report and the legacy overview
// document from a loaded snapshot. Both builders are read-only: they consume
// the snapshot plus its index and emit serializable documents, performing no
// I/O themselves.
package report

import (
	"github.com/portalworks/wz/internal/locale"
	"github.com/portalworks/wz/internal/snapshot"
)

// Options parameterizes the builders. The zero value is not useful; use
// DefaultOptions or fill every field from config.
type Options struct {
	// Locales are the canonical locale tags for the dataset.
	Locales locale.Filter

	// Placeholder is substituted for absent space titles.
	Placeholder string
}

// DefaultOptions returns builder options matching real portal exports.
func DefaultOptions() Options {
	return Options{
		Locales:     locale.Default,
		Placeholder: snapshot.PlaceholderTitle,
	}
}

// Report is the flat structural/statistics document.
type Report struct {
	Statistics    Statistics   `json:"statistics" yaml:"statistics"`
	Structure     []SpaceEntry `json:"structure" yaml:"structure"`
	RolesAnalysis []RoleEntry  `json:"roles_analysis" yaml:"roles_analysis"`
}

// Statistics are catalog totals. TotalSpaces counts the neutral locale only
// so that a space present in both canonical locales is counted once; roles
// and apps are not locale-partitioned and are counted raw.
type Statistics struct {
	TotalSpaces int `json:"total_spaces" yaml:"total_spaces"`
	TotalRoles  int `json:"total_roles" yaml:"total_roles"`
	TotalApps   int `json:"total_apps" yaml:"total_apps"`
}

// SpaceEntry is one space in the structural listing.
type SpaceEntry struct {
	SpaceTitle string      `json:"space_title" yaml:"space_title"`
	SpaceID    string      `json:"space_id" yaml:"space_id"`
	Pages      []PageEntry `json:"pages" yaml:"pages"`
}

// PageEntry is one page under a space. PageTitle is null when no page entity
// resolves for the linked id.
type PageEntry struct {
	PageTitle *string  `json:"page_title" yaml:"page_title"`
	PageID    string   `json:"page_id" yaml:"page_id"`
	Apps      []string `json:"apps" yaml:"apps"`
}

// RoleEntry is the per-role analysis row. RoleID is null for role records
// lacking an id; app ids from id-less application records are likewise null.
type RoleEntry struct {
	RoleID     *string   `json:"role_id" yaml:"role_id"`
	ProviderID *string   `json:"provider_id" yaml:"provider_id"`
	AppCount   int       `json:"app_count" yaml:"app_count"`
	Apps       []*string `json:"apps" yaml:"apps"`
	SpaceCount int       `json:"space_count" yaml:"space_count"`
	Spaces     []string  `json:"spaces" yaml:"spaces"`
}
