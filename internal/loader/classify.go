package loader

import (
	"path/filepath"
	"strings"
)

// Kind classifies an export file by what collection it feeds.
type Kind int

const (
	// KindUnknown marks files the loader skips.
	KindUnknown Kind = iota
	// KindMetadata is the export_data metadata file.
	KindMetadata
	// KindSpaces is a space collection file.
	KindSpaces
	// KindPages is a work-page collection file.
	KindPages
	// KindSpacePageLinks is a space↔page relation file.
	KindSpacePageLinks
	// KindPageVizLinks is a page↔visualization relation file.
	KindPageVizLinks
	// KindRoles is a role collection file.
	KindRoles
	// KindApps is a business application collection file.
	KindApps
	// KindRelations is a direct role-relation side file.
	KindRelations
)

// String returns the collection name for warnings and verbose output.
func (k Kind) String() string {
	switch k {
	case KindMetadata:
		return "export metadata"
	case KindSpaces:
		return "spaces"
	case KindPages:
		return "workpages"
	case KindSpacePageLinks:
		return "space-page links"
	case KindPageVizLinks:
		return "page-viz links"
	case KindRoles:
		return "roles"
	case KindApps:
		return "business apps"
	case KindRelations:
		return "role relations"
	default:
		return "unknown"
	}
}

// Classify recognizes a file by the export's naming conventions. Content
// data files carry a _DataFile_<collection>.json suffix; role and app
// collections are numbered json files under directories named after their
// entity type; direct-relation side files carry a _roleRelations.json
// suffix anywhere in the tree.
func Classify(path string) Kind {
	base := filepath.Base(path)
	parent := filepath.Base(filepath.Dir(path))

	switch {
	case base == "export_data":
		return KindMetadata
	case strings.HasSuffix(base, "_DataFile_SP.json"):
		return KindSpaces
	case strings.HasSuffix(base, "_DataFile_WPV.json"):
		return KindPages
	case strings.HasSuffix(base, "_DataFile_SP-WP.json"):
		return KindSpacePageLinks
	case strings.HasSuffix(base, "_DataFile_WP-VIZ.json"):
		return KindPageVizLinks
	case strings.HasSuffix(base, "_roleRelations.json"):
		return KindRelations
	case parent == "role" && strings.HasPrefix(base, "role") && strings.HasSuffix(base, ".json"):
		return KindRoles
	case parent == "businessapp" && strings.HasPrefix(base, "businessapp") && strings.HasSuffix(base, ".json"):
		return KindApps
	default:
		return KindUnknown
	}
}
