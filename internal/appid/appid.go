// Package appid derives application identifiers and display names from
// visualization ids. Visualization ids have the form <appId>#<suffix>; the
// application id is always the part before the first '#'.
package appid

import "strings"

// dottedNoise lists dotted-id segments that never make a useful display name.
var dottedNoise = map[string]bool{
	"app": true, "viz": true, "be": true, "nmbs": true, "scm": true, "btc": true,
}

// FromViz returns the application id embedded in a visualization id: the
// substring before the first '#'. Ids without a '#' are returned whole.
func FromViz(vizID string) string {
	id, _, _ := strings.Cut(vizID, "#")
	return id
}

// ShortTitle returns the display title for an application id: the trailing
// segment after the last '_', or the whole id when it has none.
func ShortTitle(appID string) string {
	if i := strings.LastIndex(appID, "_"); i >= 0 {
		return appID[i+1:]
	}
	return appID
}

// FriendlyName extracts a human-readable application name from a
// visualization id. Observed id shapes:
//
//	saas_approuter_be.acme.scanner#Scanner-demo
//	be.acme.scm.zcustomcard.app#be.acme.scm.zcustomcard.viz
//	303d0e01-17d3-4850-a8fb-032a635b3344#Default-VizId
//	gbx_0D6EB5511EA3B7334E8190B6BB78DF5D#008Y17F6AD9DN5414LTUOAPRX
func FriendlyName(vizID string) string {
	appPart := FromViz(vizID)

	// GUIDs stay verbatim.
	if strings.Count(appPart, "-") >= 4 {
		return appPart
	}

	// gbx_ prefixed ids stay verbatim.
	if strings.HasPrefix(appPart, "gbx_") {
		return appPart
	}

	// saas_approuter_be.acme.scanner -> approuter_be.acme.scanner
	if _, rest, ok := strings.Cut(appPart, "_"); ok && rest != "" {
		return rest
	}

	// be.acme.scm.zcustomcard.app -> zcustomcard
	if strings.Contains(appPart, ".") {
		parts := strings.Split(appPart, ".")
		for _, p := range parts {
			if strings.HasPrefix(p, "z") && len(p) > 3 {
				return p
			}
		}
		var meaningful []string
		for _, p := range parts {
			if !dottedNoise[p] {
				meaningful = append(meaningful, p)
			}
		}
		if len(meaningful) > 0 {
			return meaningful[len(meaningful)-1]
		}
	}

	return appPart
}
