package hierarchy

import (
	"fmt"
	"strings"

	"github.com/portalworks/wz/internal/appid"
	"github.com/portalworks/wz/internal/index"
	"github.com/portalworks/wz/internal/locale"
	"github.com/portalworks/wz/internal/snapshot"
)

// ProviderFallback is emitted for roles that declare no provider id.
const ProviderFallback = "BTP"

// Options parameterizes the builder.
type Options struct {
	// Locales are the canonical locale tags for the dataset.
	Locales locale.Filter

	// Placeholder is substituted for absent space titles.
	Placeholder string

	// ProviderFallback replaces an empty role provider id in the output.
	ProviderFallback string
}

// DefaultOptions returns builder options matching real portal exports.
func DefaultOptions() Options {
	return Options{
		Locales:          locale.Default,
		Placeholder:      snapshot.PlaceholderTitle,
		ProviderFallback: ProviderFallback,
	}
}

// Report is the nested hierarchy document for UI rendering.
type Report struct {
	Roles      []RoleNode `json:"roles" yaml:"roles"`
	Statistics Statistics `json:"statistics" yaml:"statistics"`
}

// Statistics are catalog totals, independent of what ended up reachable in
// the trees: totalSpaces counts spaces in either canonical locale,
// totalPages counts display-locale pages, roles and apps are counted raw.
type Statistics struct {
	TotalRoles  int `json:"totalRoles" yaml:"totalRoles"`
	TotalSpaces int `json:"totalSpaces" yaml:"totalSpaces"`
	TotalPages  int `json:"totalPages" yaml:"totalPages"`
	TotalApps   int `json:"totalApps" yaml:"totalApps"`
}

// Build assembles the role hierarchy from a snapshot and its index. The
// returned warnings flag provider ids that matched an application id as a
// non-prefix substring; those matches are kept but worth checking against
// the export.
func Build(snap *snapshot.Snapshot, idx *index.Index, opts Options) (*Report, []string) {
	rep := &Report{Roles: make([]RoleNode, 0)}
	var warnings []string

	templates := buildTemplates(snap, idx, opts)

	for _, role := range snap.Roles {
		node, warns := buildRole(snap, idx, opts, role, templates)
		rep.Roles = append(rep.Roles, node)
		warnings = append(warnings, warns...)
	}

	for _, sp := range snap.Spaces {
		if opts.Locales.Canonical(sp.Language) {
			rep.Statistics.TotalSpaces++
		}
	}
	for _, pg := range snap.Pages {
		if opts.Locales.DisplayOnly(pg.Language) {
			rep.Statistics.TotalPages++
		}
	}
	rep.Statistics.TotalRoles = len(snap.Roles)
	rep.Statistics.TotalApps = len(snap.Apps)

	return rep, warnings
}

// buildTemplates walks every canonical-locale space once and materializes its
// full subtree: display-locale pages with their embedded visualization ids
// mapped to app nodes, rollup counts included. Roles deep-copy from these
// templates and never mutate them.
func buildTemplates(snap *snapshot.Snapshot, idx *index.Index, opts Options) map[string]*SpaceNode {
	templates := make(map[string]*SpaceNode)

	for _, sp := range snap.Spaces {
		if !opts.Locales.Canonical(sp.Language) {
			continue
		}
		if _, ok := templates[sp.ID]; ok {
			continue
		}
		node := &SpaceNode{
			ID:       sp.ID,
			Type:     "space",
			Title:    orPlaceholder(sp.Title, opts.Placeholder),
			Children: make([]PageNode, 0),
		}
		for _, pageID := range idx.SpacePageIDs[sp.ID] {
			pg := snap.FindPageInLocale(pageID, opts.Locales.Display)
			if pg == nil {
				continue
			}
			pn := PageNode{
				ID:       pageID,
				Type:     "page",
				Title:    pg.Title,
				Children: make([]AppNode, 0),
			}
			for _, vizID := range pg.VizIDs {
				pn.Children = append(pn.Children, newAppNode(appid.FromViz(vizID)))
			}
			pn.AppCount = len(pn.Children)
			node.Children = append(node.Children, pn)
			node.PageCount++
			node.AppCount += pn.AppCount
		}
		templates[sp.ID] = node
	}

	return templates
}

func buildRole(snap *snapshot.Snapshot, idx *index.Index, opts Options, role snapshot.Role, templates map[string]*SpaceNode) (RoleNode, []string) {
	var warnings []string

	directApps := snap.RoleApps(role)

	working := make(map[string]*SpaceNode)
	var workOrder []string
	totalApps := 0

	// Explicitly curated spaces: deep-copy the canonical template so this
	// role's rollup accumulation stays isolated.
	for _, spaceID := range snap.Relations(role.ID).Spaces {
		tpl, ok := templates[spaceID]
		if !ok {
			continue
		}
		if _, dup := working[spaceID]; dup {
			continue
		}
		cp := tpl.DeepCopy()
		working[spaceID] = cp
		workOrder = append(workOrder, spaceID)
		totalApps += cp.AppCount
	}

	// Provider-id fallback: only for roles that declare a provider. The
	// startsWith check is redundant with the contains check in normal data
	// but both predicates are load-bearing behavior; keep the OR verbatim.
	if role.ProviderID != "" {
		prefix := role.ProviderID + "_"
		for _, pg := range snap.Pages {
			if !opts.Locales.DisplayOnly(pg.Language) {
				continue
			}
			var matched []AppNode
			for _, vizID := range pg.VizIDs {
				appID := appid.FromViz(vizID)
				if strings.HasPrefix(appID, prefix) || strings.Contains(appID, role.ProviderID) {
					if !strings.HasPrefix(appID, prefix) {
						warnings = append(warnings, fmt.Sprintf(
							"provider %q of role %s matches app %q as a non-prefix substring",
							role.ProviderID, describeRoleID(role.ID), appID))
					}
					matched = append(matched, newAppNode(appID))
				}
			}
			if len(matched) == 0 {
				continue
			}
			spaceID := idx.PageSpaceID[pg.ID]
			ws, ok := working[spaceID]
			if !ok {
				// First touch: only id and title are carried over, the
				// canonical subtree is not; counts start at zero.
				title := opts.Placeholder
				if tpl, exists := templates[spaceID]; exists {
					title = tpl.Title
				}
				ws = &SpaceNode{ID: spaceID, Type: "space", Title: title, Children: make([]PageNode, 0)}
				working[spaceID] = ws
				workOrder = append(workOrder, spaceID)
			}
			ws.Children = append(ws.Children, PageNode{
				ID:       pg.ID,
				Type:     "page",
				Title:    pg.Title,
				AppCount: len(matched),
				Children: matched,
			})
			ws.PageCount++
			ws.AppCount += len(matched)
			totalApps += len(matched)
		}
	}

	node := RoleNode{
		ID:         role.ID,
		Type:       "role",
		Title:      shortTitlePtr(role.ID),
		FullID:     role.ID,
		ProviderID: role.ProviderID,
		SpaceCount: len(workOrder),
		TotalApps:  totalApps + len(directApps),
		Children:   make([]any, 0, len(workOrder)+len(directApps)),
	}
	if node.ProviderID == "" {
		node.ProviderID = opts.ProviderFallback
	}
	for _, spaceID := range workOrder {
		ws := working[spaceID]
		node.TotalPages += ws.PageCount
		node.Children = append(node.Children, ws)
	}
	for _, appID := range directApps {
		node.Children = append(node.Children, appNodeFromID(appID))
	}

	return node, warnings
}

func newAppNode(appID string) AppNode {
	title := appid.ShortTitle(appID)
	id := appID
	return AppNode{ID: &id, Type: "app", Title: &title, FullID: &id}
}

// appNodeFromID builds an app node from a possibly-nil application id.
func appNodeFromID(appID *string) AppNode {
	if appID == nil {
		return AppNode{Type: "app"}
	}
	return newAppNode(*appID)
}

func shortTitlePtr(id *string) *string {
	if id == nil {
		return nil
	}
	title := appid.ShortTitle(*id)
	return &title
}

func describeRoleID(id *string) string {
	if id == nil {
		return "<no id>"
	}
	return *id
}

func orPlaceholder(title, placeholder string) string {
	if title == "" {
		return placeholder
	}
	return title
}
