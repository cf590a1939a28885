package hierarchy

import (
	"testing"

	"github.com/portalworks/wz/internal/index"
	"github.com/portalworks/wz/internal/snapshot"
)

func strPtr(s string) *string { return &s }

// hierarchySnapshot builds one dual-locale space holding one display page
// with two visualizations, shared by two roles via direct relations.
func hierarchySnapshot() *snapshot.Snapshot {
	snap := snapshot.New()
	snap.Spaces = []snapshot.Space{
		{ID: "SP1", Language: "master", Title: "Sales"},
		{ID: "SP1", Language: "en", Title: "Sales"},
	}
	snap.Pages = []snapshot.Page{
		{ID: "WP1", Language: "master"},
		{ID: "WP1", Language: "en", Title: strPtr("Dashboard"), VizIDs: []string{"app.foo#1", "app.bar#2"}},
	}
	snap.SpacePageLinks = []snapshot.SpacePageLink{
		{SpaceID: "SP1", PageID: "WP1"},
	}
	snap.Roles = []snapshot.Role{
		{ID: strPtr("role_sales_admin"), ProviderID: "app"},
		{ID: strPtr("role_sales_viewer")},
	}
	snap.DirectRelations["role_sales_admin"] = snapshot.DirectRelation{Spaces: []string{"SP1"}}
	snap.DirectRelations["role_sales_viewer"] = snapshot.DirectRelation{Spaces: []string{"SP1"}}
	return snap
}

func roleSpace(t *testing.T, node RoleNode, i int) *SpaceNode {
	t.Helper()
	if i >= len(node.Children) {
		t.Fatalf("role has %d children, want index %d", len(node.Children), i)
	}
	sp, ok := node.Children[i].(*SpaceNode)
	if !ok {
		t.Fatalf("child %d is %T, want *SpaceNode", i, node.Children[i])
	}
	return sp
}

func TestBuildRoleTree(t *testing.T) {
	snap := hierarchySnapshot()
	rep, _ := Build(snap, index.Build(snap), DefaultOptions())

	if len(rep.Roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(rep.Roles))
	}

	admin := rep.Roles[0]
	if admin.Title == nil || *admin.Title != "admin" {
		t.Errorf("role title = %v, want admin", admin.Title)
	}
	if admin.FullID == nil || *admin.FullID != "role_sales_admin" {
		t.Errorf("role fullId = %v, want role_sales_admin", admin.FullID)
	}
	if admin.ProviderID != "app" {
		t.Errorf("providerId = %q, want app", admin.ProviderID)
	}
	if admin.SpaceCount != 1 {
		t.Errorf("spaceCount = %d, want 1", admin.SpaceCount)
	}

	sp := roleSpace(t, admin, 0)
	if sp.ID != "SP1" || sp.Title != "Sales" {
		t.Errorf("unexpected space node: id=%q title=%q", sp.ID, sp.Title)
	}
}

func TestBuildDeepCopyIsolation(t *testing.T) {
	snap := hierarchySnapshot()
	rep, _ := Build(snap, index.Build(snap), DefaultOptions())

	// The admin role's provider matches both apps on WP1, so the page is
	// appended a second time to its copy of SP1. The viewer role shares the
	// same space via direct relation and must be untouched by that.
	admin := roleSpace(t, rep.Roles[0], 0)
	if admin.PageCount != 2 || admin.AppCount != 4 {
		t.Errorf("admin SP1 pageCount=%d appCount=%d, want 2 and 4", admin.PageCount, admin.AppCount)
	}

	viewer := roleSpace(t, rep.Roles[1], 0)
	if viewer.PageCount != 1 || viewer.AppCount != 2 {
		t.Errorf("viewer SP1 pageCount=%d appCount=%d, want 1 and 2", viewer.PageCount, viewer.AppCount)
	}
	if len(viewer.Children) != 1 || viewer.Children[0].AppCount != 2 {
		t.Errorf("viewer SP1 children mutated: %+v", viewer.Children)
	}
}

func TestBuildProviderMatchWarnings(t *testing.T) {
	snap := hierarchySnapshot()
	_, warnings := Build(snap, index.Build(snap), DefaultOptions())

	// "app" matches app.foo and app.bar as a substring, not as "app_" prefix.
	if len(warnings) != 2 {
		t.Fatalf("expected 2 non-prefix warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestBuildProviderPrefixMatchSilent(t *testing.T) {
	snap := snapshot.New()
	snap.Spaces = []snapshot.Space{{ID: "SP1", Language: "master", Title: "Sales"}}
	snap.Pages = []snapshot.Page{
		{ID: "WP1", Language: "en", Title: strPtr("Dashboard"), VizIDs: []string{"prov1_scanner#1"}},
	}
	snap.SpacePageLinks = []snapshot.SpacePageLink{{SpaceID: "SP1", PageID: "WP1"}}
	snap.Roles = []snapshot.Role{{ID: strPtr("R1"), ProviderID: "prov1"}}

	rep, warnings := Build(snap, index.Build(snap), DefaultOptions())

	if len(warnings) != 0 {
		t.Errorf("prefix match should not warn, got %v", warnings)
	}

	// The space was not directly related; provider matching creates a
	// working node carrying the template title but not its subtree.
	role := rep.Roles[0]
	if role.SpaceCount != 1 {
		t.Fatalf("spaceCount = %d, want 1", role.SpaceCount)
	}
	sp := roleSpace(t, role, 0)
	if sp.Title != "Sales" {
		t.Errorf("expected template title Sales on first touch, got %q", sp.Title)
	}
	if sp.PageCount != 1 || sp.AppCount != 1 {
		t.Errorf("pageCount=%d appCount=%d, want 1 and 1", sp.PageCount, sp.AppCount)
	}
	if role.TotalPages != 1 || role.TotalApps != 1 {
		t.Errorf("totalPages=%d totalApps=%d, want 1 and 1", role.TotalPages, role.TotalApps)
	}
}

func TestBuildProviderFallback(t *testing.T) {
	snap := snapshot.New()
	snap.Roles = []snapshot.Role{{ID: strPtr("R1")}}

	rep, _ := Build(snap, index.Build(snap), DefaultOptions())
	if rep.Roles[0].ProviderID != ProviderFallback {
		t.Errorf("providerId = %q, want %q", rep.Roles[0].ProviderID, ProviderFallback)
	}
}

func TestBuildNullRoleID(t *testing.T) {
	snap := snapshot.New()
	snap.Roles = []snapshot.Role{{ID: nil}}

	rep, _ := Build(snap, index.Build(snap), DefaultOptions())

	role := rep.Roles[0]
	if role.ID != nil || role.Title != nil || role.FullID != nil {
		t.Errorf("expected null id, title, fullId, got %+v", role)
	}
	if role.ProviderID != ProviderFallback {
		t.Errorf("providerId = %q, want fallback", role.ProviderID)
	}
}

func TestBuildDirectAppChildren(t *testing.T) {
	snap := hierarchySnapshot()
	snap.Apps = []snapshot.App{
		{ID: strPtr("app.foo"), RoleTargets: []string{"role_sales_viewer"}},
		{ID: nil, RoleTargets: []string{"role_sales_viewer"}},
	}

	rep, _ := Build(snap, index.Build(snap), DefaultOptions())

	viewer := rep.Roles[1]
	// One space child followed by two app children.
	if len(viewer.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(viewer.Children))
	}
	app, ok := viewer.Children[1].(AppNode)
	if !ok {
		t.Fatalf("child 1 is %T, want AppNode", viewer.Children[1])
	}
	if app.ID == nil || *app.ID != "app.foo" {
		t.Errorf("app id = %v, want app.foo", app.ID)
	}
	if app.Title == nil || *app.Title != "app.foo" {
		t.Errorf("app title = %v, want app.foo", app.Title)
	}

	nullApp, ok := viewer.Children[2].(AppNode)
	if !ok {
		t.Fatalf("child 2 is %T, want AppNode", viewer.Children[2])
	}
	if nullApp.ID != nil || nullApp.Title != nil || nullApp.FullID != nil {
		t.Errorf("expected null fields for id-less app, got %+v", nullApp)
	}

	// Direct apps count toward the rollup on top of space apps.
	if viewer.TotalApps != 4 {
		t.Errorf("totalApps = %d, want 4", viewer.TotalApps)
	}
}

func TestBuildStatistics(t *testing.T) {
	snap := hierarchySnapshot()
	snap.Apps = []snapshot.App{{ID: strPtr("app.foo")}}

	rep, _ := Build(snap, index.Build(snap), DefaultOptions())

	// totalSpaces counts either canonical locale; totalPages display only.
	if rep.Statistics.TotalSpaces != 2 {
		t.Errorf("totalSpaces = %d, want 2", rep.Statistics.TotalSpaces)
	}
	if rep.Statistics.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1", rep.Statistics.TotalPages)
	}
	if rep.Statistics.TotalRoles != 2 {
		t.Errorf("totalRoles = %d, want 2", rep.Statistics.TotalRoles)
	}
	if rep.Statistics.TotalApps != 1 {
		t.Errorf("totalApps = %d, want 1", rep.Statistics.TotalApps)
	}
}

func TestBuildStatisticsCountEitherCanonicalLocale(t *testing.T) {
	snap := snapshot.New()
	snap.Spaces = []snapshot.Space{
		{ID: "SP1", Language: "master", Title: "Sales"},
		{ID: "SP1", Language: "en", Title: "Sales"},
		{ID: "SP2", Language: "master", Title: "HR"},
		{ID: "SP3", Language: "de", Title: "Vertrieb"},
	}

	rep, _ := Build(snap, index.Build(snap), DefaultOptions())

	// Unlike the structural report's neutral-only total, this counts both
	// canonical locales; the de-only space is excluded from both.
	if rep.Statistics.TotalSpaces != 3 {
		t.Errorf("totalSpaces = %d, want 3", rep.Statistics.TotalSpaces)
	}
}

func TestSpaceNodeDeepCopy(t *testing.T) {
	title := "Dashboard"
	orig := &SpaceNode{
		ID:        "SP1",
		Type:      "space",
		Title:     "Sales",
		PageCount: 1,
		AppCount:  1,
		Children: []PageNode{
			{ID: "WP1", Type: "page", Title: &title, AppCount: 1, Children: []AppNode{
				{ID: strPtr("app.foo"), Type: "app", Title: strPtr("foo"), FullID: strPtr("app.foo")},
			}},
		},
	}

	cp := orig.DeepCopy()
	cp.PageCount = 99
	cp.Children[0].AppCount = 99
	*cp.Children[0].Title = "mutated"
	*cp.Children[0].Children[0].Title = "mutated"

	if orig.PageCount != 1 {
		t.Errorf("original pageCount mutated: %d", orig.PageCount)
	}
	if orig.Children[0].AppCount != 1 {
		t.Errorf("original page appCount mutated: %d", orig.Children[0].AppCount)
	}
	if *orig.Children[0].Title != "Dashboard" {
		t.Errorf("original page title mutated: %q", *orig.Children[0].Title)
	}
	if *orig.Children[0].Children[0].Title != "foo" {
		t.Errorf("original app title mutated: %q", *orig.Children[0].Children[0].Title)
	}
}
