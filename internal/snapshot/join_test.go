package snapshot

import "testing"

func strPtr(s string) *string { return &s }

func TestRoleAppsUnionPreservesOrder(t *testing.T) {
	roleID := "R1"
	snap := New()
	snap.Apps = []App{
		{ID: strPtr("app.target"), RoleTargets: []string{"R1"}},
		{ID: strPtr("app.other"), RoleTargets: []string{"R2"}},
		{ID: strPtr("app.both"), RoleTargets: []string{"R1"}},
	}
	snap.DirectRelations["R1"] = DirectRelation{Apps: []string{"app.direct", "app.both"}}

	apps := snap.RoleApps(Role{ID: &roleID})

	want := []string{"app.target", "app.both", "app.direct"}
	if len(apps) != len(want) {
		t.Fatalf("expected %d apps, got %d: %v", len(want), len(apps), apps)
	}
	for i, w := range want {
		if apps[i] == nil || *apps[i] != w {
			t.Errorf("apps[%d] = %v, want %q", i, apps[i], w)
		}
	}
}

func TestRoleAppsDedupesDirectEntries(t *testing.T) {
	roleID := "R1"
	snap := New()
	snap.DirectRelations["R1"] = DirectRelation{Apps: []string{"app.a", "app.a", "app.b"}}

	apps := snap.RoleApps(Role{ID: &roleID})
	if len(apps) != 2 {
		t.Errorf("expected 2 deduplicated apps, got %d: %v", len(apps), apps)
	}
}

func TestRoleAppsNilAppID(t *testing.T) {
	roleID := "R1"
	snap := New()
	snap.Apps = []App{
		{ID: nil, RoleTargets: []string{"R1"}},
		{ID: nil, RoleTargets: []string{"R1"}},
		{ID: strPtr("app.real"), RoleTargets: []string{"R1"}},
	}

	apps := snap.RoleApps(Role{ID: &roleID})

	// Id-less records collapse to one nil entry.
	if len(apps) != 2 {
		t.Fatalf("expected 2 apps, got %d: %v", len(apps), apps)
	}
	if apps[0] != nil {
		t.Errorf("expected first entry nil, got %q", *apps[0])
	}
	if apps[1] == nil || *apps[1] != "app.real" {
		t.Errorf("expected second entry app.real, got %v", apps[1])
	}
}

func TestRoleAppsNilRoleID(t *testing.T) {
	snap := New()
	snap.Apps = []App{
		{ID: strPtr("app.a"), RoleTargets: []string{"R1"}},
	}

	// A nil role id cannot match targets and has no relation key.
	apps := snap.RoleApps(Role{ID: nil})
	if len(apps) != 0 {
		t.Errorf("expected no apps for id-less role, got %v", apps)
	}
}

func TestRoleAppsEmpty(t *testing.T) {
	roleID := "R1"
	apps := New().RoleApps(Role{ID: &roleID})
	if apps == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(apps) != 0 {
		t.Errorf("expected no apps, got %v", apps)
	}
}
