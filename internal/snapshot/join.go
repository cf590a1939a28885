package snapshot

// RoleApps merges the two independent linkage sources for a role: the
// applications whose relation-target list names the role id, and the
// applications named in the role's direct relations. The union is
// deduplicated by application id preserving first-seen order; an application
// appears once even when both sources name it. Id-less application records
// contribute a single nil entry.
func (s *Snapshot) RoleApps(role Role) []*string {
	apps := make([]*string, 0)
	seen := make(map[string]bool)
	seenNil := false

	add := func(id *string) {
		if id == nil {
			if seenNil {
				return
			}
			seenNil = true
			apps = append(apps, nil)
			return
		}
		if seen[*id] {
			return
		}
		seen[*id] = true
		apps = append(apps, id)
	}

	if role.ID != nil {
		for i := range s.Apps {
			for _, target := range s.Apps[i].RoleTargets {
				if target == *role.ID {
					add(s.Apps[i].ID)
					break
				}
			}
		}
	}

	for _, id := range s.Relations(role.ID).Apps {
		id := id
		add(&id)
	}

	return apps
}
