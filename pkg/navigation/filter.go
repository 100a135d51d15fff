// Package navigation filters the static navigation tree by role.
//
// Filtering only ever removes entries, preserves relative order and is
// idempotent. Unlike the legacy dashboard, which showed the full tree to any
// role it did not recognize, an invalid role sees nothing.
package navigation

import (
	"slices"

	"github.com/fieldware/sitecheck/pkg/session"
	"github.com/fieldware/sitecheck/pkg/types"
)

// excludedKeys maps each role to the navigation keys hidden from it.
// Admin is the explicit "all" role and has no exclusions.
var excludedKeys = map[session.Role][]string{
	session.RoleAdmin:            {},
	session.RoleSiteManager:      {},
	session.RoleSafetyOfficer:    {"manpower"},
	session.RoleSubContractor:    {"overview"},
	session.RoleQualityInspector: {"overview", "worker", "manpower"},
	session.RoleClient:           {"overview", "worker", "manpower", "checklists"},
}

// Filter returns the subset of items visible to the role, recursing into
// children. Unknown roles get an empty tree.
func Filter(items []types.NavigationItem, role session.Role) []types.NavigationItem {
	excluded, ok := excludedKeys[role]
	if !ok {
		return []types.NavigationItem{}
	}

	visible := make([]types.NavigationItem, 0, len(items))
	for _, item := range items {
		if slices.Contains(excluded, item.Key) {
			continue
		}
		item.Children = Filter(item.Children, role)
		visible = append(visible, item)
	}
	return visible
}
