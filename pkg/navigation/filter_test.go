package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldware/sitecheck/pkg/session"
	"github.com/fieldware/sitecheck/pkg/types"
)

func testTree() []types.NavigationItem {
	return []types.NavigationItem{
		{Key: "overview", Title: "Overview", Href: "/"},
		{
			Key:   "checklists",
			Title: "Checklists",
			Children: []types.NavigationItem{
				{Key: "concrete_pour", Title: "Concrete Pour", Href: "/checklists/concrete_pour"},
				{Key: "earthing", Title: "Earthing", Href: "/checklists/earthing"},
			},
		},
		{Key: "worker", Title: "Workers", Href: "/workers", Match: types.MatchPrefix},
		{Key: "manpower", Title: "Manpower", Href: "/manpower"},
		{Key: "permits", Title: "Permits To Work", Href: "/permits", Match: types.MatchPrefix},
	}
}

func keysOf(items []types.NavigationItem) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	return keys
}

func TestFilter_SubContractor(t *testing.T) {
	got := Filter(testTree(), session.RoleSubContractor)
	require.Equal(t, []string{"checklists", "worker", "manpower", "permits"}, keysOf(got))
}

func TestFilter_QualityInspector(t *testing.T) {
	got := Filter(testTree(), session.RoleQualityInspector)
	require.Equal(t, []string{"checklists", "permits"}, keysOf(got))
	// children of retained parents survive untouched
	require.Equal(t, []string{"concrete_pour", "earthing"}, keysOf(got[0].Children))
}

func TestFilter_AdminSeesEverything(t *testing.T) {
	tree := testTree()
	got := Filter(tree, session.RoleAdmin)
	require.Equal(t, keysOf(tree), keysOf(got))
}

func TestFilter_UnknownRoleDenied(t *testing.T) {
	got := Filter(testTree(), session.Role("superuser"))
	require.Empty(t, got)
}

func TestFilter_Idempotent(t *testing.T) {
	once := Filter(testTree(), session.RoleQualityInspector)
	twice := Filter(once, session.RoleQualityInspector)
	require.Equal(t, once, twice)
}

func TestFilter_NeverAdds(t *testing.T) {
	tree := testTree()
	for role := range map[session.Role]struct{}{
		session.RoleAdmin:            {},
		session.RoleSiteManager:      {},
		session.RoleQualityInspector: {},
		session.RoleSafetyOfficer:    {},
		session.RoleSubContractor:    {},
		session.RoleClient:           {},
	} {
		got := Filter(tree, role)
		require.LessOrEqual(t, len(got), len(tree), "role %s", role)
	}
}

func TestNavigationItem_IsActive(t *testing.T) {
	exact := types.NavigationItem{Key: "manpower", Href: "/manpower"}
	require.True(t, exact.IsActive("/manpower"))
	require.False(t, exact.IsActive("/manpower/today"))

	prefix := types.NavigationItem{Key: "permits", Href: "/permits", Match: types.MatchPrefix}
	require.True(t, prefix.IsActive("/permits/15"))
	require.False(t, prefix.IsActive("/checklists"))

	parent := types.NavigationItem{Key: "checklists", Children: []types.NavigationItem{{Key: "earthing", Href: "/checklists/earthing"}}}
	require.False(t, parent.IsActive("/checklists/earthing"), "parents do not auto-activate for active descendants")
}
