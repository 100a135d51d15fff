package session

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the closed set of dashboard roles. The legacy client treated an
// unrecognized role as "see everything"; here parsing fails instead and the
// navigation layer denies by default.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleSiteManager      Role = "site_manager"
	RoleQualityInspector Role = "quality_inspector"
	RoleSafetyOfficer    Role = "safety_officer"
	RoleSubContractor    Role = "sub_contractor"
	RoleClient           Role = "client"
)

var allRoles = map[Role]struct{}{
	RoleAdmin:            {},
	RoleSiteManager:      {},
	RoleQualityInspector: {},
	RoleSafetyOfficer:    {},
	RoleSubContractor:    {},
	RoleClient:           {},
}

func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := allRoles[role]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
	return role, nil
}

func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

// Session carries the credentials the dashboard shell persists client-side
// (access token, selected work site, role). It is injected explicitly into
// every request context instead of being read from ambient storage, so
// issuance and invalidation stay visible.
type Session struct {
	Token      string
	WorkSiteID string
	Role       Role
}

func (s Session) Authorization() string {
	return "Bearer " + s.Token
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.WorkSiteID != ""
}
