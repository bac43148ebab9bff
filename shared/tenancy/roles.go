package tenancy

import (
	"slices"
	"sort"
)

// Role is the label stored on a user. Recognized labels are normalized to one
// of the canonical roles below; anything else is kept verbatim and grants
// nothing.
type Role string

const (
	RolePlatformAdmin Role = "platform-admin"
	RoleOrgAdmin      Role = "org-admin"
	RoleManager       Role = "manager"
	RoleUser          Role = "user"
)

// Level orders the canonical roles; unrecognized roles rank 0.
func (r Role) Level() int {
	switch r {
	case RolePlatformAdmin:
		return 4
	case RoleOrgAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleUser:
		return 1
	}
	return 0
}

// Outranks reports whether r sits strictly above other in the hierarchy.
func (r Role) Outranks(other Role) bool { return r.Level() > other.Level() }

// Permission tokens.
const (
	PermissionAll              = "all"
	PermissionOrgAdmin         = "org-admin"
	PermissionUserManagement   = "user-management"
	PermissionClientManagement = "client-management"
	PermissionWorkflows        = "workflows"
	PermissionAIReview         = "ai-review"
	PermissionReports          = "reports"
	PermissionSettings         = "settings"
	PermissionClientData       = "client-data"
)

// RoleOptions select between the permission variants the dashboards used.
type RoleOptions struct {
	// FirmHierarchy grants org admins client-management.
	FirmHierarchy bool
	// ManagerUserManagement grants managers user-management.
	ManagerUserManagement bool
	// UserClientData grants plain users client-data.
	UserClientData bool
}

func DefaultRoleOptions() RoleOptions {
	return RoleOptions{FirmHierarchy: true, ManagerUserManagement: true}
}

// RoleTable maps role labels to the permission set granted at invite time.
type RoleTable struct {
	permissions map[Role][]string
	aliases     map[string]Role
}

func NewRoleTable(opts RoleOptions) *RoleTable {
	orgAdmin := []string{PermissionOrgAdmin, PermissionUserManagement}
	if opts.FirmHierarchy {
		orgAdmin = append(orgAdmin, PermissionClientManagement)
	}
	orgAdmin = append(orgAdmin, PermissionWorkflows, PermissionAIReview, PermissionReports, PermissionSettings)

	manager := []string{PermissionWorkflows, PermissionAIReview, PermissionReports}
	if opts.ManagerUserManagement {
		manager = append(manager, PermissionUserManagement)
	}

	user := []string{PermissionWorkflows, PermissionReports}
	if opts.UserClientData {
		user = append(user, PermissionClientData)
	}

	return &RoleTable{
		permissions: map[Role][]string{
			RolePlatformAdmin: {PermissionAll},
			RoleOrgAdmin:      orgAdmin,
			RoleManager:       manager,
			RoleUser:          user,
		},
		aliases: map[string]Role{
			"platform-admin": RolePlatformAdmin,
			"system-admin":   RolePlatformAdmin,
			"org-admin":      RoleOrgAdmin,
			"firm-admin":     RoleOrgAdmin,
			"client-admin":   RoleOrgAdmin,
			"manager":        RoleManager,
			"firm-manager":   RoleManager,
			"user":           RoleUser,
			"firm-user":      RoleUser,
		},
	}
}

// Resolve normalizes a label to its canonical role.
func (t *RoleTable) Resolve(label string) (Role, bool) {
	r, ok := t.aliases[label]
	return r, ok
}

// Normalize returns the canonical role for label, or label itself when it is
// not recognized.
func (t *RoleTable) Normalize(label string) Role {
	if r, ok := t.Resolve(label); ok {
		return r
	}
	return Role(label)
}

// PermissionsFor returns a fresh copy of the set for label. Unrecognized
// labels get an empty, non-nil set.
func (t *RoleTable) PermissionsFor(label string) []string {
	r, ok := t.Resolve(label)
	if !ok {
		return []string{}
	}
	return slices.Clone(t.permissions[r])
}

// Roles lists the canonical roles from highest to lowest.
func (t *RoleTable) Roles() []Role {
	roles := make([]Role, 0, len(t.permissions))
	for r := range t.permissions {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool {
		if roles[i].Level() != roles[j].Level() {
			return roles[i].Level() > roles[j].Level()
		}
		return roles[i] < roles[j]
	})
	return roles
}

// Aliases returns the labels that resolve to r, sorted.
func (t *RoleTable) Aliases(r Role) []string {
	var out []string
	for label, target := range t.aliases {
		if target == r {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

func (t *RoleTable) setPermissions(r Role, perms []string) {
	t.permissions[r] = slices.Clone(perms)
}

func (t *RoleTable) addAlias(label string, r Role) {
	t.aliases[label] = r
}

// HasPermission is true when the user holds "all" or exactly permission.
func HasPermission(u *User, permission string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == PermissionAll || p == permission {
			return true
		}
	}
	return false
}
