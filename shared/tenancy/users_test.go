package tenancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteUserPermissionsFromRoleTable(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	org, err := r.CreateOrganization(OrganizationInput{Name: "Acme"})
	require.NoError(t, err)

	tests := []struct {
		role     string
		wantRole Role
		want     []string
	}{
		{"platform-admin", RolePlatformAdmin, []string{"all"}},
		{"system-admin", RolePlatformAdmin, []string{"all"}},
		{"firm-admin", RoleOrgAdmin, []string{"org-admin", "user-management", "client-management", "workflows", "ai-review", "reports", "settings"}},
		{"manager", RoleManager, []string{"workflows", "ai-review", "reports", "user-management"}},
		{"firm-user", RoleUser, []string{"workflows", "reports"}},
		{"auditor", Role("auditor"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			id, err := r.InviteUser(InviteInput{Email: tt.role + "@acme.com", Role: tt.role, OrganizationID: org})
			require.NoError(t, err)
			u, err := r.User(id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, u.Role)
			assert.Equal(t, tt.want, u.Permissions)
		})
	}
}

func TestInviteUserValidation(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	org, err := r.CreateOrganization(OrganizationInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = r.InviteUser(InviteInput{Role: "user", OrganizationID: org})
	assert.True(t, IsInvalidInput(err))
	_, err = r.InviteUser(InviteInput{Email: "a@acme.com", OrganizationID: org})
	assert.True(t, IsInvalidInput(err))
	_, err = r.InviteUser(InviteInput{Email: "a@acme.com", Role: "user"})
	assert.True(t, IsInvalidInput(err))
	_, err = r.InviteUser(InviteInput{Email: "a@acme.com", Role: "user", OrganizationID: "missing"})
	assert.True(t, IsNotFound(err))

	id, err := r.InviteUser(InviteInput{Email: "root@contaia.com", Role: "platform-admin"})
	require.NoError(t, err)
	u, err := r.User(id)
	require.NoError(t, err)
	assert.Empty(t, u.OrganizationID)

	// no email format check
	_, err = r.InviteUser(InviteInput{Email: "not-an-email", Role: "user", OrganizationID: org})
	assert.NoError(t, err)
}

func TestUpdateUserRoleRecomputesPermissions(t *testing.T) {
	r, _, rec := newTestRegistry(t)
	org, err := r.CreateOrganization(OrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	id, err := r.InviteUser(InviteInput{Email: "bob@acme.com", Role: "user", OrganizationID: org})
	require.NoError(t, err)

	require.NoError(t, r.UpdateUserRole(id, "firm-admin"))
	u, err := r.User(id)
	require.NoError(t, err)
	assert.Equal(t, RoleOrgAdmin, u.Role)
	assert.True(t, HasPermission(u, PermissionSettings))
	assert.Contains(t, rec.types(), EventUserRoleChanged)

	assert.True(t, IsNotFound(r.UpdateUserRole("missing", "user")))
}

func TestUpdateUser(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	org, err := r.CreateOrganization(OrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	id, err := r.InviteUser(InviteInput{
		Email: "bob@acme.com", Role: "user", OrganizationID: org,
		Metadata: map[string]any{"department": "Tax", "phone": "1"},
	})
	require.NoError(t, err)

	name := "Bob"
	status := UserActive
	seen := At(time.Date(2024, 6, 24, 14, 30, 0, 0, time.UTC))
	require.NoError(t, r.UpdateUser(id, UserPatch{
		Name:       &name,
		Status:     &status,
		LastActive: &seen,
		Metadata:   map[string]any{"phone": nil, "title": "Senior"},
	}))

	u, err := r.User(id)
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)
	assert.Equal(t, UserActive, u.Status)
	assert.False(t, u.LastActive.IsNever())
	assert.Equal(t, map[string]any{"department": "Tax", "title": "Senior"}, u.Metadata)
	assert.Equal(t, []string{"workflows", "reports"}, u.Permissions)

	bad := UserStatus("deleted")
	assert.True(t, IsInvalidInput(r.UpdateUser(id, UserPatch{Status: &bad})))
}

func TestOverridePermissions(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	org, err := r.CreateOrganization(OrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	id, err := r.InviteUser(InviteInput{Email: "bob@acme.com", Role: "user", OrganizationID: org})
	require.NoError(t, err)

	require.NoError(t, r.OverridePermissions(id, []string{"reports", "settings", "reports"}))
	u, err := r.User(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"reports", "settings"}, u.Permissions)

	ok, err := r.HasPermission(id, "workflows")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.OverridePermissions(id, nil))
	ok, err = r.HasPermission(id, "reports")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, IsInvalidInput(r.OverridePermissions(id, []string{""})))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(&User{Permissions: []string{"all"}}, "anything"))
	assert.True(t, HasPermission(&User{Permissions: []string{"reports"}}, "reports"))
	assert.False(t, HasPermission(&User{Permissions: []string{"reports"}}, "report"))
	assert.False(t, HasPermission(&User{Permissions: []string{}}, "reports"))
	assert.False(t, HasPermission(nil, "reports"))
}

func TestSuspendAndDeleteUser(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	org, err := r.CreateOrganization(OrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	id, err := r.InviteUser(InviteInput{Email: "bob@acme.com", Role: "user", OrganizationID: org})
	require.NoError(t, err)

	require.NoError(t, r.SuspendUser(id))
	u, err := r.User(id)
	require.NoError(t, err)
	assert.Equal(t, UserSuspended, u.Status)

	// permissions are independent of status
	assert.True(t, HasPermission(u, "reports"))

	require.NoError(t, r.DeleteUser(id))
	assert.True(t, IsNotFound(r.DeleteUser(id)))
	assert.True(t, IsNotFound(r.SuspendUser(id)))
}

func TestUsersFilter(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	a, err := r.CreateOrganization(OrganizationInput{Name: "A"})
	require.NoError(t, err)
	b, err := r.CreateOrganization(OrganizationInput{Name: "B"})
	require.NoError(t, err)
	_, err = r.InviteUser(InviteInput{Email: "1@a.com", Role: "manager", OrganizationID: a})
	require.NoError(t, err)
	_, err = r.InviteUser(InviteInput{Email: "2@a.com", Role: "user", OrganizationID: a})
	require.NoError(t, err)
	_, err = r.InviteUser(InviteInput{Email: "3@b.com", Role: "user", OrganizationID: b})
	require.NoError(t, err)

	all, err := r.Users(UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	inA, err := r.Users(UserFilter{OrganizationID: a})
	require.NoError(t, err)
	assert.Len(t, inA, 2)

	plain, err := r.Users(UserFilter{Role: RoleUser})
	require.NoError(t, err)
	assert.Len(t, plain, 2)

	none, err := r.Users(UserFilter{Status: UserActive})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRoleChangeRequiresOrganization(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	root, err := r.InviteUser(InviteInput{Email: "root@contaia.com", Role: "platform-admin"})
	require.NoError(t, err)

	for _, role := range []string{"manager", "firm-admin", "user", "auditor"} {
		err := r.UpdateUserRole(root, role)
		assert.True(t, IsInvalidInput(err), role)
		assert.ErrorContains(t, err, "organization_id is required")
	}

	u, err := r.User(root)
	require.NoError(t, err)
	assert.Equal(t, RolePlatformAdmin, u.Role)
	assert.Empty(t, u.OrganizationID)
	assert.Equal(t, []string{"all"}, u.Permissions)

	require.NoError(t, r.UpdateUserRole(root, "system-admin"))
}

func TestAssignRole(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	acme, err := r.CreateOrganization(OrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	other, err := r.CreateOrganization(OrganizationInput{Name: "Other"})
	require.NoError(t, err)

	invite := func(email, role, org string) string {
		id, err := r.InviteUser(InviteInput{Email: email, Role: role, OrganizationID: org})
		require.NoError(t, err)
		return id
	}
	root := invite("root@contaia.com", "platform-admin", "")
	admin := invite("admin@acme.com", "org-admin", acme)
	manager := invite("manager@acme.com", "manager", acme)
	staff := invite("staff@acme.com", "user", acme)
	outsider := invite("staff@other.com", "user", other)

	// up to the actor's own level
	require.NoError(t, r.AssignRole(admin, staff, "manager"))
	require.NoError(t, r.AssignRole(admin, staff, "firm-admin"))
	u, err := r.User(staff)
	require.NoError(t, err)
	assert.Equal(t, RoleOrgAdmin, u.Role)

	tests := []struct {
		name          string
		actor, target string
		role          string
	}{
		{"peer", admin, staff, "user"},
		{"above own level", manager, invite("b@acme.com", "user", acme), "org-admin"},
		{"self", manager, manager, "user"},
		{"other organization", admin, outsider, "manager"},
		{"platform admin target", admin, root, "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsForbidden(r.AssignRole(tt.actor, tt.target, tt.role)))
		})
	}

	require.NoError(t, r.AssignRole(root, outsider, "firm-admin"))
	require.NoError(t, r.AssignRole(root, admin, "platform-admin"))

	assert.True(t, IsNotFound(r.AssignRole("missing", staff, "user")))
	assert.True(t, IsNotFound(r.AssignRole(root, "missing", "user")))
	assert.True(t, IsInvalidInput(r.AssignRole(root, staff, " ")))
}
