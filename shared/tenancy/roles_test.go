package tenancy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRoleTableVariants(t *testing.T) {
	flat := NewRoleTable(RoleOptions{})
	assert.NotContains(t, flat.PermissionsFor("org-admin"), PermissionClientManagement)
	assert.NotContains(t, flat.PermissionsFor("manager"), PermissionUserManagement)
	assert.NotContains(t, flat.PermissionsFor("user"), PermissionClientData)

	full := NewRoleTable(RoleOptions{FirmHierarchy: true, ManagerUserManagement: true, UserClientData: true})
	assert.Contains(t, full.PermissionsFor("client-admin"), PermissionClientManagement)
	assert.Contains(t, full.PermissionsFor("firm-manager"), PermissionUserManagement)
	assert.Equal(t, []string{"workflows", "reports", "client-data"}, full.PermissionsFor("firm-user"))
}

func TestRoleTableResolve(t *testing.T) {
	tbl := NewRoleTable(DefaultRoleOptions())

	r, ok := tbl.Resolve("system-admin")
	assert.True(t, ok)
	assert.Equal(t, RolePlatformAdmin, r)

	_, ok = tbl.Resolve("admin")
	assert.False(t, ok)
	assert.Equal(t, Role("admin"), tbl.Normalize("admin"))
	assert.Equal(t, []string{}, tbl.PermissionsFor("admin"))

	assert.Equal(t, []Role{RolePlatformAdmin, RoleOrgAdmin, RoleManager, RoleUser}, tbl.Roles())
	assert.Equal(t, []string{"client-admin", "firm-admin", "org-admin"}, tbl.Aliases(RoleOrgAdmin))
}

func TestPermissionsForReturnsCopy(t *testing.T) {
	tbl := NewRoleTable(DefaultRoleOptions())
	p := tbl.PermissionsFor("user")
	p[0] = "mutated"
	assert.Equal(t, "workflows", tbl.PermissionsFor("user")[0])
}

func TestRoleOutranks(t *testing.T) {
	assert.True(t, RolePlatformAdmin.Outranks(RoleOrgAdmin))
	assert.True(t, RoleManager.Outranks(RoleUser))
	assert.False(t, RoleUser.Outranks(RoleManager))
	assert.False(t, Role("auditor").Outranks(Role("x")))
}

func TestLoadRoleTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
roles:
  manager: [workflows, reports]
aliases:
  accountant: user
`), 0o600))

	tbl, err := LoadRoleTable(path, DefaultRoleOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"workflows", "reports"}, tbl.PermissionsFor("firm-manager"))
	assert.Equal(t, []string{"workflows", "reports"}, tbl.PermissionsFor("accountant"))
	assert.Equal(t, RoleUser, tbl.Normalize("accountant"))

	tbl, err = LoadRoleTable("", DefaultRoleOptions())
	require.NoError(t, err)
	assert.Contains(t, tbl.PermissionsFor("manager"), PermissionAIReview)
}

func TestParseRolesYAMLErrors(t *testing.T) {
	_, err := ParseRolesYAML([]byte("version: 2\n"))
	assert.Error(t, err)

	_, err = ParseRolesYAML([]byte("version: [\n"))
	assert.Error(t, err)

	f, err := ParseRolesYAML([]byte("version: 1\nroles:\n  auditor: [reports]\n"))
	require.NoError(t, err)
	assert.Error(t, f.Apply(NewRoleTable(DefaultRoleOptions())))

	f, err = ParseRolesYAML([]byte("version: 1\naliases:\n  boss: owner\n"))
	require.NoError(t, err)
	assert.Error(t, f.Apply(NewRoleTable(DefaultRoleOptions())))

	_, err = LoadRoleTable(filepath.Join(t.TempDir(), "missing.yaml"), DefaultRoleOptions())
	assert.Error(t, err)
}

func TestRegistryUsesInjectedRoleTable(t *testing.T) {
	tbl := NewRoleTable(RoleOptions{UserClientData: true})
	r, _, _ := newTestRegistry(t, WithRoleTable(tbl))
	org, err := r.CreateOrganization(OrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	id, err := r.InviteUser(InviteInput{Email: "a@acme.com", Role: "user", OrganizationID: org})
	require.NoError(t, err)

	ok, err := r.HasPermission(id, PermissionClientData)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, tbl, r.Roles())
}

func TestExportRoundTrip(t *testing.T) {
	src := NewRoleTable(DefaultRoleOptions())
	src.addAlias("accountant", RoleUser)

	f := src.Export()
	assert.NotContains(t, f.Aliases, "manager")
	assert.Equal(t, "user", f.Aliases["accountant"])

	b, err := yaml.Marshal(f)
	require.NoError(t, err)
	parsed, err := ParseRolesYAML(b)
	require.NoError(t, err)

	dst := NewRoleTable(RoleOptions{})
	require.NoError(t, parsed.Apply(dst))
	for _, r := range src.Roles() {
		assert.Equal(t, src.PermissionsFor(string(r)), dst.PermissionsFor(string(r)), r)
	}
	assert.Equal(t, RoleUser, dst.Normalize("accountant"))
}
