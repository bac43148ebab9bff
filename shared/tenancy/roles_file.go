package tenancy

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// RolesFile is the on-disk override format:
//
//	version: 1
//	roles:
//	  manager: [workflows, ai-review, reports]
//	aliases:
//	  accountant: user
type RolesFile struct {
	Version int                 `yaml:"version"`
	Roles   map[string][]string `yaml:"roles"`
	Aliases map[string]string   `yaml:"aliases"`
}

func ParseRolesYAML(b []byte) (RolesFile, error) {
	var f RolesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return RolesFile{}, err
	}
	if f.Version != 1 {
		return RolesFile{}, errors.New("roles: unsupported version")
	}
	return f, nil
}

// Apply overrides permission sets and adds aliases. Keys must name canonical
// roles.
func (f RolesFile) Apply(t *RoleTable) error {
	for name, perms := range f.Roles {
		r := Role(name)
		if r.Level() == 0 {
			return fmt.Errorf("roles: unknown role %q", name)
		}
		t.setPermissions(r, perms)
	}
	for label, target := range f.Aliases {
		r := Role(target)
		if r.Level() == 0 {
			return fmt.Errorf("roles: alias %q targets unknown role %q", label, target)
		}
		t.addAlias(label, r)
	}
	return nil
}

// LoadRoleTable builds the default table for opts and applies the file at
// path when path is not empty.
func LoadRoleTable(path string, opts RoleOptions) (*RoleTable, error) {
	t := NewRoleTable(opts)
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roles file: %w", err)
	}
	f, err := ParseRolesYAML(b)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Export renders the table in the override format. Canonical names are not
// listed as aliases.
func (t *RoleTable) Export() RolesFile {
	f := RolesFile{
		Version: 1,
		Roles:   make(map[string][]string, len(t.permissions)),
		Aliases: make(map[string]string),
	}
	for r, perms := range t.permissions {
		f.Roles[string(r)] = slices.Clone(perms)
	}
	for label, r := range t.aliases {
		if label != string(r) {
			f.Aliases[label] = string(r)
		}
	}
	return f
}
