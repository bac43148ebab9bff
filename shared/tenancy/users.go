package tenancy

import (
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/go-memdb"
)

// InviteInput describes a user to add. OrganizationID may be empty only for
// a platform admin. An empty Name is derived from the email's local part.
type InviteInput struct {
	Email          string         `json:"email" validate:"required"`
	Name           string         `json:"name"`
	Role           string         `json:"role" validate:"required"`
	OrganizationID string         `json:"organization_id"`
	Metadata       map[string]any `json:"metadata"`
}

// UserPatch replaces the fields that are set. Metadata keys are merged; a
// nil value removes the key. A role change recomputes permissions.
type UserPatch struct {
	Email      *string        `json:"email"`
	Name       *string        `json:"name"`
	Role       *string        `json:"role"`
	Status     *UserStatus    `json:"status" validate:"omitempty,oneof=active inactive pending suspended"`
	LastActive *Timestamp     `json:"last_active"`
	Metadata   map[string]any `json:"metadata"`
}

func (p UserPatch) empty() bool {
	return p.Email == nil && p.Name == nil && p.Role == nil && p.Status == nil &&
		p.LastActive == nil && len(p.Metadata) == 0
}

// UserFilter narrows Users. Zero fields match everything.
type UserFilter struct {
	OrganizationID string
	Role           Role
	Status         UserStatus
}

func (f UserFilter) match(u *User) bool {
	if f.OrganizationID != "" && u.OrganizationID != f.OrganizationID {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.Status != "" && u.Status != f.Status {
		return false
	}
	return true
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// InviteUser adds a pending user whose permissions come from the role table
// and bumps the organization's user count.
func (r *Registry) InviteUser(in InviteInput) (string, error) {
	if err := check(EntityUser, in); err != nil {
		return "", err
	}
	if blank(in.Email) {
		return "", invalidInput(EntityUser, "email is required")
	}
	if blank(in.Role) {
		return "", invalidInput(EntityUser, "role is required")
	}
	role := r.roles.Normalize(in.Role)
	if in.OrganizationID == "" && role != RolePlatformAdmin {
		return "", invalidInput(EntityUser, "organization_id is required for role %s", role)
	}
	name := in.Name
	if name == "" {
		name = nameFromEmail(in.Email)
	}

	id := r.newID()
	err := r.update(func(w *writeTxn) error {
		u := &User{
			ID:             id,
			Email:          in.Email,
			Name:           name,
			Role:           role,
			OrganizationID: in.OrganizationID,
			Permissions:    r.roles.PermissionsFor(in.Role),
			Status:         UserPending,
			CreatedAt:      w.at,
			Metadata:       maps.Clone(in.Metadata),
		}
		var org *Organization
		if u.OrganizationID != "" {
			stored, err := organizations.get(w.Txn, u.OrganizationID)
			if err != nil {
				return err
			}
			org = stored.clone()
			org.Usage.CurrentUsers++
			org.Usage.LastUpdated = w.at
			if err := organizations.put(w.Txn, org); err != nil {
				return err
			}
		}
		if err := users.put(w.Txn, u); err != nil {
			return err
		}
		w.emit(EventUserInvited, EntityUser, id, u.OrganizationID, map[string]any{"email": u.Email, "role": string(u.Role)})
		if org != nil {
			r.flagQuota(w, org, ResourceUsers)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateUser applies patch to the user.
func (r *Registry) UpdateUser(id string, patch UserPatch) error {
	if err := check(EntityUser, patch); err != nil {
		return err
	}
	if patch.Email != nil && blank(*patch.Email) {
		return invalidInput(EntityUser, "email cannot be empty")
	}
	if patch.Role != nil && blank(*patch.Role) {
		return invalidInput(EntityUser, "role cannot be empty")
	}
	return r.update(func(w *writeTxn) error {
		return r.patchUser(w, id, patch)
	})
}

func (r *Registry) patchUser(w *writeTxn, id string, patch UserPatch) error {
	stored, err := users.get(w.Txn, id)
	if err != nil {
		return err
	}
	if patch.empty() {
		return nil
	}
	u := stored.clone()
	set(&u.Email, patch.Email)
	set(&u.Name, patch.Name)
	set(&u.Status, patch.Status)
	set(&u.LastActive, patch.LastActive)
	if len(patch.Metadata) > 0 {
		if u.Metadata == nil {
			u.Metadata = make(map[string]any, len(patch.Metadata))
		}
		for k, v := range patch.Metadata {
			if v == nil {
				delete(u.Metadata, k)
				continue
			}
			u.Metadata[k] = v
		}
	}
	roleChanged := false
	if patch.Role != nil {
		next := r.roles.Normalize(*patch.Role)
		if u.OrganizationID == "" && next != RolePlatformAdmin {
			return invalidInput(EntityUser, "organization_id is required for role %s", next)
		}
		roleChanged = next != stored.Role
		u.Role = next
		u.Permissions = r.roles.PermissionsFor(*patch.Role)
	}
	if err := users.put(w.Txn, u); err != nil {
		return err
	}
	w.emit(EventUserUpdated, EntityUser, id, u.OrganizationID, nil)
	if roleChanged {
		w.emit(EventUserRoleChanged, EntityUser, id, u.OrganizationID, map[string]any{
			"from": string(stored.Role),
			"to":   string(u.Role),
		})
	}
	return nil
}

// UpdateUserRole changes the user's role and resets its permissions to the
// role's set.
func (r *Registry) UpdateUserRole(id, role string) error {
	return r.UpdateUser(id, UserPatch{Role: &role})
}

// AssignRole is UpdateUserRole on behalf of actorID. A platform admin may
// assign any role. Anyone else must share the target's organization, outrank
// its current role and not grant a role above their own.
func (r *Registry) AssignRole(actorID, id, role string) error {
	if blank(role) {
		return invalidInput(EntityUser, "role cannot be empty")
	}
	return r.update(func(w *writeTxn) error {
		actor, err := users.get(w.Txn, actorID)
		if err != nil {
			return err
		}
		target, err := users.get(w.Txn, id)
		if err != nil {
			return err
		}
		next := r.roles.Normalize(role)
		if actor.Role != RolePlatformAdmin {
			if actor.OrganizationID != target.OrganizationID {
				return forbidden(EntityUser, id, "%s belongs to another organization", id)
			}
			if !actor.Role.Outranks(target.Role) || next.Outranks(actor.Role) {
				return forbidden(EntityUser, id, "role %s cannot assign %s to a %s", actor.Role, next, target.Role)
			}
		}
		return r.patchUser(w, id, UserPatch{Role: &role})
	})
}

// OverridePermissions replaces the user's permission set outright,
// independent of its role.
func (r *Registry) OverridePermissions(id string, permissions []string) error {
	perms := make([]string, 0, len(permissions))
	for _, p := range permissions {
		if blank(p) {
			return invalidInput(EntityUser, "permission cannot be empty")
		}
		if !slices.Contains(perms, p) {
			perms = append(perms, p)
		}
	}
	return r.update(func(w *writeTxn) error {
		stored, err := users.get(w.Txn, id)
		if err != nil {
			return err
		}
		u := stored.clone()
		u.Permissions = perms
		if err := users.put(w.Txn, u); err != nil {
			return err
		}
		w.emit(EventUserUpdated, EntityUser, id, u.OrganizationID, map[string]any{"permissions": slices.Clone(perms)})
		return nil
	})
}

func (r *Registry) SuspendUser(id string) error {
	return r.update(func(w *writeTxn) error {
		stored, err := users.get(w.Txn, id)
		if err != nil {
			return err
		}
		u := stored.clone()
		u.Status = UserSuspended
		if err := users.put(w.Txn, u); err != nil {
			return err
		}
		w.emit(EventUserSuspended, EntityUser, id, u.OrganizationID, nil)
		return nil
	})
}

// DeleteUser removes the user and decrements its organization's user count.
func (r *Registry) DeleteUser(id string) error {
	return r.update(func(w *writeTxn) error {
		u, err := users.get(w.Txn, id)
		if err != nil {
			return err
		}
		if err := users.remove(w.Txn, u); err != nil {
			return err
		}
		if u.OrganizationID != "" {
			stored, err := organizations.get(w.Txn, u.OrganizationID)
			if err != nil && !IsNotFound(err) {
				return err
			}
			if stored != nil {
				o := stored.clone()
				if o.Usage.CurrentUsers > 0 {
					o.Usage.CurrentUsers--
				}
				o.Usage.LastUpdated = w.at
				if err := organizations.put(w.Txn, o); err != nil {
					return err
				}
			}
		}
		w.removed.users = append(w.removed.users, id)
		w.emit(EventUserDeleted, EntityUser, id, u.OrganizationID, nil)
		return nil
	})
}

func (r *Registry) User(id string) (*User, error) {
	var out *User
	err := r.view(func(txn *memdb.Txn) error {
		u, err := users.get(txn, id)
		if err != nil {
			return err
		}
		out = u.clone()
		return nil
	})
	return out, err
}

// Users lists the users matching f, oldest first.
func (r *Registry) Users(f UserFilter) ([]*User, error) {
	var out []*User
	err := r.view(func(txn *memdb.Txn) error {
		var (
			rows []*User
			err  error
		)
		if f.OrganizationID != "" {
			rows, err = users.ownedBy(txn, f.OrganizationID)
		} else {
			rows, err = users.all(txn)
		}
		if err != nil {
			return err
		}
		out = make([]*User, 0, len(rows))
		for _, u := range rows {
			if f.match(u) {
				out = append(out, u.clone())
			}
		}
		return nil
	})
	return out, err
}

// HasPermission looks the user up and checks permission against its set.
func (r *Registry) HasPermission(userID, permission string) (bool, error) {
	u, err := r.User(userID)
	if err != nil {
		return false, err
	}
	return HasPermission(u, permission), nil
}
