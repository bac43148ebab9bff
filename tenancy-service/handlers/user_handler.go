package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contaia-backend/shared/tenancy"
	"contaia-backend/shared/utils/query"
)

var userFields = query.Fields[*tenancy.User]{
	"name":            func(u *tenancy.User) string { return u.Name },
	"email":           func(u *tenancy.User) string { return u.Email },
	"role":            func(u *tenancy.User) string { return string(u.Role) },
	"status":          func(u *tenancy.User) string { return string(u.Status) },
	"organization_id": func(u *tenancy.User) string { return u.OrganizationID },
	"last_active":     func(u *tenancy.User) string { return u.LastActive.String() },
}

// UpdateRoleRequest changes a user's role. When AssignedBy is set the
// change is made on that user's behalf and checked against their rank.
type UpdateRoleRequest struct {
	Role       string `json:"role"`
	AssignedBy string `json:"assigned_by,omitempty"`
}

// OverridePermissionsRequest replaces a user's permission set.
type OverridePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// GetUsers lists users across organizations
// @Summary Get all users
// @Tags users
// @Produce json
// @Param organization_id query string false "Only users of this organization"
// @Param role query string false "Only users with this role (aliases accepted)"
// @Param status query string false "Only users with this status"
// @Param search query string false "Search term across name and email"
// @Param sort[field] query string false "Sort field (name, email, role, status, last_active)"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Success 200 {object} Response
// @Router /users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	h.listUsers(c, tenancy.UserFilter{
		OrganizationID: c.Query("organization_id"),
		Role:           roleFilter(h.registry.Roles(), c.Query("role")),
		Status:         tenancy.UserStatus(c.Query("status")),
	})
}

func roleFilter(t *tenancy.RoleTable, label string) tenancy.Role {
	if label == "" {
		return ""
	}
	return t.Normalize(label)
}

func (h *Handler) listUsers(c *gin.Context, f tenancy.UserFilter) {
	all, err := h.registry.Users(f)
	if err != nil {
		fail(c, err)
		return
	}
	items, pagination := query.Apply(all, query.ParseQueryParams(c), userFields, []string{"name", "email"})
	respond(c, http.StatusOK, ListResponse[*tenancy.User]{Items: items, Pagination: pagination}, "")
}

// InviteUser adds a pending user
// @Summary Invite a user
// @Description Permissions come from the role table. organization_id may be omitted only for a platform admin.
// @Tags users
// @Accept json
// @Produce json
// @Param user body tenancy.InviteInput true "Invitation"
// @Success 201 {object} Response "Created user id"
// @Failure 404 {object} Response "Organization not found"
// @Failure 422 {object} Response "Missing email, role or organization"
// @Router /users [post]
func (h *Handler) InviteUser(c *gin.Context) {
	var in tenancy.InviteInput
	if !bind(c, &in) {
		return
	}
	id, err := h.registry.InviteUser(in)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, CreatedResponse{ID: id}, "User invited successfully")
}

// GetUser returns one user
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "User not found"
// @Router /users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.registry.User(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, u, "")
}

// UpdateUser patches a user
// @Summary Update a user
// @Description A role change recomputes the permission set. Metadata keys merge; null removes a key.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param patch body tenancy.UserPatch true "Fields to change"
// @Success 200 {object} Response "Updated user"
// @Failure 404 {object} Response "User not found"
// @Failure 422 {object} Response "Invalid field value"
// @Router /users/{id} [patch]
func (h *Handler) UpdateUser(c *gin.Context) {
	var patch tenancy.UserPatch
	if !bind(c, &patch) {
		return
	}
	id := c.Param("id")
	if err := h.registry.UpdateUser(id, patch); err != nil {
		fail(c, err)
		return
	}
	h.respondUser(c, id, "User updated successfully")
}

// UpdateUserRole changes a user's role
// @Summary Update user role
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param role body UpdateRoleRequest true "New role"
// @Success 200 {object} Response "Updated user"
// @Failure 403 {object} Response "assigned_by may not grant this role"
// @Failure 404 {object} Response "User not found"
// @Failure 422 {object} Response "Missing role"
// @Router /users/{id}/role [put]
func (h *Handler) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if !bind(c, &req) {
		return
	}
	id := c.Param("id")
	var err error
	if req.AssignedBy != "" {
		err = h.registry.AssignRole(req.AssignedBy, id, req.Role)
	} else {
		err = h.registry.UpdateUserRole(id, req.Role)
	}
	if err != nil {
		fail(c, err)
		return
	}
	h.respondUser(c, id, "User role updated")
}

// OverridePermissions replaces a user's permission set
// @Summary Override user permissions
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param permissions body OverridePermissionsRequest true "New permission set"
// @Success 200 {object} Response "Updated user"
// @Failure 404 {object} Response "User not found"
// @Failure 422 {object} Response "Blank permission"
// @Router /users/{id}/permissions [put]
func (h *Handler) OverridePermissions(c *gin.Context) {
	var req OverridePermissionsRequest
	if !bind(c, &req) {
		return
	}
	id := c.Param("id")
	if err := h.registry.OverridePermissions(id, req.Permissions); err != nil {
		fail(c, err)
		return
	}
	h.respondUser(c, id, "User permissions updated")
}

// SuspendUser suspends one user
// @Summary Suspend a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "User not found"
// @Router /users/{id}/suspend [post]
func (h *Handler) SuspendUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.registry.SuspendUser(id); err != nil {
		fail(c, err)
		return
	}
	h.respondUser(c, id, "User suspended")
}

// DeleteUser removes a user
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "User not found"
// @Router /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.registry.DeleteUser(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "User deleted successfully")
}

// CheckPermission reports whether a user holds a permission
// @Summary Check a user permission
// @Tags permissions
// @Produce json
// @Param id path string true "User ID"
// @Param permission path string true "Permission name"
// @Success 200 {object} Response
// @Failure 404 {object} Response "User not found"
// @Router /users/{id}/permissions/{permission} [get]
func (h *Handler) CheckPermission(c *gin.Context) {
	res, err := h.checker.CheckPermission(c.Request.Context(), c.Param("id"), c.Param("permission"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, res, "")
}

func (h *Handler) respondUser(c *gin.Context, id, message string) {
	u, err := h.registry.User(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, u, message)
}
