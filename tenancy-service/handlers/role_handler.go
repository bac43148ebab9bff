package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contaia-backend/shared/tenancy"
)

// RoleResponse represents role data for API responses
type RoleResponse struct {
	Role        tenancy.Role `json:"role"`
	Level       int          `json:"level"`
	Aliases     []string     `json:"aliases"`
	Permissions []string     `json:"permissions"`
}

// GetRoles returns the effective role table
// @Summary Get roles
// @Description Canonical roles from highest to lowest with their aliases and granted permissions.
// @Tags roles
// @Produce json
// @Success 200 {object} Response
// @Router /roles [get]
func (h *Handler) GetRoles(c *gin.Context) {
	t := h.registry.Roles()
	roles := make([]RoleResponse, 0, 4)
	for _, r := range t.Roles() {
		roles = append(roles, RoleResponse{
			Role:        r,
			Level:       r.Level(),
			Aliases:     t.Aliases(r),
			Permissions: t.PermissionsFor(string(r)),
		})
	}
	respond(c, http.StatusOK, roles, "")
}
