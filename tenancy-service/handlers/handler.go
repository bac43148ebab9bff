package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contaia-backend/shared/database"
	"contaia-backend/shared/tenancy"
	"contaia-backend/shared/utils/permission"
)

// Handler serves the tenancy HTTP API over one registry.
type Handler struct {
	registry *tenancy.Registry
	checker  *permission.Checker
	audit    *database.AuditWriter
	logger   *zap.Logger
}

// New builds the handler. checker may be nil, in which case permission
// checks go straight to the registry; audit may be nil to disable the
// audit endpoint.
func New(registry *tenancy.Registry, checker *permission.Checker, audit *database.AuditWriter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if checker == nil {
		checker = permission.NewChecker(registry, nil, nil, logger)
	}
	return &Handler{registry: registry, checker: checker, audit: audit, logger: logger}
}

// Register mounts every API route under r.
func (h *Handler) Register(r gin.IRouter) {
	orgs := r.Group("/organizations")
	orgs.GET("", h.GetOrganizations)
	orgs.POST("", h.CreateOrganization)
	orgs.GET("/:id", h.GetOrganization)
	orgs.PATCH("/:id", h.UpdateOrganization)
	orgs.DELETE("/:id", h.DeleteOrganization)
	orgs.POST("/:id/suspend", h.SuspendOrganization)
	orgs.GET("/:id/usage", h.GetUsage)
	orgs.POST("/:id/usage", h.RecordUsage)
	orgs.PUT("/:id/limits", h.UpdateResourceLimits)
	orgs.GET("/:id/quota", h.GetQuota)
	orgs.GET("/:id/users", h.GetOrganizationUsers)
	orgs.GET("/:id/clients", h.GetClients)
	orgs.POST("/:id/clients", h.CreateClient)
	if h.audit != nil {
		orgs.GET("/:id/audit", h.GetAuditLog)
	}

	clients := r.Group("/clients")
	clients.GET("/:id", h.GetClient)
	clients.PATCH("/:id", h.UpdateClient)
	clients.DELETE("/:id", h.DeleteClient)

	users := r.Group("/users")
	users.GET("", h.GetUsers)
	users.POST("", h.InviteUser)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	users.PUT("/:id/role", h.UpdateUserRole)
	users.PUT("/:id/permissions", h.OverridePermissions)
	users.POST("/:id/suspend", h.SuspendUser)
	users.GET("/:id/permissions/:permission", h.CheckPermission)
	users.POST("/:id/permissions/batch-check", h.BatchCheckPermissions)

	sessions := r.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.EndSession)
	sessions.POST("/:id/switch", h.SwitchSession)
	sessions.GET("/:id/users", h.GetSessionUsers)

	r.GET("/roles", h.GetRoles)

	cache := r.Group("/cache")
	cache.GET("/stats", h.GetCacheStats)
	cache.POST("/invalidate/all", h.InvalidateAllPermissions)
}
