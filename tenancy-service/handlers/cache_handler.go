package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BatchCheckRequest lists the permissions to check for one user.
type BatchCheckRequest struct {
	Permissions []string `json:"permissions"`
}

// BatchCheckResponse maps each requested permission to its decision.
type BatchCheckResponse struct {
	UserID  string          `json:"user_id"`
	Results map[string]bool `json:"results"`
}

// BatchCheckPermissions checks several permissions at once
// @Summary Check multiple permissions
// @Description Decisions are served from the permission cache when it is enabled.
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param batch body BatchCheckRequest true "Permissions to check"
// @Success 200 {object} Response "Batch permission check results"
// @Failure 404 {object} Response "User not found"
// @Failure 422 {object} Response "No permissions given"
// @Router /users/{id}/permissions/batch-check [post]
func (h *Handler) BatchCheckPermissions(c *gin.Context) {
	var req BatchCheckRequest
	if !bind(c, &req) {
		return
	}
	if len(req.Permissions) == 0 {
		respondError(c, http.StatusUnprocessableEntity, "permissions is required")
		return
	}
	id := c.Param("id")
	results, err := h.checker.BatchCheckPermissions(c.Request.Context(), id, req.Permissions)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, BatchCheckResponse{UserID: id, Results: results}, "")
}

// GetCacheStats returns cache statistics
// @Summary Get cache statistics
// @Description Get statistics about the permission cache
// @Tags cache
// @Produce json
// @Success 200 {object} Response "Cache statistics"
// @Failure 503 {object} Response "Cache manager not available"
// @Router /cache/stats [get]
func (h *Handler) GetCacheStats(c *gin.Context) {
	cm := h.checker.Cache()
	if cm == nil {
		respondError(c, http.StatusServiceUnavailable, "Cache manager not available")
		return
	}
	stats, err := cm.GetCacheStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, stats, "")
}

// InvalidateAllPermissions drops every cached decision
// @Summary Invalidate all permissions cache
// @Tags cache
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response "Cache manager not available"
// @Router /cache/invalidate/all [post]
func (h *Handler) InvalidateAllPermissions(c *gin.Context) {
	cm := h.checker.Cache()
	if cm == nil {
		respondError(c, http.StatusServiceUnavailable, "Cache manager not available")
		return
	}
	if err := cm.InvalidateAllPermissions(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	h.logger.Info("Permission cache flushed", zap.String("request_id", c.GetString("request_id")))
	respond(c, http.StatusOK, nil, "Permission cache invalidated successfully")
}
