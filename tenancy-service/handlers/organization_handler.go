package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"contaia-backend/shared/database"
	"contaia-backend/shared/tenancy"
	"contaia-backend/shared/utils/query"
)

var organizationFields = query.Fields[*tenancy.Organization]{
	"name":       func(o *tenancy.Organization) string { return o.Name },
	"domain":     func(o *tenancy.Organization) string { return o.Domain },
	"plan":       func(o *tenancy.Organization) string { return string(o.Plan) },
	"status":     func(o *tenancy.Organization) string { return string(o.Status) },
	"created_at": func(o *tenancy.Organization) string { return o.CreatedAt.Format(time.RFC3339Nano) },
}

// GetOrganizations lists organizations
// @Summary Get all organizations
// @Description Get all organizations with pagination, filtering, sorting and search
// @Tags organizations
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search term across name and domain"
// @Param filters[plan] query string false "Filter by plan (starter, professional, enterprise, custom)"
// @Param filters[status] query string false "Filter by status (active, trial, suspended, inactive)"
// @Param sort[field] query string false "Sort field (name, domain, plan, status, created_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Success 200 {object} Response
// @Router /organizations [get]
func (h *Handler) GetOrganizations(c *gin.Context) {
	all, err := h.registry.Organizations()
	if err != nil {
		fail(c, err)
		return
	}
	items, pagination := query.Apply(all, query.ParseQueryParams(c), organizationFields, []string{"name", "domain"})
	respond(c, http.StatusOK, ListResponse[*tenancy.Organization]{Items: items, Pagination: pagination}, "")
}

// CreateOrganization creates an organization
// @Summary Create a new organization
// @Description Create an organization. Plan defaults to starter, status to active, settings to the plan preset.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body tenancy.OrganizationInput true "Organization information"
// @Success 201 {object} Response "Created organization id"
// @Failure 400 {object} Response "Malformed body"
// @Failure 422 {object} Response "Missing name or invalid plan/status"
// @Router /organizations [post]
func (h *Handler) CreateOrganization(c *gin.Context) {
	var in tenancy.OrganizationInput
	if !bind(c, &in) {
		return
	}
	id, err := h.registry.CreateOrganization(in)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, CreatedResponse{ID: id}, "Organization created successfully")
}

// GetOrganization returns one organization
// @Summary Get organization by ID
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Organization not found"
// @Router /organizations/{id} [get]
func (h *Handler) GetOrganization(c *gin.Context) {
	o, err := h.registry.Organization(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, o, "")
}

// UpdateOrganization patches an organization
// @Summary Update an organization
// @Description Replace the top-level fields that are present; settings, billing and security merge key by key.
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param patch body tenancy.OrganizationPatch true "Fields to change"
// @Success 200 {object} Response "Updated organization"
// @Failure 404 {object} Response "Organization not found"
// @Failure 422 {object} Response "Invalid field value"
// @Router /organizations/{id} [patch]
func (h *Handler) UpdateOrganization(c *gin.Context) {
	var patch tenancy.OrganizationPatch
	if !bind(c, &patch) {
		return
	}
	id := c.Param("id")
	if err := h.registry.UpdateOrganization(id, patch); err != nil {
		fail(c, err)
		return
	}
	h.respondOrganization(c, id, "Organization updated successfully")
}

// SuspendOrganization suspends an organization and all of its users
// @Summary Suspend an organization
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Organization not found"
// @Router /organizations/{id}/suspend [post]
func (h *Handler) SuspendOrganization(c *gin.Context) {
	id := c.Param("id")
	if err := h.registry.SuspendOrganization(id); err != nil {
		fail(c, err)
		return
	}
	h.respondOrganization(c, id, "Organization suspended")
}

// DeleteOrganization removes an organization with its users and clients
// @Summary Delete an organization
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Organization not found"
// @Router /organizations/{id} [delete]
func (h *Handler) DeleteOrganization(c *gin.Context) {
	if err := h.registry.DeleteOrganization(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Organization deleted successfully")
}

// GetUsage returns the usage counters of an organization
// @Summary Get organization usage
// @Tags usage
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Organization not found"
// @Router /organizations/{id}/usage [get]
func (h *Handler) GetUsage(c *gin.Context) {
	u, err := h.registry.GetUsage(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, u, "")
}

// RecordUsage adds storage and processing time to an organization
// @Summary Record usage
// @Tags usage
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param delta body tenancy.UsageDelta true "Usage to add"
// @Success 200 {object} Response "Updated usage"
// @Failure 404 {object} Response "Organization not found"
// @Router /organizations/{id}/usage [post]
func (h *Handler) RecordUsage(c *gin.Context) {
	var delta tenancy.UsageDelta
	if !bind(c, &delta) {
		return
	}
	id := c.Param("id")
	if err := h.registry.RecordUsage(id, delta); err != nil {
		fail(c, err)
		return
	}
	u, err := h.registry.GetUsage(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, u, "Usage recorded")
}

// UpdateResourceLimits merges new ceilings into the organization settings
// @Summary Update resource limits
// @Tags usage
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param limits body tenancy.SettingsPatch true "Settings to change"
// @Success 200 {object} Response "Updated organization"
// @Failure 404 {object} Response "Organization not found"
// @Failure 422 {object} Response "Invalid limit"
// @Router /organizations/{id}/limits [put]
func (h *Handler) UpdateResourceLimits(c *gin.Context) {
	var limits tenancy.SettingsPatch
	if !bind(c, &limits) {
		return
	}
	id := c.Param("id")
	if err := h.registry.UpdateResourceLimits(id, limits); err != nil {
		fail(c, err)
		return
	}
	h.respondOrganization(c, id, "Resource limits updated")
}

// GetQuota lists the counters above their ceilings
// @Summary Get quota warnings
// @Tags usage
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Organization not found"
// @Router /organizations/{id}/quota [get]
func (h *Handler) GetQuota(c *gin.Context) {
	warnings, err := h.registry.QuotaReport(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if warnings == nil {
		warnings = []tenancy.QuotaWarning{}
	}
	respond(c, http.StatusOK, gin.H{"over_quota": len(warnings) > 0, "warnings": warnings}, "")
}

// GetOrganizationUsers lists an organization's users
// @Summary Get organization users
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Organization not found"
// @Router /organizations/{id}/users [get]
func (h *Handler) GetOrganizationUsers(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.registry.Organization(id); err != nil {
		fail(c, err)
		return
	}
	h.listUsers(c, tenancy.UserFilter{OrganizationID: id})
}

// GetAuditLog returns the stored audit trail of an organization
// @Summary Get organization audit log
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Param event_type query string false "Only this event type"
// @Param limit query int false "Maximum entries (default 100, max 500)"
// @Success 200 {object} Response
// @Failure 500 {object} Response "Audit store unavailable"
// @Router /organizations/{id}/audit [get]
func (h *Handler) GetAuditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.audit.List(c.Request.Context(), database.AuditFilter{
		OrganizationID: c.Param("id"),
		EventType:      c.Query("event_type"),
		Limit:          limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, entries, "")
}

func (h *Handler) respondOrganization(c *gin.Context, id, message string) {
	o, err := h.registry.Organization(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, o, message)
}
