package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contaia-backend/shared/tenancy"
	"contaia-backend/shared/utils/query"
)

var clientFields = query.Fields[*tenancy.Client]{
	"name":          func(c *tenancy.Client) string { return c.Name },
	"business_type": func(c *tenancy.Client) string { return c.BusinessType },
	"contact_email": func(c *tenancy.Client) string { return c.ContactEmail },
	"status":        func(c *tenancy.Client) string { return string(c.Status) },
}

// CreateClientRequest is the body of a client creation; the firm comes from
// the path.
type CreateClientRequest struct {
	Name         string                  `json:"name"`
	BusinessType string                  `json:"business_type"`
	ContactEmail string                  `json:"contact_email"`
	ContactPhone string                  `json:"contact_phone"`
	Address      string                  `json:"address"`
	Status       tenancy.ClientStatus    `json:"status"`
	Settings     *tenancy.ClientSettings `json:"settings"`
}

// GetClients lists a firm's clients
// @Summary Get organization clients
// @Tags clients
// @Produce json
// @Param id path string true "Organization ID"
// @Param search query string false "Search term across name, business type and contact email"
// @Param filters[status] query string false "Filter by status (active, inactive, onboarding)"
// @Param sort[field] query string false "Sort field (name, business_type, status)"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Organization not found"
// @Router /organizations/{id}/clients [get]
func (h *Handler) GetClients(c *gin.Context) {
	all, err := h.registry.Clients(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	items, pagination := query.Apply(all, query.ParseQueryParams(c), clientFields,
		[]string{"name", "business_type", "contact_email"})
	respond(c, http.StatusOK, ListResponse[*tenancy.Client]{Items: items, Pagination: pagination}, "")
}

// CreateClient adds a client to a firm
// @Summary Create a client
// @Description Settings default to AI processing on with the firm's retention and backup policy.
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param client body CreateClientRequest true "Client information"
// @Success 201 {object} Response "Created client id"
// @Failure 404 {object} Response "Organization not found"
// @Failure 422 {object} Response "Missing name or invalid status"
// @Router /organizations/{id}/clients [post]
func (h *Handler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if !bind(c, &req) {
		return
	}
	id, err := h.registry.CreateClient(tenancy.ClientInput{
		FirmID:       c.Param("id"),
		Name:         req.Name,
		BusinessType: req.BusinessType,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		Status:       req.Status,
		Settings:     req.Settings,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, CreatedResponse{ID: id}, "Client created successfully")
}

// GetClient returns one client
// @Summary Get client by ID
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Client not found"
// @Router /clients/{id} [get]
func (h *Handler) GetClient(c *gin.Context) {
	cl, err := h.registry.Client(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, cl, "")
}

// UpdateClient patches a client
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param patch body tenancy.ClientPatch true "Fields to change"
// @Success 200 {object} Response "Updated client"
// @Failure 404 {object} Response "Client not found"
// @Failure 422 {object} Response "Invalid field value"
// @Router /clients/{id} [patch]
func (h *Handler) UpdateClient(c *gin.Context) {
	var patch tenancy.ClientPatch
	if !bind(c, &patch) {
		return
	}
	id := c.Param("id")
	if err := h.registry.UpdateClient(id, patch); err != nil {
		fail(c, err)
		return
	}
	cl, err := h.registry.Client(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, cl, "Client updated successfully")
}

// DeleteClient removes a client
// @Summary Delete a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Client not found"
// @Router /clients/{id} [delete]
func (h *Handler) DeleteClient(c *gin.Context) {
	if err := h.registry.DeleteClient(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Client deleted successfully")
}
