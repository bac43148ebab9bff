package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contaia-backend/shared/tenancy"
)

// CreateSessionRequest opens a session acting as UserID.
type CreateSessionRequest struct {
	UserID string `json:"user_id"`
}

// SwitchSessionRequest selects an organization, a user, or both. The
// organization is applied first.
type SwitchSessionRequest struct {
	OrganizationID string `json:"organization_id"`
	UserID         string `json:"user_id"`
}

// SessionResponse is a session with its current selections resolved.
type SessionResponse struct {
	tenancy.SessionState
	CurrentOrganization *tenancy.Organization `json:"current_organization,omitempty"`
	CurrentUser         *tenancy.User         `json:"current_user,omitempty"`
}

func sessionResponse(s *tenancy.Session) SessionResponse {
	out := SessionResponse{SessionState: s.State()}
	if o, err := s.CurrentOrganization(); err == nil {
		out.CurrentOrganization = o
	}
	if u, err := s.CurrentUser(); err == nil {
		out.CurrentUser = u
	}
	return out
}

// CreateSession opens a dashboard session
// @Summary Create a session
// @Description The acting user's organization becomes the current organization.
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body CreateSessionRequest false "Acting user"
// @Success 201 {object} Response
// @Failure 404 {object} Response "User not found"
// @Router /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if !bind(c, &req) {
		return
	}
	s, err := h.registry.NewSession(req.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, sessionResponse(s), "Session created")
}

// GetSession returns a session with its current organization and user
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Session not found"
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.registry.Session(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, sessionResponse(s), "")
}

// SwitchSession changes the current organization or acting user
// @Summary Switch organization or user
// @Description Switching organization as a platform admin selects that organization's first org admin.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param switch body SwitchSessionRequest true "New selection"
// @Success 200 {object} Response
// @Failure 400 {object} Response "Nothing to switch"
// @Failure 404 {object} Response "Session, organization or user not found"
// @Router /sessions/{id}/switch [post]
func (h *Handler) SwitchSession(c *gin.Context) {
	var req SwitchSessionRequest
	if !bind(c, &req) {
		return
	}
	if req.OrganizationID == "" && req.UserID == "" {
		respondError(c, http.StatusBadRequest, "organization_id or user_id is required")
		return
	}
	s, err := h.registry.Session(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if req.OrganizationID != "" {
		if err := s.SwitchOrganization(req.OrganizationID); err != nil {
			fail(c, err)
			return
		}
	}
	if req.UserID != "" {
		if err := s.SwitchUser(req.UserID); err != nil {
			fail(c, err)
			return
		}
	}
	respond(c, http.StatusOK, sessionResponse(s), "Session updated")
}

// GetSessionUsers lists the users visible from a session
// @Summary Get visible users
// @Description Platform admins see every user; everyone else sees the current organization's users.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Session not found"
// @Router /sessions/{id}/users [get]
func (h *Handler) GetSessionUsers(c *gin.Context) {
	s, err := h.registry.Session(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	visible, err := h.registry.VisibleUsers(s)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, visible, "")
}

// EndSession closes a session
// @Summary End session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Session not found"
// @Router /sessions/{id} [delete]
func (h *Handler) EndSession(c *gin.Context) {
	if err := h.registry.EndSession(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Session ended")
}
