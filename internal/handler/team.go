package handler

import (
	"net/http"

	"clientbook/internal/model"
	"clientbook/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles the caller's team and its roster.
type TeamHandler struct {
	teams *service.TeamService
}

func NewTeamHandler(teams *service.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// Current handles GET /team
func (h *TeamHandler) Current(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	team, err := h.teams.Current(c.Request.Context(), id.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// Lookup handles GET /team/lookup?email=
func (h *TeamHandler) Lookup(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	member, err := h.teams.Lookup(c.Request.Context(), id, c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// Invite handles POST /team/members
func (h *TeamHandler) Invite(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	var req model.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	team, err := h.teams.Invite(c.Request.Context(), id, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Member added", team))
}

// Remove handles DELETE /team/members/:uid
func (h *TeamHandler) Remove(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	team, err := h.teams.Remove(c.Request.Context(), id, c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Member removed", team))
}
