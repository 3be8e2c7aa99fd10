package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guildroster/models"
	teamSvc "guildroster/services/team"
	"guildroster/utils"
)

// TeamHandler exposes team CRUD and the recruiting text view.
type TeamHandler struct {
	Service teamSvc.TeamService
}

// CreateTeamHandler handles POST /teams.
func (h *TeamHandler) CreateTeamHandler(c *gin.Context) {
	var req struct {
		TeamName string `json:"teamName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Service.Create(c.Request.Context(), req.TeamName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTeamHandler handles GET /teams/:teamId.
func (h *TeamHandler) GetTeamHandler(c *gin.Context) {
	t, err := h.Service.Get(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ListTeamsHandler handles GET /teams.
func (h *TeamHandler) ListTeamsHandler(c *gin.Context) {
	teams, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// UpdateTeamHandler handles PUT /teams/:teamId.
func (h *TeamHandler) UpdateTeamHandler(c *gin.Context) {
	var req struct {
		TeamName   string              `json:"teamName" binding:"required"`
		TeamRemark string              `json:"teamRemark"`
		Members    []models.TeamMember `json:"member"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Service.UpdateMeta(c.Request.Context(), c.Param("teamId"),
		req.TeamName, req.TeamRemark, req.Members)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ClearTeamMembersHandler handles POST /teams/:teamId/clear-members.
func (h *TeamHandler) ClearTeamMembersHandler(c *gin.Context) {
	cleared, err := h.Service.ClearMembers(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cleared)
}

// DeleteTeamHandler handles DELETE /teams/:teamId. Admin-gated.
func (h *TeamHandler) DeleteTeamHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("teamId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}

// RecruitTextHandler handles GET /teams/:teamId/recruit-text.
func (h *TeamHandler) RecruitTextHandler(c *gin.Context) {
	text, err := h.Service.RecruitText(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
