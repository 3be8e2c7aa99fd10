package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guildroster/models"
	rosterSvc "guildroster/services/roster"
	"guildroster/utils"
)

// RosterHandler exposes guild roster CRUD and the weekly sign-up poll.
type RosterHandler struct {
	Service rosterSvc.RosterService
}

// ListMembersHandler handles GET /roster.
func (h *RosterHandler) ListMembersHandler(c *gin.Context) {
	members, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetMemberHandler handles GET /roster/:name.
func (h *RosterHandler) GetMemberHandler(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpsertMemberHandler handles PUT /roster.
func (h *RosterHandler) UpsertMemberHandler(c *gin.Context) {
	var profile models.MemberProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.Upsert(c.Request.Context(), profile); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member saved"})
}

// DeleteMemberHandler handles DELETE /roster/:name. Admin-gated.
func (h *RosterHandler) DeleteMemberHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("name")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member deleted"})
}

// SubmitWeeklyPollHandler handles POST /roster/:name/poll/:weekKey.
func (h *RosterHandler) SubmitWeeklyPollHandler(c *gin.Context) {
	var req struct {
		Availability       map[string]bool `json:"availability" binding:"required"`
		ParticipationCount int             `json:"participationCount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	p, err := h.Service.SubmitWeeklyPoll(c.Request.Context(), c.Param("name"),
		models.WeekKey(c.Param("weekKey")), req.Availability, req.ParticipationCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AvailableMembersHandler handles GET /roster/available/:weekKey/:day.
func (h *RosterHandler) AvailableMembersHandler(c *gin.Context) {
	names, err := h.Service.AvailableMembers(c.Request.Context(),
		models.WeekKey(c.Param("weekKey")), c.Param("day"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": names})
}
