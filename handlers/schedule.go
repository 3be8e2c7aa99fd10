package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	rosterRepo "guildroster/database/repository/roster"
	teamRepo "guildroster/database/repository/team"
	"guildroster/models"
	"guildroster/services/schedule"
	"guildroster/utils"
)

// ScheduleHandler exposes the week-pair view and the three schedule
// mutations for one team.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

// respondServiceError maps service errors onto HTTP statuses. Validation
// failures are the caller's fault; a missing record is 404; the rest is 500.
func respondServiceError(c *gin.Context, err error) {
	var verr *schedule.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, verr.Message, verr.Code)
	case errors.Is(err, teamRepo.ErrNotFound), errors.Is(err, rosterRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	default:
		utils.GetLogger().Error("schedule operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err.Error(), "")
	}
}

// GetWeekPairHandler handles GET /schedule/:teamId.
func (h *ScheduleHandler) GetWeekPairHandler(c *gin.Context) {
	pair, err := h.Service.GetWeekPair(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// UpdateProposedSlotsHandler handles PUT /schedule/:teamId/:weekKey/slots.
func (h *ScheduleHandler) UpdateProposedSlotsHandler(c *gin.Context) {
	var req struct {
		ProposedSlots models.ProposedSlots `json:"proposedSlots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rec, finalCleared, err := h.Service.UpdateProposedSlots(c.Request.Context(),
		c.Param("teamId"), models.WeekKey(c.Param("weekKey")), req.ProposedSlots)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":       rec,
		"finalCleared": finalCleared,
	})
}

// SubmitAvailabilityHandler handles POST /schedule/:teamId/:weekKey/availability.
func (h *ScheduleHandler) SubmitAvailabilityHandler(c *gin.Context) {
	var req models.AvailabilitySubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rec, err := h.Service.SubmitAvailability(c.Request.Context(),
		c.Param("teamId"), models.WeekKey(c.Param("weekKey")), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// SetFinalTimeHandler handles PUT /schedule/:teamId/:weekKey/final. An empty
// slotKey clears the decision.
func (h *ScheduleHandler) SetFinalTimeHandler(c *gin.Context) {
	var req struct {
		SlotKey string `json:"slotKey"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rec, err := h.Service.SetFinalTime(c.Request.Context(),
		c.Param("teamId"), models.WeekKey(c.Param("weekKey")), req.SlotKey)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
