package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"guildroster/models"
	rosterSvc "guildroster/services/roster"
	"guildroster/services/schedule"
	teamSvc "guildroster/services/team"
	"guildroster/utils"
)

// ExportHandler renders the roster and per-team week sheets as CSV
// downloads.
type ExportHandler struct {
	Teams  teamSvc.TeamService
	Roster rosterSvc.RosterService
}

func writeCSV(c *gin.Context, filename string, rows [][]string) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to render csv", err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportRosterHandler handles GET /export/roster.
func (h *ExportHandler) ExportRosterHandler(c *gin.Context) {
	members, err := h.Roster.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rows := [][]string{{"name", "job", "level", "atk", "guildMember"}}
	for _, m := range members {
		guild := "no"
		if m.IsGuildMember {
			guild = "yes"
		}
		rows = append(rows, []string{m.Name, m.Job, m.Level, m.Atk, guild})
	}
	writeCSV(c, "roster.csv", rows)
}

// ExportTeamWeekHandler handles GET /export/teams/:teamId/:weekKey. One row
// per open slot with the signed-up members, plus the unavailable list and
// the chosen final time.
func (h *ExportHandler) ExportTeamWeekHandler(c *gin.Context) {
	t, err := h.Teams.Get(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	week := models.WeekKey(c.Param("weekKey"))
	rec, ok := t.Schedules[week]
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("week %s is not one of the two live windows", week), "")
		return
	}

	rows := [][]string{{"slot", "members"}}
	for _, label := range schedule.DayLabels(week) {
		timeStr := rec.ProposedSlots[label]
		if timeStr == "" {
			continue
		}
		key := models.SlotKey(label, timeStr)
		rows = append(rows, []string{key, joinNames(rec.Availability[key])})
	}
	rows = append(rows,
		[]string{"unavailable", joinNames(rec.Availability[models.UnavailableKey])},
		[]string{"finalTime", rec.FinalTime})

	writeCSV(c, fmt.Sprintf("%s-%s.csv", t.Name, week), rows)
}

func joinNames(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
