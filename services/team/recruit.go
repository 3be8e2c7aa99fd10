package team

import (
	"fmt"
	"strings"

	"guildroster/models"
)

// RecruitText renders a team as a paste-ready recruiting blurb against the
// given week. The time line shows that window's decided final time, or a
// placeholder while the sign-ups are still open; the remark gets its own
// line. The footer counts open seats.
func RecruitText(t *models.Team, week models.WeekKey) string {
	title := fmt.Sprintf("【%s 徵人】", t.Name)

	timeDisplay := "時間待定"
	if rec, ok := t.Schedules[week]; ok && rec.FinalTime != "" {
		timeDisplay = rec.FinalTime
	}
	timeLine := "時間：" + timeDisplay

	remarkLine := ""
	if t.Remark != "" {
		remarkLine = "備註：" + t.Remark
	}

	var members []string
	for _, m := range t.Members {
		if m.Name == "" {
			continue
		}
		members = append(members, strings.TrimSpace(
			fmt.Sprintf("%d. %s %s %s", len(members)+1, m.Level, m.Job, m.Name)))
	}
	memberText := ""
	if len(members) > 0 {
		memberText = "✅ 目前成員：\n" + strings.Join(members, "\n")
	}

	missingText := "🎉 隊伍已滿，可先排後補！"
	if missing := models.MaxTeamSize - len(members); missing > 0 {
		missingText = fmt.Sprintf("📋 尚缺 %d 人，歡迎私訊！", missing)
	}

	parts := []string{}
	for _, p := range []string{title, timeLine, remarkLine, memberText, missingText} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
