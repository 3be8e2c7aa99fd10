package roster

import (
	"go.uber.org/zap"

	"guildroster/models"
)

// NormalizeProfile upgrades one raw roster document to the current shape.
// Older documents keep a single week's poll in flat fields
// (weekly_week_start, weekly_availability, weekly_participation_count);
// those fold into weeklyData keyed by the week. Weeks outside the two live
// windows are pruned. Malformed pieces are logged and skipped, never fatal.
func NormalizeProfile(name string, doc map[string]any, this, next models.WeekKey, logger *zap.Logger) *models.MemberProfile {
	if logger == nil {
		logger = zap.NewNop()
	}
	if doc == nil {
		doc = map[string]any{}
	}

	p := &models.MemberProfile{
		Name:          firstString(doc, "name"),
		Job:           firstString(doc, "job"),
		Level:         firstString(doc, "level"),
		Atk:           firstString(doc, "atk"),
		FCMToken:      firstString(doc, "fcmToken", "fcm_token"),
		IsGuildMember: boolValue(doc["isGuildMember"], doc["is_guild_member"]),
		WeeklyData:    map[models.WeekKey]*models.WeeklyEntry{},
	}
	if p.Name == "" {
		p.Name = name
	}

	if raw, ok := doc["weeklyData"].(map[string]any); ok {
		for key, v := range raw {
			week := models.WeekKey(key)
			if week != this && week != next {
				continue
			}
			entry, ok := v.(map[string]any)
			if !ok {
				logger.Warn("dropping malformed weekly entry",
					zap.String("member", name), zap.String("weekKey", key))
				continue
			}
			p.WeeklyData[week] = &models.WeeklyEntry{
				Availability:       boolMap(entry["availability"]),
				ParticipationCount: intValue(entry["participationCount"]),
			}
		}
	}

	// Flat legacy poll. The canonical map wins when both address a week.
	if legacy := firstString(doc, "weekly_week_start"); legacy != "" {
		week := models.WeekKey(legacy)
		if _, exists := p.WeeklyData[week]; !exists && (week == this || week == next) {
			p.WeeklyData[week] = &models.WeeklyEntry{
				Availability:       boolMap(doc["weekly_availability"]),
				ParticipationCount: intValue(doc["weekly_participation_count"]),
			}
			logger.Info("migrated flat weekly poll",
				zap.String("member", name), zap.String("weekKey", legacy))
		}
	}

	return p
}

func firstString(doc map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func boolValue(candidates ...any) bool {
	for _, c := range candidates {
		if b, ok := c.(bool); ok {
			return b
		}
	}
	return false
}

// boolMap reads a day→bool map, tolerating junk values.
func boolMap(v any) map[string]bool {
	out := map[string]bool{}
	raw, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for day, val := range raw {
		if b, ok := val.(bool); ok {
			out[day] = b
		}
	}
	return out
}

// intValue reads a count that the store may hand back as any numeric type.
func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
