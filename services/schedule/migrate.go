package schedule

import (
	"go.uber.org/zap"

	"guildroster/models"
)

// The migrator turns whatever shape a stored team document carries into the
// canonical two-window form. Documents written by old revisions use
// snake_case field names, a flat single-week schedule, or a plain "remark"
// field; all of those still occur in live data. Nothing here ever returns
// an error: an unreadable sub-shape degrades to defaults for that record
// only, with a warning, so one corrupt week can never take down a team.

// NormalizeTeam builds a canonical Team from a raw document. this and next
// are the two week windows that must exist afterwards; every other window
// is pruned.
func NormalizeTeam(id string, doc map[string]any, this, next models.WeekKey, logger *zap.Logger) *models.Team {
	if logger == nil {
		logger = zap.NewNop()
	}
	team := &models.Team{
		ID:      id,
		Members: models.EmptyMembers(),
	}
	if doc == nil {
		team.Schedules = models.ScheduleSet{
			this: EmptyRecord(this),
			next: EmptyRecord(next),
		}
		return team
	}

	team.Name = firstString(doc, "teamName", "team_name")
	// "remark" predates "teamRemark"; the canonical field wins when both exist.
	team.Remark = firstString(doc, "teamRemark", "team_remark", "remark")
	team.Members = normalizeMembers(doc["member"])
	team.Schedules = normalizeSchedules(id, doc, this, next, logger)
	return team
}

// normalizeSchedules extracts the per-week map, wrapping a flat legacy
// schedule under its recorded window first, then prunes and backfills so
// exactly the two live windows remain.
func normalizeSchedules(teamID string, doc map[string]any, this, next models.WeekKey, logger *zap.Logger) models.ScheduleSet {
	perWeek, ok := doc["schedules"].(map[string]any)
	if !ok {
		perWeek = map[string]any{}
		// Oldest layout: one flat schedule on the team itself, with the
		// window recorded (if at all) in week_start.
		if flat, ok := doc["schedule"].(map[string]any); ok {
			key := firstString(flat, "week_start", "weekStart")
			if key == "" {
				key = string(this)
			}
			perWeek[key] = flat
		} else if doc["schedules"] != nil {
			logger.Warn("schedules subtree has unusable shape, rebuilding from defaults",
				zap.String("teamId", teamID))
		}
	}

	set := make(models.ScheduleSet, 2)
	for _, key := range []models.WeekKey{this, next} {
		raw, present := perWeek[string(key)]
		if !present {
			set[key] = EmptyRecord(key)
			continue
		}
		set[key] = normalizeRecord(teamID, raw, key, logger)
	}
	// Windows outside the two-window horizon are dropped here, not archived.
	return set
}

// normalizeRecord coerces one stored week record, renaming legacy fields
// and backfilling every missing sub-field without discarding data.
func normalizeRecord(teamID string, raw any, key models.WeekKey, logger *zap.Logger) *models.ScheduleRecord {
	rec := EmptyRecord(key)
	m, ok := raw.(map[string]any)
	if !ok {
		logger.Warn("week record has unusable shape, substituting defaults",
			zap.String("teamId", teamID), zap.String("weekKey", string(key)))
		return rec
	}

	slots, ok := m["proposedSlots"].(map[string]any)
	if !ok {
		slots, _ = m["proposed_slots"].(map[string]any)
	}
	for label, v := range slots {
		if _, inWindow := rec.ProposedSlots[label]; !inWindow {
			continue
		}
		if s, ok := v.(string); ok {
			rec.ProposedSlots[label] = s
		}
	}

	if avail, ok := m["availability"].(map[string]any); ok {
		for slotKey, v := range avail {
			members := stringList(v)
			if members == nil {
				continue
			}
			rec.Availability[slotKey] = members
		}
	}
	if _, ok := rec.Availability[models.UnavailableKey]; !ok {
		rec.Availability[models.UnavailableKey] = []string{}
	}

	rec.FinalTime = firstString(m, "finalTime", "final_time")
	return rec
}

// normalizeMembers coerces the stored member list to the fixed-size slot
// layout. Old exports stored members as positional arrays instead of maps;
// both shapes are accepted.
func normalizeMembers(raw any) []models.TeamMember {
	members := models.EmptyMembers()
	list, ok := raw.([]any)
	if !ok {
		return members
	}
	for i, entry := range list {
		if i >= models.MaxTeamSize {
			break
		}
		switch e := entry.(type) {
		case map[string]any:
			members[i] = models.TeamMember{
				Name:  firstString(e, "name"),
				Job:   firstString(e, "job"),
				Level: firstString(e, "level"),
				Atk:   firstString(e, "atk"),
			}
		case []any:
			fields := make([]string, 4)
			for j := 0; j < len(e) && j < 4; j++ {
				fields[j], _ = e[j].(string)
			}
			members[i] = models.TeamMember{Name: fields[0], Job: fields[1], Level: fields[2], Atk: fields[3]}
		}
	}
	return members
}

// firstString returns the first of the named keys holding a string value.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// stringList coerces a stored member list, tolerating nil entries and
// non-string junk by skipping them. A non-list value yields nil.
func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if v == nil {
			// Firebase-style stores drop empty lists entirely; treat an
			// explicit null the same as an empty membership.
			return []string{}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
