package schedule

import (
	"sort"

	"guildroster/models"
)

// SelectedSlotKeys resolves a member's day selections against the record's
// currently proposed times. Selections for days with no offered time are
// ignored, never stored.
func SelectedSlotKeys(rec *models.ScheduleRecord, selections map[string]bool) []string {
	keys := make([]string, 0, len(selections))
	for _, label := range sortedLabels(rec.ProposedSlots) {
		if !selections[label] {
			continue
		}
		if t := rec.ProposedSlots[label]; t != "" {
			keys = append(keys, models.SlotKey(label, t))
		}
	}
	return keys
}

// SubmitAvailability merges one member's response into the record. The merge
// is a full replace: the member is first removed from every entry, then
// re-inserted into each selected slot. A member with any attending slot is
// never also marked unavailable; attendance wins over a stale flag.
// Idempotent by construction.
func SubmitAvailability(rec *models.ScheduleRecord, memberID string, selected []string, globallyUnavailable bool) {
	for key, members := range rec.Availability {
		rec.Availability[key] = removeMember(members, memberID)
	}
	for _, key := range selected {
		rec.Availability[key] = append(rec.Availability[key], memberID)
	}
	if globallyUnavailable && len(selected) == 0 {
		rec.Availability[models.UnavailableKey] = append(rec.Availability[models.UnavailableKey], memberID)
	}
}

// CommitmentCount reports how many offered slots of this record the member
// currently occupies. The UNAVAILABLE entry does not count.
func CommitmentCount(rec *models.ScheduleRecord, memberID string) int {
	n := 0
	for key, members := range rec.Availability {
		if key == models.UnavailableKey {
			continue
		}
		for _, m := range members {
			if m == memberID {
				n++
			}
		}
	}
	return n
}

// sortedLabels keeps the derived slot-key order stable across calls; maps
// iterate randomly and the result feeds straight into stored lists.
func sortedLabels(slots models.ProposedSlots) []string {
	labels := make([]string, 0, len(slots))
	for label := range slots {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func removeMember(members []string, memberID string) []string {
	out := members[:0]
	for _, m := range members {
		if m != memberID {
			out = append(out, m)
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}
