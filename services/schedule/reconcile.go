package schedule

import "guildroster/models"

// ReconcileSlots applies a leader's edited times to a record, deciding which
// collected responses stay valid. Per day: an unchanged time keeps its slot's
// member set, a changed time (including opening or closing the day) starts
// the day over with an empty set, because the old responses no longer
// describe availability for the new time. The UNAVAILABLE entry is a
// property of the member, not of any slot, and is always carried forward.
//
// newSlots may be sparse; days it does not mention are treated as closed.
// Returns true when the record's final time referred to a slot that no
// longer exists and had to be cleared.
func ReconcileSlots(rec *models.ScheduleRecord, newSlots models.ProposedSlots, dayLabels []string) (finalCleared bool) {
	merged := make(models.ProposedSlots, len(dayLabels))
	avail := models.Availability{
		models.UnavailableKey: carryMembers(rec.Availability[models.UnavailableKey]),
	}

	for _, label := range dayLabels {
		oldTime := rec.ProposedSlots[label]
		newTime := newSlots[label]
		merged[label] = newTime
		if newTime == "" {
			continue
		}
		key := models.SlotKey(label, newTime)
		if newTime == oldTime {
			avail[key] = carryMembers(rec.Availability[key])
		} else {
			avail[key] = []string{}
		}
	}

	rec.ProposedSlots = merged
	rec.Availability = avail

	if rec.FinalTime != "" {
		if _, stillOffered := avail[rec.FinalTime]; !stillOffered {
			rec.FinalTime = ""
			finalCleared = true
		}
	}
	return finalCleared
}

func carryMembers(members []string) []string {
	if members == nil {
		return []string{}
	}
	out := make([]string, len(members))
	copy(out, members)
	return out
}
