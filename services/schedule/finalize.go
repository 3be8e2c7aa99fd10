package schedule

import "guildroster/models"

// Finalize records the leader's decided time for the window. The empty
// value clears the decision. Anything else must be a slot key currently
// carrying availability; the UNAVAILABLE entry is not a pickable time.
// Availability data is never altered here.
func Finalize(rec *models.ScheduleRecord, slotKey string) error {
	if slotKey == "" {
		rec.FinalTime = ""
		return nil
	}
	if slotKey == models.UnavailableKey {
		return NewValidationError("the unavailable entry cannot be chosen as a final time")
	}
	if _, ok := rec.Availability[slotKey]; !ok {
		return NewValidationError("final time must be one of the currently offered slots")
	}
	rec.FinalTime = slotKey
	return nil
}
