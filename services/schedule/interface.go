package schedule

import (
	"context"

	"guildroster/models"
)

// ScheduleService is the engine surface the handlers consume. Every call is
// one atomic read-modify-write cycle against the team store: read the full
// schedule set, run the relevant component, write the full set back. There
// is no cross-user isolation beyond last-write-wins at the store.
type ScheduleService interface {
	// GetWeekPair returns the two live windows for a team, materializing
	// empty defaults and migrating historical layouts on the way.
	GetWeekPair(ctx context.Context, teamID string) (*models.WeekPair, error)
	// UpdateProposedSlots replaces a window's offered times, reconciling
	// previously collected availability. The bool reports that the decided
	// final time referred to a removed slot and was cleared.
	UpdateProposedSlots(ctx context.Context, teamID string, week models.WeekKey, slots models.ProposedSlots) (*models.ScheduleRecord, bool, error)
	// SubmitAvailability merges one member's response into a window.
	SubmitAvailability(ctx context.Context, teamID string, week models.WeekKey, sub models.AvailabilitySubmission) (*models.ScheduleRecord, error)
	// SetFinalTime records (or, with an empty slot key, clears) the
	// leader's decided time.
	SetFinalTime(ctx context.Context, teamID string, week models.WeekKey, slotKey string) (*models.ScheduleRecord, error)
}
