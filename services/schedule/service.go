package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	teamRepo "guildroster/database/repository/team"
	"guildroster/models"
	"guildroster/services/notification"
)

// Cap scope values, config COMMITMENT_CAP_SCOPE.
const (
	CapScopeGuild = "guild"
	CapScopeTeam  = "team"
)

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Repo     teamRepo.Repository
	Notifier notification.NotificationService // optional
	Logger   *zap.Logger

	Anchor   time.Weekday
	Cap      int
	CapScope string

	// Now is swappable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultScheduleService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// windows returns the current and next WeekKey as of the call.
func (s *DefaultScheduleService) windows() (models.WeekKey, models.WeekKey) {
	this := StartOfWindow(s.now(), s.Anchor)
	return this, NextWindow(this)
}

// loadTeam reads and normalizes one team. No write happens when the read
// fails; store errors surface verbatim.
func (s *DefaultScheduleService) loadTeam(ctx context.Context, teamID string) (*models.Team, models.WeekKey, models.WeekKey, error) {
	this, next := s.windows()
	doc, err := s.Repo.GetRawByID(ctx, teamID)
	if err != nil {
		return nil, "", "", err
	}
	return NormalizeTeam(teamID, doc, this, next, s.logger()), this, next, nil
}

// GetWeekPair implements ScheduleService. The normalized set is written
// back so defaults materialize and stale windows get pruned on first read.
func (s *DefaultScheduleService) GetWeekPair(ctx context.Context, teamID string) (*models.WeekPair, error) {
	team, this, next, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceSchedules(ctx, teamID, team.Schedules); err != nil {
		return nil, err
	}
	return &models.WeekPair{
		ThisWeek:   this,
		NextWeek:   next,
		ThisRecord: team.Schedules[this],
		NextRecord: team.Schedules[next],
		WeekRange:  WeekRange(this),
		NextRange:  WeekRange(next),
	}, nil
}

// liveRecord picks the addressed window out of a normalized set. Mutations
// against a window outside the two-window horizon are rejected.
func liveRecord(set models.ScheduleSet, week models.WeekKey) (*models.ScheduleRecord, error) {
	rec, ok := set[week]
	if !ok {
		return nil, NewValidationError(fmt.Sprintf("week %s is not one of the two live windows", week))
	}
	return rec, nil
}

// UpdateProposedSlots implements ScheduleService.
func (s *DefaultScheduleService) UpdateProposedSlots(ctx context.Context, teamID string, week models.WeekKey, slots models.ProposedSlots) (*models.ScheduleRecord, bool, error) {
	team, _, _, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return nil, false, err
	}
	rec, err := liveRecord(team.Schedules, week)
	if err != nil {
		return nil, false, err
	}

	finalCleared := ReconcileSlots(rec, slots, DayLabels(week))
	if err := s.Repo.ReplaceSchedules(ctx, teamID, team.Schedules); err != nil {
		return nil, false, err
	}

	if finalCleared {
		s.logger().Info("final time cleared by slot edit",
			zap.String("teamId", teamID), zap.String("weekKey", string(week)))
		s.announce(func(n notification.NotificationService) error {
			return n.FinalTimeCleared(ctx, team.Name, week)
		})
	}
	return rec, finalCleared, nil
}

// SubmitAvailability implements ScheduleService. The commitment cap is
// checked before any mutation, so a rejected submission writes nothing.
func (s *DefaultScheduleService) SubmitAvailability(ctx context.Context, teamID string, week models.WeekKey, sub models.AvailabilitySubmission) (*models.ScheduleRecord, error) {
	if sub.MemberID == "" {
		return nil, NewValidationError("member id is required")
	}
	team, _, _, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	rec, err := liveRecord(team.Schedules, week)
	if err != nil {
		return nil, err
	}

	selected := SelectedSlotKeys(rec, sub.Selections)
	if err := s.checkCommitmentCap(ctx, teamID, week, sub.MemberID, len(selected)); err != nil {
		return nil, err
	}

	SubmitAvailability(rec, sub.MemberID, selected, sub.GloballyUnavailable)
	if err := s.Repo.ReplaceSchedules(ctx, teamID, team.Schedules); err != nil {
		return nil, err
	}
	return rec, nil
}

// checkCommitmentCap enforces the per-member weekly cap. In team scope only
// the record being written counts; in guild scope every other team's record
// for the same window counts too.
func (s *DefaultScheduleService) checkCommitmentCap(ctx context.Context, teamID string, week models.WeekKey, memberID string, requested int) error {
	if s.Cap <= 0 {
		return nil
	}
	total := requested
	if s.CapScope != CapScopeTeam {
		docs, err := s.Repo.GetAllRaw(ctx)
		if err != nil {
			return err
		}
		this, next := s.windows()
		for id, doc := range docs {
			if id == teamID {
				continue
			}
			other := NormalizeTeam(id, doc, this, next, s.logger())
			if rec, ok := other.Schedules[week]; ok {
				total += CommitmentCount(rec, memberID)
			}
		}
	}
	if total > s.Cap {
		return NewValidationError(fmt.Sprintf("member %s would hold %d slots this week, cap is %d", memberID, total, s.Cap))
	}
	return nil
}

// SetFinalTime implements ScheduleService.
func (s *DefaultScheduleService) SetFinalTime(ctx context.Context, teamID string, week models.WeekKey, slotKey string) (*models.ScheduleRecord, error) {
	team, _, _, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	rec, err := liveRecord(team.Schedules, week)
	if err != nil {
		return nil, err
	}

	if err := Finalize(rec, slotKey); err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceSchedules(ctx, teamID, team.Schedules); err != nil {
		return nil, err
	}

	if slotKey != "" {
		s.announce(func(n notification.NotificationService) error {
			return n.FinalTimeSet(ctx, team.Name, week, slotKey)
		})
	}
	return rec, nil
}

// announce fires a best-effort notification; failures are logged, never
// propagated into the schedule write's result.
func (s *DefaultScheduleService) announce(fn func(notification.NotificationService) error) {
	if s.Notifier == nil {
		return
	}
	if err := fn(s.Notifier); err != nil {
		s.logger().Warn("announcement failed", zap.Error(err))
	}
}

// RolloverAll re-normalizes every team's schedule set against the current
// windows, pruning rolled-out weeks and seeding the new next window. Run by
// the cron worker at (and after) each week boundary. Per-team failures are
// logged and skipped so one bad document cannot stall the sweep.
func (s *DefaultScheduleService) RolloverAll(ctx context.Context) (int, error) {
	docs, err := s.Repo.GetAllRaw(ctx)
	if err != nil {
		return 0, err
	}
	this, next := s.windows()
	updated := 0
	for id, doc := range docs {
		team := NormalizeTeam(id, doc, this, next, s.logger())
		if err := s.Repo.ReplaceSchedules(ctx, id, team.Schedules); err != nil {
			s.logger().Warn("rollover write failed for team",
				zap.String("teamId", id), zap.Error(err))
			continue
		}
		updated++
	}
	return updated, nil
}
