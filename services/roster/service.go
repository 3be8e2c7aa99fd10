package roster

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	rosterRepo "guildroster/database/repository/roster"
	"guildroster/models"
	"guildroster/services/schedule"
)

// RosterService manages guild member profiles and their weekly sign-up poll.
type RosterService interface {
	Upsert(ctx context.Context, profile models.MemberProfile) error
	Get(ctx context.Context, name string) (*models.MemberProfile, error)
	List(ctx context.Context) ([]models.MemberProfile, error)
	Delete(ctx context.Context, name string) error
	SubmitWeeklyPoll(ctx context.Context, name string, week models.WeekKey, availability map[string]bool, participationCount int) (*models.MemberProfile, error)
	AvailableMembers(ctx context.Context, week models.WeekKey, day string) ([]string, error)
}

// DefaultRosterService is the production implementation.
type DefaultRosterService struct {
	Repo   rosterRepo.Repository
	Logger *zap.Logger

	Anchor time.Weekday

	// Now is swappable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultRosterService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultRosterService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultRosterService) windows() (models.WeekKey, models.WeekKey) {
	this := schedule.StartOfWindow(s.now(), s.Anchor)
	return this, schedule.NextWindow(this)
}

// Upsert stores a profile keyed by in-game name.
func (s *DefaultRosterService) Upsert(ctx context.Context, profile models.MemberProfile) error {
	if profile.Name == "" {
		return schedule.NewValidationError("member name is required")
	}
	return s.Repo.Upsert(ctx, profile)
}

// Get reads and normalizes one profile. Like the schedule side, the
// normalized form is written back so legacy fields migrate on first read.
func (s *DefaultRosterService) Get(ctx context.Context, name string) (*models.MemberProfile, error) {
	this, next := s.windows()
	doc, err := s.Repo.GetRawByName(ctx, name)
	if err != nil {
		return nil, err
	}
	p := NormalizeProfile(name, doc, this, next, s.logger())
	if err := s.Repo.Upsert(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every profile, normalized, sorted by name. Read-only; the
// write-back happens on the per-member path.
func (s *DefaultRosterService) List(ctx context.Context) ([]models.MemberProfile, error) {
	this, next := s.windows()
	docs, err := s.Repo.GetAllRaw(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.MemberProfile, 0, len(docs))
	for name, doc := range docs {
		out = append(out, *NormalizeProfile(name, doc, this, next, s.logger()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *DefaultRosterService) Delete(ctx context.Context, name string) error {
	return s.Repo.Delete(ctx, name)
}

// SubmitWeeklyPoll records a member's sign-up for one live window: which
// plain weekdays they can attend plus how many runs they already plan. Days
// outside the window's weekday set are dropped. Full replace per week, so a
// resubmission is idempotent.
func (s *DefaultRosterService) SubmitWeeklyPoll(ctx context.Context, name string, week models.WeekKey, availability map[string]bool, participationCount int) (*models.MemberProfile, error) {
	if participationCount < 0 {
		return nil, schedule.NewValidationError("participation count cannot be negative")
	}
	this, next := s.windows()
	if week != this && week != next {
		return nil, schedule.NewValidationError(fmt.Sprintf("week %s is not one of the two live windows", week))
	}
	doc, err := s.Repo.GetRawByName(ctx, name)
	if err != nil {
		return nil, err
	}
	p := NormalizeProfile(name, doc, this, next, s.logger())

	known := map[string]bool{}
	for _, day := range schedule.PlainWeekdays(s.Anchor) {
		known[day] = true
	}
	entry := &models.WeeklyEntry{
		Availability:       map[string]bool{},
		ParticipationCount: participationCount,
	}
	for day, ok := range availability {
		if !known[day] {
			s.logger().Warn("dropping unknown weekday in poll",
				zap.String("member", name), zap.String("day", day))
			continue
		}
		entry.Availability[day] = ok
	}
	p.WeeklyData[week] = entry

	if err := s.Repo.Upsert(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

// AvailableMembers lists guild members who marked the given plain weekday
// for the given week, sorted by name. Backs the "who is free on the team's
// day" view next to the slot editor.
func (s *DefaultRosterService) AvailableMembers(ctx context.Context, week models.WeekKey, day string) ([]string, error) {
	this, next := s.windows()
	docs, err := s.Repo.GetAllRaw(ctx)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for name, doc := range docs {
		p := NormalizeProfile(name, doc, this, next, s.logger())
		if p.IsGuildMember && p.AvailableOn(week, day) {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}
