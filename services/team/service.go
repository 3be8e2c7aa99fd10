package team

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	rosterRepo "guildroster/database/repository/roster"
	teamRepo "guildroster/database/repository/team"
	"guildroster/models"
	rosterSvc "guildroster/services/roster"
	"guildroster/services/schedule"
)

// TeamService manages team records: creation, metadata edits, and the
// recruiting views built on top of them. Schedule mutations live in the
// schedule service; this side only seeds and carries them.
type TeamService interface {
	Create(ctx context.Context, name string) (*models.Team, error)
	Get(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	UpdateMeta(ctx context.Context, id string, name, remark string, members []models.TeamMember) (*models.Team, error)
	ClearMembers(ctx context.Context, id string) (*models.Team, error)
	Delete(ctx context.Context, id string) error
	RecruitText(ctx context.Context, id string) (string, error)
}

// DefaultTeamService is the production implementation.
type DefaultTeamService struct {
	Repo       teamRepo.Repository
	RosterRepo rosterRepo.Repository // optional, for member re-hydration
	Logger     *zap.Logger

	Anchor time.Weekday

	// Now is swappable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultTeamService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultTeamService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultTeamService) windows() (models.WeekKey, models.WeekKey) {
	this := schedule.StartOfWindow(s.now(), s.Anchor)
	return this, schedule.NextWindow(this)
}

// Create stores a new team with a full blank member list and both live
// windows seeded so the slot editor never sees a missing record.
func (s *DefaultTeamService) Create(ctx context.Context, name string) (*models.Team, error) {
	if name == "" {
		return nil, schedule.NewValidationError("team name is required")
	}
	this, next := s.windows()
	t := models.Team{
		Name:    name,
		Members: models.EmptyMembers(),
		Schedules: models.ScheduleSet{
			this: schedule.EmptyRecord(this),
			next: schedule.EmptyRecord(next),
		},
	}
	id, err := s.Repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return &t, nil
}

func (s *DefaultTeamService) Get(ctx context.Context, id string) (*models.Team, error) {
	this, next := s.windows()
	doc, err := s.Repo.GetRawByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return schedule.NormalizeTeam(id, doc, this, next, s.logger()), nil
}

// List returns every team, normalized, sorted by name.
func (s *DefaultTeamService) List(ctx context.Context) ([]models.Team, error) {
	this, next := s.windows()
	docs, err := s.Repo.GetAllRaw(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Team, 0, len(docs))
	for id, doc := range docs {
		out = append(out, *schedule.NormalizeTeam(id, doc, this, next, s.logger()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpdateMeta saves name, remark and the member list. Member rows naming a
// roster profile get their job, level and atk refreshed from the roster so
// the denormalized copies never drift. The list is padded to full size.
func (s *DefaultTeamService) UpdateMeta(ctx context.Context, id string, name, remark string, members []models.TeamMember) (*models.Team, error) {
	if name == "" {
		return nil, schedule.NewValidationError("team name is required")
	}
	if len(members) > models.MaxTeamSize {
		return nil, schedule.NewValidationError("too many member rows")
	}
	for len(members) < models.MaxTeamSize {
		members = append(members, models.TeamMember{})
	}
	members = s.rehydrate(ctx, members)

	if err := s.Repo.UpdateMeta(ctx, id, name, remark, members); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// rehydrate refreshes job/level/atk for named rows from the roster.
// Best-effort: a missing profile or a roster read failure leaves the row's
// own values in place.
func (s *DefaultTeamService) rehydrate(ctx context.Context, members []models.TeamMember) []models.TeamMember {
	if s.RosterRepo == nil {
		return members
	}
	this, next := s.windows()
	for i, m := range members {
		if m.Name == "" {
			continue
		}
		doc, err := s.RosterRepo.GetRawByName(ctx, m.Name)
		if err != nil {
			continue
		}
		p := rosterSvc.NormalizeProfile(m.Name, doc, this, next, s.logger())
		members[i].Job = p.Job
		members[i].Level = p.Level
		members[i].Atk = p.Atk
	}
	return members
}

// ClearMembers blanks the member list, keeping name, remark and schedules.
func (s *DefaultTeamService) ClearMembers(ctx context.Context, id string) (*models.Team, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateMeta(ctx, id, t.Name, t.Remark, models.EmptyMembers()); err != nil {
		return nil, err
	}
	t.Members = models.EmptyMembers()
	return t, nil
}

func (s *DefaultTeamService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// RecruitText renders the team's recruiting blurb against the current week
// window, so the decided final time shows up on the time line.
func (s *DefaultTeamService) RecruitText(ctx context.Context, id string) (string, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	this, _ := s.windows()
	return RecruitText(t, this), nil
}
