package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	teamRepo "guildroster/database/repository/team"
	"guildroster/models"
)

// mockTeamRepo implements teamRepo.Repository in memory.
type mockTeamRepo struct {
	docs     map[string]map[string]any
	readErr  error
	writeErr error
	writes   int
	lastSet  models.ScheduleSet
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{docs: make(map[string]map[string]any)}
}

func (m *mockTeamRepo) Create(_ context.Context, team models.Team) (string, error) {
	m.docs[team.ID] = map[string]any{"id": team.ID, "teamName": team.Name}
	return team.ID, nil
}

func (m *mockTeamRepo) GetRawByID(_ context.Context, id string) (map[string]any, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	doc, ok := m.docs[id]
	if !ok {
		return nil, teamRepo.ErrNotFound
	}
	return doc, nil
}

func (m *mockTeamRepo) GetAllRaw(_ context.Context) (map[string]map[string]any, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.docs, nil
}

func (m *mockTeamRepo) ReplaceSchedules(_ context.Context, id string, schedules models.ScheduleSet) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if _, ok := m.docs[id]; !ok {
		return teamRepo.ErrNotFound
	}
	m.writes++
	m.lastSet = schedules
	m.docs[id]["schedules"] = rawSchedules(schedules)
	return nil
}

func (m *mockTeamRepo) UpdateMeta(_ context.Context, id string, name, remark string, members []models.TeamMember) error {
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

// rawSchedules renders a ScheduleSet the way a store read would hand it
// back: plain maps with []any member lists.
func rawSchedules(set models.ScheduleSet) map[string]any {
	out := make(map[string]any, len(set))
	for key, rec := range set {
		slots := make(map[string]any, len(rec.ProposedSlots))
		for label, timeStr := range rec.ProposedSlots {
			slots[label] = timeStr
		}
		avail := make(map[string]any, len(rec.Availability))
		for slotKey, members := range rec.Availability {
			list := make([]any, len(members))
			for i, m := range members {
				list[i] = m
			}
			avail[slotKey] = list
		}
		out[string(key)] = map[string]any{
			"proposedSlots": slots,
			"availability":  avail,
			"finalTime":     rec.FinalTime,
		}
	}
	return out
}

// mockNotifier records announcement calls.
type mockNotifier struct {
	setCalls     []string
	clearedCalls []string
	err          error
}

func (m *mockNotifier) FinalTimeSet(_ context.Context, teamName string, _ models.WeekKey, slotKey string) error {
	m.setCalls = append(m.setCalls, slotKey)
	return m.err
}

func (m *mockNotifier) FinalTimeCleared(_ context.Context, teamName string, _ models.WeekKey) error {
	m.clearedCalls = append(m.clearedCalls, teamName)
	return m.err
}

func newService(repo *mockTeamRepo) *DefaultScheduleService {
	return &DefaultScheduleService{
		Repo:     repo,
		Anchor:   time.Thursday,
		Cap:      2,
		CapScope: CapScopeGuild,
		Now:      func() time.Time { return thursday },
	}
}

func seedTeam(repo *mockTeamRepo, id, name string) {
	repo.docs[id] = map[string]any{"id": id, "teamName": name}
}

func TestGetWeekPairMaterializesDefaults(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	svc := newService(repo)

	pair, err := svc.GetWeekPair(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.ThisWeek != thisKey || pair.NextWeek != nextKey {
		t.Errorf("windows = %s/%s, want %s/%s", pair.ThisWeek, pair.NextWeek, thisKey, nextKey)
	}
	if len(pair.ThisRecord.ProposedSlots) != 7 || len(pair.NextRecord.ProposedSlots) != 7 {
		t.Error("default records not materialized with 7 days")
	}
	if repo.writes != 1 {
		t.Errorf("expected the normalized set to be written back once, got %d writes", repo.writes)
	}
	if pair.WeekRange != "08/27 ~ 09/02" {
		t.Errorf("week range = %q", pair.WeekRange)
	}
}

func TestGetWeekPairUnknownTeam(t *testing.T) {
	repo := newMockTeamRepo()
	svc := newService(repo)

	_, err := svc.GetWeekPair(context.Background(), "ghost")
	if !errors.Is(err, teamRepo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.writes != 0 {
		t.Error("no write may happen after a failed read")
	}
}

func TestNoWriteAfterFailedRead(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	repo.readErr = errors.New("store down")
	svc := newService(repo)

	_, _, err := svc.UpdateProposedSlots(context.Background(), "t1", thisKey, models.ProposedSlots{})
	if err == nil || err.Error() != "store down" {
		t.Fatalf("store error should surface verbatim, got %v", err)
	}
	if repo.writes != 0 {
		t.Error("no write may happen after a failed read")
	}
}

func TestWriteErrorSurfaces(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	repo.writeErr = errors.New("write refused")
	svc := newService(repo)

	_, _, err := svc.UpdateProposedSlots(context.Background(), "t1", thisKey, models.ProposedSlots{"Thu (08-27)": "21:00"})
	if err == nil || err.Error() != "write refused" {
		t.Fatalf("store error should surface verbatim, got %v", err)
	}
}

func TestUpdateProposedSlotsRejectsStaleWeek(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	svc := newService(repo)

	_, _, err := svc.UpdateProposedSlots(context.Background(), "t1", "2026-08-13", models.ProposedSlots{})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError for a stale window, got %v", err)
	}
	if repo.writes != 0 {
		t.Error("rejected edit must not write")
	}
}

func TestUpdateProposedSlotsPersistsAndReconciles(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	svc := newService(repo)

	rec, cleared, err := svc.UpdateProposedSlots(context.Background(), "t1", thisKey,
		models.ProposedSlots{"Thu (08-27)": "21:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared {
		t.Error("nothing was finalized, nothing to clear")
	}
	if rec.ProposedSlots["Thu (08-27)"] != "21:00" {
		t.Errorf("slot not persisted: %v", rec.ProposedSlots)
	}
	if _, ok := repo.lastSet[thisKey].Availability["Thu (08-27) 21:00"]; !ok {
		t.Error("written set missing the new slot key")
	}
}

func TestSubmitAvailabilityRoundTrip(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	svc := newService(repo)

	if _, _, err := svc.UpdateProposedSlots(context.Background(), "t1", thisKey,
		models.ProposedSlots{"Thu (08-27)": "21:00", "Sat (08-29)": "20:00"}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rec, err := svc.SubmitAvailability(context.Background(), "t1", thisKey, models.AvailabilitySubmission{
		MemberID:   "Aria",
		Selections: map[string]bool{"Thu (08-27)": true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Availability["Thu (08-27) 21:00"]; len(got) != 1 || got[0] != "Aria" {
		t.Errorf("Aria not recorded: %v", got)
	}
}

func TestSubmitAvailabilityRequiresMemberID(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	svc := newService(repo)

	_, err := svc.SubmitAvailability(context.Background(), "t1", thisKey, models.AvailabilitySubmission{})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCommitmentCapTeamScope(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	svc := newService(repo)
	svc.CapScope = CapScopeTeam

	if _, _, err := svc.UpdateProposedSlots(context.Background(), "t1", thisKey, models.ProposedSlots{
		"Thu (08-27)": "21:00", "Fri (08-28)": "19:00", "Sat (08-29)": "20:00",
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	writesBefore := repo.writes

	_, err := svc.SubmitAvailability(context.Background(), "t1", thisKey, models.AvailabilitySubmission{
		MemberID: "Aria",
		Selections: map[string]bool{
			"Thu (08-27)": true, "Fri (08-28)": true, "Sat (08-29)": true,
		},
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("three slots against a cap of two must be rejected, got %v", err)
	}
	if repo.writes != writesBefore {
		t.Error("rejected submission must not write")
	}

	// Two slots fit the cap.
	if _, err := svc.SubmitAvailability(context.Background(), "t1", thisKey, models.AvailabilitySubmission{
		MemberID:   "Aria",
		Selections: map[string]bool{"Thu (08-27)": true, "Sat (08-29)": true},
	}); err != nil {
		t.Fatalf("two slots should pass the cap: %v", err)
	}
}

func TestCommitmentCapGuildScope(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	seedTeam(repo, "t2", "Zakum 2")
	svc := newService(repo)

	ctx := context.Background()
	for _, id := range []string{"t1", "t2"} {
		if _, _, err := svc.UpdateProposedSlots(ctx, id, thisKey, models.ProposedSlots{
			"Thu (08-27)": "21:00", "Sat (08-29)": "20:00",
		}); err != nil {
			t.Fatalf("setup %s: %v", id, err)
		}
	}
	// Aria fills the whole cap on team 1.
	if _, err := svc.SubmitAvailability(ctx, "t1", thisKey, models.AvailabilitySubmission{
		MemberID:   "Aria",
		Selections: map[string]bool{"Thu (08-27)": true, "Sat (08-29)": true},
	}); err != nil {
		t.Fatalf("setup submit: %v", err)
	}

	// Guild scope counts team 1's slots, so one more on team 2 overflows.
	_, err := svc.SubmitAvailability(ctx, "t2", thisKey, models.AvailabilitySubmission{
		MemberID:   "Aria",
		Selections: map[string]bool{"Thu (08-27)": true},
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("guild-scope cap must reject the third slot, got %v", err)
	}

	// The same submission passes under team scope.
	svc.CapScope = CapScopeTeam
	if _, err := svc.SubmitAvailability(ctx, "t2", thisKey, models.AvailabilitySubmission{
		MemberID:   "Aria",
		Selections: map[string]bool{"Thu (08-27)": true},
	}); err != nil {
		t.Fatalf("team-scope cap should allow it: %v", err)
	}
}

func TestCapDisabled(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	svc := newService(repo)
	svc.Cap = 0

	if _, _, err := svc.UpdateProposedSlots(context.Background(), "t1", thisKey, models.ProposedSlots{
		"Thu (08-27)": "21:00", "Fri (08-28)": "19:00", "Sat (08-29)": "20:00",
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := svc.SubmitAvailability(context.Background(), "t1", thisKey, models.AvailabilitySubmission{
		MemberID: "Aria",
		Selections: map[string]bool{
			"Thu (08-27)": true, "Fri (08-28)": true, "Sat (08-29)": true,
		},
	}); err != nil {
		t.Fatalf("cap of zero must disable the check: %v", err)
	}
}

func TestSetFinalTimeAnnouncesAndClearAnnounces(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	notifier := &mockNotifier{}
	svc := newService(repo)
	svc.Notifier = notifier

	ctx := context.Background()
	if _, _, err := svc.UpdateProposedSlots(ctx, "t1", thisKey,
		models.ProposedSlots{"Thu (08-27)": "21:00"}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rec, err := svc.SetFinalTime(ctx, "t1", thisKey, "Thu (08-27) 21:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.FinalTime != "Thu (08-27) 21:00" {
		t.Errorf("final time = %q", rec.FinalTime)
	}
	if len(notifier.setCalls) != 1 || notifier.setCalls[0] != "Thu (08-27) 21:00" {
		t.Errorf("expected one FinalTimeSet announcement, got %v", notifier.setCalls)
	}

	// A later edit that removes the chosen slot announces the clear.
	if _, cleared, err := svc.UpdateProposedSlots(ctx, "t1", thisKey,
		models.ProposedSlots{"Thu (08-27)": "22:00"}); err != nil || !cleared {
		t.Fatalf("expected cleared=true, err=nil; got cleared=%v err=%v", cleared, err)
	}
	if len(notifier.clearedCalls) != 1 {
		t.Errorf("expected one FinalTimeCleared announcement, got %v", notifier.clearedCalls)
	}
}

func TestSetFinalTimeRejectsUnknownSlot(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	svc := newService(repo)

	writesBefore := repo.writes
	_, err := svc.SetFinalTime(context.Background(), "t1", thisKey, "Thu (08-27) 21:00")
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.writes != writesBefore {
		t.Error("rejected finalize must not write")
	}
}

func TestNotifierFailureDoesNotFailTheWrite(t *testing.T) {
	repo := newMockTeamRepo()
	seedTeam(repo, "t1", "Zakum 1")
	notifier := &mockNotifier{err: errors.New("fcm down")}
	svc := newService(repo)
	svc.Notifier = notifier

	ctx := context.Background()
	if _, _, err := svc.UpdateProposedSlots(ctx, "t1", thisKey,
		models.ProposedSlots{"Thu (08-27)": "21:00"}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := svc.SetFinalTime(ctx, "t1", thisKey, "Thu (08-27) 21:00"); err != nil {
		t.Fatalf("announcement failure must not surface: %v", err)
	}
}

func TestRolloverAllPrunesAndSeeds(t *testing.T) {
	repo := newMockTeamRepo()
	repo.docs["t1"] = map[string]any{
		"id": "t1", "teamName": "Zakum 1",
		"schedules": map[string]any{
			"2026-08-13": map[string]any{"proposedSlots": map[string]any{}},
			string(thisKey): map[string]any{
				"proposedSlots": map[string]any{"Thu (08-27)": "21:00"},
				"availability":  map[string]any{"Thu (08-27) 21:00": []any{"Aria"}},
			},
		},
	}
	seedTeam(repo, "t2", "Zakum 2")
	svc := newService(repo)

	updated, err := svc.RolloverAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 2 {
		t.Errorf("expected 2 teams swept, got %d", updated)
	}
	schedules := repo.docs["t1"]["schedules"].(map[string]any)
	if _, ok := schedules["2026-08-13"]; ok {
		t.Error("stale window survived the sweep")
	}
	if _, ok := schedules[string(nextKey)]; !ok {
		t.Error("next window not seeded by the sweep")
	}
}
