package roster

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	rosterRepo "guildroster/database/repository/roster"
	"guildroster/models"
	"guildroster/services/schedule"
)

var thursday = time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC)

const (
	thisKey models.WeekKey = "2026-08-27"
	nextKey models.WeekKey = "2026-09-03"
)

type mockRosterRepo struct {
	docs    map[string]map[string]any
	upserts []models.MemberProfile
	readErr error
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{docs: make(map[string]map[string]any)}
}

func (m *mockRosterRepo) Upsert(_ context.Context, profile models.MemberProfile) error {
	m.upserts = append(m.upserts, profile)
	m.docs[profile.Name] = rawProfile(profile)
	return nil
}

func (m *mockRosterRepo) GetRawByName(_ context.Context, name string) (map[string]any, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	doc, ok := m.docs[name]
	if !ok {
		return nil, rosterRepo.ErrNotFound
	}
	return doc, nil
}

func (m *mockRosterRepo) GetAllRaw(_ context.Context) (map[string]map[string]any, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.docs, nil
}

func (m *mockRosterRepo) Delete(_ context.Context, name string) error {
	delete(m.docs, name)
	return nil
}

func rawProfile(p models.MemberProfile) map[string]any {
	doc := map[string]any{
		"name":          p.Name,
		"job":           p.Job,
		"level":         p.Level,
		"atk":           p.Atk,
		"isGuildMember": p.IsGuildMember,
	}
	weekly := map[string]any{}
	for week, entry := range p.WeeklyData {
		avail := map[string]any{}
		for day, ok := range entry.Availability {
			avail[day] = ok
		}
		weekly[string(week)] = map[string]any{
			"availability":       avail,
			"participationCount": entry.ParticipationCount,
		}
	}
	doc["weeklyData"] = weekly
	return doc
}

func newService(repo *mockRosterRepo) *DefaultRosterService {
	return &DefaultRosterService{
		Repo:   repo,
		Anchor: time.Thursday,
		Now:    func() time.Time { return thursday },
	}
}

func TestNormalizeProfileFlatLegacyPoll(t *testing.T) {
	doc := map[string]any{
		"name":                       "Aria",
		"job":                        "Bishop",
		"is_guild_member":            true,
		"weekly_week_start":          string(thisKey),
		"weekly_availability":        map[string]any{"Thursday": true, "Saturday": false},
		"weekly_participation_count": float64(1),
	}
	p := NormalizeProfile("Aria", doc, thisKey, nextKey, nil)

	entry, ok := p.WeeklyData[thisKey]
	if !ok {
		t.Fatal("flat legacy poll not migrated")
	}
	if !entry.Availability["Thursday"] || entry.Availability["Saturday"] {
		t.Errorf("availability = %v", entry.Availability)
	}
	if entry.ParticipationCount != 1 {
		t.Errorf("participationCount = %d", entry.ParticipationCount)
	}
	if !p.IsGuildMember {
		t.Error("snake_case guild flag not read")
	}
}

func TestNormalizeProfileCanonicalWinsOverLegacy(t *testing.T) {
	doc := map[string]any{
		"name": "Aria",
		"weeklyData": map[string]any{
			string(thisKey): map[string]any{
				"availability":       map[string]any{"Friday": true},
				"participationCount": 2,
			},
		},
		"weekly_week_start":   string(thisKey),
		"weekly_availability": map[string]any{"Thursday": true},
	}
	p := NormalizeProfile("Aria", doc, thisKey, nextKey, nil)

	entry := p.WeeklyData[thisKey]
	if entry == nil || !entry.Availability["Friday"] || entry.Availability["Thursday"] {
		t.Errorf("canonical weeklyData must win, got %+v", entry)
	}
}

func TestNormalizeProfilePrunesStaleWeeks(t *testing.T) {
	doc := map[string]any{
		"name": "Aria",
		"weeklyData": map[string]any{
			"2026-08-13":    map[string]any{"availability": map[string]any{"Thursday": true}},
			string(nextKey): map[string]any{"availability": map[string]any{"Friday": true}},
		},
	}
	p := NormalizeProfile("Aria", doc, thisKey, nextKey, nil)

	if _, ok := p.WeeklyData["2026-08-13"]; ok {
		t.Error("stale week survived normalization")
	}
	if _, ok := p.WeeklyData[nextKey]; !ok {
		t.Error("live week dropped")
	}
}

func TestNormalizeProfileToleratesJunk(t *testing.T) {
	docs := []map[string]any{
		nil,
		{"weeklyData": "not a map"},
		{"weeklyData": map[string]any{string(thisKey): "not a map"}},
		{"weekly_availability": []any{"Thursday"}},
		{"weekly_participation_count": "three"},
		{"level": 200},
	}
	for i, doc := range docs {
		p := NormalizeProfile("Aria", doc, thisKey, nextKey, nil)
		if p == nil || p.Name != "Aria" {
			t.Errorf("doc %d: junk input must still yield a usable profile", i)
		}
	}
}

func TestSubmitWeeklyPollReplacesEntry(t *testing.T) {
	repo := newMockRosterRepo()
	repo.docs["Aria"] = map[string]any{"name": "Aria", "isGuildMember": true}
	svc := newService(repo)

	ctx := context.Background()
	if _, err := svc.SubmitWeeklyPoll(ctx, "Aria", thisKey,
		map[string]bool{"Thursday": true, "Friday": true}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := svc.SubmitWeeklyPoll(ctx, "Aria", thisKey,
		map[string]bool{"Saturday": true}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := p.WeeklyData[thisKey]
	want := map[string]bool{"Saturday": true}
	if !reflect.DeepEqual(entry.Availability, want) {
		t.Errorf("resubmission must fully replace the week, got %v", entry.Availability)
	}
}

func TestSubmitWeeklyPollRejectsStaleWeek(t *testing.T) {
	repo := newMockRosterRepo()
	repo.docs["Aria"] = map[string]any{"name": "Aria"}
	svc := newService(repo)

	_, err := svc.SubmitWeeklyPoll(context.Background(), "Aria", "2026-08-13",
		map[string]bool{"Thursday": true}, 0)
	if err == nil || !schedule.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.upserts) != 0 {
		t.Error("rejected poll must not write")
	}
}

func TestSubmitWeeklyPollDropsUnknownDays(t *testing.T) {
	repo := newMockRosterRepo()
	repo.docs["Aria"] = map[string]any{"name": "Aria"}
	svc := newService(repo)

	p, err := svc.SubmitWeeklyPoll(context.Background(), "Aria", thisKey,
		map[string]bool{"Thursday": true, "Someday": true}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := p.WeeklyData[thisKey]
	if _, ok := entry.Availability["Someday"]; ok {
		t.Error("unknown weekday must be dropped")
	}
	if !entry.Availability["Thursday"] {
		t.Error("known weekday lost")
	}
}

func TestAvailableMembersFiltersAndSorts(t *testing.T) {
	repo := newMockRosterRepo()
	svc := newService(repo)
	ctx := context.Background()

	for _, m := range []models.MemberProfile{
		{Name: "Zed", IsGuildMember: true, WeeklyData: map[models.WeekKey]*models.WeeklyEntry{
			thisKey: {Availability: map[string]bool{"Thursday": true}},
		}},
		{Name: "Aria", IsGuildMember: true, WeeklyData: map[models.WeekKey]*models.WeeklyEntry{
			thisKey: {Availability: map[string]bool{"Thursday": true}},
		}},
		{Name: "Guest", IsGuildMember: false, WeeklyData: map[models.WeekKey]*models.WeeklyEntry{
			thisKey: {Availability: map[string]bool{"Thursday": true}},
		}},
		{Name: "Busy", IsGuildMember: true},
	} {
		if err := svc.Upsert(ctx, m); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	names, err := svc.AvailableMembers(ctx, thisKey, "Thursday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"Aria", "Zed"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestGetMigratesAndWritesBack(t *testing.T) {
	repo := newMockRosterRepo()
	repo.docs["Aria"] = map[string]any{
		"name":                "Aria",
		"weekly_week_start":   string(thisKey),
		"weekly_availability": map[string]any{"Thursday": true},
	}
	svc := newService(repo)

	p, err := svc.Get(context.Background(), "Aria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.AvailableOn(thisKey, "Thursday") {
		t.Error("legacy poll not visible after migration")
	}
	if len(repo.upserts) != 1 {
		t.Errorf("expected one write-back, got %d", len(repo.upserts))
	}
	if _, ok := repo.docs["Aria"]["weekly_week_start"]; ok {
		t.Error("write-back should drop the flat legacy fields")
	}
}

func TestUpsertRequiresName(t *testing.T) {
	svc := newService(newMockRosterRepo())
	err := svc.Upsert(context.Background(), models.MemberProfile{})
	if err == nil || !schedule.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReadErrorSurfaces(t *testing.T) {
	repo := newMockRosterRepo()
	repo.readErr = errors.New("store down")
	svc := newService(repo)

	if _, err := svc.List(context.Background()); err == nil || err.Error() != "store down" {
		t.Fatalf("store error should surface verbatim, got %v", err)
	}
}
