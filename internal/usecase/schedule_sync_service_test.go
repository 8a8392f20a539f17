package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/team"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/logging"
)

type stubScheduleProvider struct {
	mu     sync.Mutex
	byWeek map[int][]ExternalGame
	errs   map[int]error
	calls  map[int]int
}

func newStubScheduleProvider() *stubScheduleProvider {
	return &stubScheduleProvider{
		byWeek: make(map[int][]ExternalGame),
		errs:   make(map[int]error),
		calls:  make(map[int]int),
	}
}

func (p *stubScheduleProvider) FetchWeek(_ context.Context, _, week int) ([]ExternalGame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[week]++
	if err := p.errs[week]; err != nil {
		return nil, err
	}
	return p.byWeek[week], nil
}

func syncTestTeams() []team.Team {
	return []team.Team{
		{ID: "phi", Name: "Philadelphia Eagles", Abbreviation: "PHI"},
		{ID: "dal", Name: "Dallas Cowboys", Abbreviation: "DAL"},
		{ID: "kc", Name: "Kansas City Chiefs", Abbreviation: "KC"},
		{ID: "buf", Name: "Buffalo Bills", Abbreviation: "BUF"},
	}
}

func newSyncServiceForTest(t *testing.T, provider ScheduleProvider, scheduleRepo schedule.Repository) *ScheduleSyncService {
	t.Helper()

	eastern := easternLocation(t)
	return NewScheduleSyncService(
		provider,
		&stubTeamRepo{teams: syncTestTeams()},
		scheduleRepo,
		NewWaveDeadlinePolicy(eastern),
		eastern,
		nil,
		ScheduleSyncConfig{Season: 2025, FetchWorkers: 3},
		logging.NewNop(),
	)
}

func TestSyncScheduleUpsertsMappedGames(t *testing.T) {
	t.Parallel()

	eastern := easternLocation(t)
	provider := newStubScheduleProvider()
	provider.byWeek[1] = []ExternalGame{
		{
			ExternalID:   "401001",
			HomeTeamName: "Philadelphia Eagles",
			AwayTeamName: "Dallas Cowboys",
			KickoffAt:    time.Date(2025, 9, 4, 20, 15, 0, 0, eastern),
			Status:       "scheduled",
		},
		{
			ExternalID:   "401002",
			HomeTeamName: "Kansas City Chiefs",
			AwayTeamName: "Buffalo Bills",
			KickoffAt:    time.Date(2025, 9, 7, 13, 0, 0, 0, eastern),
			Status:       "scheduled",
		},
	}
	repo := newStubScheduleRepo()

	svc := newSyncServiceForTest(t, provider, repo)
	result, err := svc.SyncSchedule(context.Background())
	if err != nil {
		t.Fatalf("SyncSchedule: %v", err)
	}

	if result.FetchedGames != 2 || result.UpsertedRows != 2 || result.SkippedGames != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.RunID == "" {
		t.Fatal("expected a run id")
	}
	if len(result.FailedWeeks) != 0 {
		t.Fatalf("unexpected failed weeks: %v", result.FailedWeeks)
	}

	opener, ok, err := repo.GetByExternalID(context.Background(), "401001")
	if err != nil || !ok {
		t.Fatalf("opener not stored: ok=%v err=%v", ok, err)
	}
	if opener.HomeTeamID != "phi" || opener.AwayTeamID != "dal" {
		t.Fatalf("opener teams = %s vs %s", opener.HomeTeamID, opener.AwayTeamID)
	}
	if opener.Wave != schedule.Wave1 {
		t.Fatalf("thursday opener wave = %d", opener.Wave)
	}
	wantLock := time.Date(2025, 9, 4, 19, 45, 0, 0, eastern)
	if !opener.LocksAt.Equal(wantLock) {
		t.Fatalf("opener locks at %s, want %s", opener.LocksAt, wantLock)
	}

	sunday, _, _ := repo.GetByExternalID(context.Background(), "401002")
	if sunday.Wave != schedule.Wave2 {
		t.Fatalf("sunday game wave = %d", sunday.Wave)
	}
}

func TestSyncScheduleSkipsUnmappedTeamsAndDuplicates(t *testing.T) {
	t.Parallel()

	eastern := easternLocation(t)
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, eastern)
	provider := newStubScheduleProvider()
	provider.byWeek[1] = []ExternalGame{
		{ExternalID: "401001", HomeTeamName: "Philadelphia Eagles", AwayTeamName: "Dallas Cowboys", KickoffAt: kickoff},
		{ExternalID: "401001", HomeTeamName: "Philadelphia Eagles", AwayTeamName: "Dallas Cowboys", KickoffAt: kickoff},
		{ExternalID: "401099", HomeTeamName: "London Monarchs", AwayTeamName: "Dallas Cowboys", KickoffAt: kickoff},
	}
	repo := newStubScheduleRepo()

	svc := newSyncServiceForTest(t, provider, repo)
	result, err := svc.SyncSchedule(context.Background())
	if err != nil {
		t.Fatalf("SyncSchedule: %v", err)
	}

	if result.FetchedGames != 3 {
		t.Fatalf("fetched = %d", result.FetchedGames)
	}
	if result.SkippedGames != 1 {
		t.Fatalf("skipped = %d", result.SkippedGames)
	}
	if result.UpsertedRows != 1 {
		t.Fatalf("upserted = %d", result.UpsertedRows)
	}
	if _, ok, _ := repo.GetByExternalID(context.Background(), "401099"); ok {
		t.Fatal("unmapped game must not be stored")
	}
}

func TestSyncScheduleIsolatesWeekFailures(t *testing.T) {
	t.Parallel()

	eastern := easternLocation(t)
	provider := newStubScheduleProvider()
	provider.byWeek[1] = []ExternalGame{
		{ExternalID: "401001", HomeTeamName: "Philadelphia Eagles", AwayTeamName: "Dallas Cowboys", KickoffAt: time.Date(2025, 9, 7, 13, 0, 0, 0, eastern)},
	}
	provider.errs[5] = errors.New("upstream 503")
	repo := newStubScheduleRepo()

	svc := newSyncServiceForTest(t, provider, repo)
	result, err := svc.SyncSchedule(context.Background())
	if err != nil {
		t.Fatalf("SyncSchedule: %v", err)
	}

	if len(result.FailedWeeks) != 1 || result.FailedWeeks[0] != 5 {
		t.Fatalf("failed weeks = %v", result.FailedWeeks)
	}
	if result.UpsertedRows != 1 {
		t.Fatalf("upserted = %d", result.UpsertedRows)
	}
	for week := schedule.FirstWeek; week <= schedule.LastWeek; week++ {
		if provider.calls[week] != 1 {
			t.Fatalf("week %d fetched %d times", week, provider.calls[week])
		}
	}
}

func TestSyncScheduleMapsFinalOutcomes(t *testing.T) {
	t.Parallel()

	eastern := easternLocation(t)
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, eastern)
	win, lose, tied := 27, 20, 24
	provider := newStubScheduleProvider()
	provider.byWeek[1] = []ExternalGame{
		{
			ExternalID:   "401001",
			HomeTeamName: "Philadelphia Eagles",
			AwayTeamName: "Dallas Cowboys",
			KickoffAt:    kickoff,
			Status:       "final",
			AwayWinner:   true,
			HomeScore:    &lose,
			AwayScore:    &win,
		},
		{
			ExternalID:   "401002",
			HomeTeamName: "Kansas City Chiefs",
			AwayTeamName: "Buffalo Bills",
			KickoffAt:    kickoff,
			Status:       "final",
			HomeScore:    &tied,
			AwayScore:    &tied,
		},
	}
	repo := newStubScheduleRepo()

	svc := newSyncServiceForTest(t, provider, repo)
	if _, err := svc.SyncSchedule(context.Background()); err != nil {
		t.Fatalf("SyncSchedule: %v", err)
	}

	decided, _, _ := repo.GetByExternalID(context.Background(), "401001")
	if decided.WinnerTeamID != "dal" || decided.IsTie {
		t.Fatalf("decided game outcome = winner=%q tie=%v", decided.WinnerTeamID, decided.IsTie)
	}

	tie, _, _ := repo.GetByExternalID(context.Background(), "401002")
	if tie.WinnerTeamID != "" || !tie.IsTie {
		t.Fatalf("tie game outcome = winner=%q tie=%v", tie.WinnerTeamID, tie.IsTie)
	}
	if got := tie.Winners(); len(got) != 2 {
		t.Fatalf("tie winners = %v", got)
	}
}

func TestSyncScheduleRerunIsIdempotent(t *testing.T) {
	t.Parallel()

	eastern := easternLocation(t)
	provider := newStubScheduleProvider()
	provider.byWeek[1] = []ExternalGame{
		{ExternalID: "401001", HomeTeamName: "Philadelphia Eagles", AwayTeamName: "Dallas Cowboys", KickoffAt: time.Date(2025, 9, 7, 13, 0, 0, 0, eastern)},
	}
	repo := newStubScheduleRepo()

	svc := newSyncServiceForTest(t, provider, repo)
	for i := 0; i < 2; i++ {
		if _, err := svc.SyncSchedule(context.Background()); err != nil {
			t.Fatalf("SyncSchedule run %d: %v", i+1, err)
		}
	}

	games, err := repo.ListByWeek(context.Background(), 2025, 1)
	if err != nil {
		t.Fatalf("ListByWeek: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected a single row after rerun, got %d", len(games))
	}
}
