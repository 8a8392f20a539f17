package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/team"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/id"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/logging"
)

// ScheduleProvider fetches one regular-season week from the upstream scores
// feed. Team identity arrives as display names; mapping them onto the team
// registry is this service's job, not the provider's.
type ScheduleProvider interface {
	FetchWeek(ctx context.Context, season, week int) ([]ExternalGame, error)
}

type ExternalGame struct {
	ExternalID   string
	Week         int
	HomeTeamName string
	AwayTeamName string
	KickoffAt    time.Time
	Status       string
	HomeWinner   bool
	AwayWinner   bool
	HomeScore    *int
	AwayScore    *int
}

type SyncResult struct {
	RunID        string
	Season       int
	FetchedGames int
	UpsertedRows int
	SkippedGames int
	FailedWeeks  []int
	Duration     time.Duration
}

type ScheduleSyncConfig struct {
	Season       int
	FetchWorkers int
}

func (c ScheduleSyncConfig) normalize() ScheduleSyncConfig {
	if c.FetchWorkers <= 0 {
		c.FetchWorkers = 4
	}
	return c
}

type ScheduleSyncService struct {
	provider     ScheduleProvider
	teamRepo     team.Repository
	scheduleRepo schedule.Repository
	lockPolicy   LockPolicy
	eastern      *time.Location
	idGen        id.Generator
	cfg          ScheduleSyncConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewScheduleSyncService(
	provider ScheduleProvider,
	teamRepo team.Repository,
	scheduleRepo schedule.Repository,
	lockPolicy LockPolicy,
	eastern *time.Location,
	idGen id.Generator,
	cfg ScheduleSyncConfig,
	logger *logging.Logger,
) *ScheduleSyncService {
	if eastern == nil {
		eastern = time.UTC
	}
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleSyncService{
		provider:     provider,
		teamRepo:     teamRepo,
		scheduleRepo: scheduleRepo,
		lockPolicy:   lockPolicy,
		eastern:      eastern,
		idGen:        idGen,
		cfg:          cfg.normalize(),
		logger:       logger,
		now:          time.Now,
	}
}

type weekFetch struct {
	week  int
	games []ExternalGame
	err   error
}

// SyncSchedule pulls all regular-season weeks from the provider and upserts
// them into the schedule registry keyed by external game id. A week that
// fails to fetch is reported in the result and retried by the next run; it
// never aborts the weeks that did fetch.
func (s *ScheduleSyncService) SyncSchedule(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleSyncService.SyncSchedule")
	defer span.End()

	if s.provider == nil || s.teamRepo == nil || s.scheduleRepo == nil || s.lockPolicy == nil {
		return SyncResult{}, fmt.Errorf("%w: schedule sync is not fully configured", ErrDependencyUnavailable)
	}
	if s.cfg.Season <= 0 {
		return SyncResult{}, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}

	started := s.now()
	runID, err := s.idGen.NewID()
	if err != nil {
		return SyncResult{}, fmt.Errorf("generate sync run id: %w", err)
	}
	result := SyncResult{RunID: runID, Season: s.cfg.Season}

	teamsByName, err := s.loadTeamIndex(ctx)
	if err != nil {
		return result, err
	}

	fetches := make([]weekFetch, 0, schedule.LastWeek)
	p := pool.NewWithResults[weekFetch]().WithMaxGoroutines(s.cfg.FetchWorkers)
	for week := schedule.FirstWeek; week <= schedule.LastWeek; week++ {
		week := week
		p.Go(func() weekFetch {
			games, fetchErr := s.provider.FetchWeek(ctx, s.cfg.Season, week)
			return weekFetch{week: week, games: games, err: fetchErr}
		})
	}
	fetches = append(fetches, p.Wait()...)
	sort.Slice(fetches, func(i, j int) bool { return fetches[i].week < fetches[j].week })

	seen := make(map[string]bool)
	games := make([]schedule.Game, 0, 16*schedule.LastWeek)
	for _, fetch := range fetches {
		if fetch.err != nil {
			s.logger.WarnContext(ctx,
				"schedule week fetch failed, will retry next run",
				"run_id", runID,
				"season", s.cfg.Season,
				"week", fetch.week,
				"error", fetch.err.Error(),
			)
			result.FailedWeeks = append(result.FailedWeeks, fetch.week)
			continue
		}

		for _, external := range fetch.games {
			result.FetchedGames++
			game, ok := s.mapExternalGame(ctx, runID, fetch.week, external, teamsByName)
			if !ok {
				result.SkippedGames++
				continue
			}
			if seen[game.ExternalGameID] {
				continue
			}
			seen[game.ExternalGameID] = true
			games = append(games, game)
		}
	}

	if len(games) > 0 {
		if err := s.scheduleRepo.Upsert(ctx, games); err != nil {
			return result, fmt.Errorf("upsert schedule run_id=%s season=%d: %w", runID, s.cfg.Season, err)
		}
		result.UpsertedRows = len(games)
	}

	result.Duration = s.now().Sub(started)
	s.logger.InfoContext(ctx,
		"schedule sync finished",
		"run_id", runID,
		"season", s.cfg.Season,
		"fetched_games", result.FetchedGames,
		"upserted_rows", result.UpsertedRows,
		"skipped_games", result.SkippedGames,
		"failed_weeks", len(result.FailedWeeks),
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

func (s *ScheduleSyncService) loadTeamIndex(ctx context.Context) (map[string]string, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams for schedule sync: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: team registry is empty", ErrDependencyUnavailable)
	}

	index := make(map[string]string, len(teams)*2)
	for _, t := range teams {
		if key := normalizeTeamName(t.Name); key != "" {
			index[key] = t.ID
		}
		if key := normalizeTeamName(t.Abbreviation); key != "" {
			index[key] = t.ID
		}
	}
	return index, nil
}

func (s *ScheduleSyncService) mapExternalGame(ctx context.Context, runID string, week int, external ExternalGame, teamsByName map[string]string) (schedule.Game, bool) {
	if strings.TrimSpace(external.ExternalID) == "" || external.KickoffAt.IsZero() {
		s.logger.WarnContext(ctx,
			"skip malformed schedule event",
			"run_id", runID,
			"week", week,
			"external_game_id", external.ExternalID,
		)
		return schedule.Game{}, false
	}

	homeID, homeOK := teamsByName[normalizeTeamName(external.HomeTeamName)]
	awayID, awayOK := teamsByName[normalizeTeamName(external.AwayTeamName)]
	if !homeOK || !awayOK {
		s.logger.WarnContext(ctx,
			"skip schedule event with unmapped team",
			"run_id", runID,
			"week", week,
			"external_game_id", external.ExternalID,
			"home_team", external.HomeTeamName,
			"away_team", external.AwayTeamName,
		)
		return schedule.Game{}, false
	}

	game := schedule.Game{
		ExternalGameID: external.ExternalID,
		Season:         s.cfg.Season,
		Week:           week,
		HomeTeamID:     homeID,
		AwayTeamID:     awayID,
		KickoffAt:      external.KickoffAt.UTC(),
		LocksAt:        s.lockPolicy.LocksAt(external.KickoffAt).UTC(),
		Wave:           schedule.WaveForKickoff(external.KickoffAt, s.eastern),
		Status:         schedule.NormalizeStatus(external.Status),
		HomeScore:      external.HomeScore,
		AwayScore:      external.AwayScore,
	}

	if game.Status == schedule.StatusFinal {
		switch {
		case external.HomeWinner && !external.AwayWinner:
			game.WinnerTeamID = homeID
		case external.AwayWinner && !external.HomeWinner:
			game.WinnerTeamID = awayID
		case external.HomeScore != nil && external.AwayScore != nil && *external.HomeScore == *external.AwayScore:
			game.IsTie = true
		}
	}

	return game, true
}

func normalizeTeamName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
