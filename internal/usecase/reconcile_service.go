package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/group"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/scoring"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/logging"
)

type ReconcileResult struct {
	GamesScanned  int
	PicksResolved int
	GroupsSkipped int
	FailedGames   []string
	Duration      time.Duration
}

type ReconcileConfig struct {
	Season  int
	Workers int
}

func (c ReconcileConfig) normalize() ReconcileConfig {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	return c
}

// ReconcileService resolves pending picks against final game outcomes. Every
// write goes through the repository's pending-only resolve, so sweeping the
// same final game twice never rescores a pick.
type ReconcileService struct {
	scheduleRepo schedule.Repository
	pickRepo     pick.Repository
	directory    group.Directory
	cfg          ReconcileConfig
	logger       *logging.Logger
}

func NewReconcileService(
	scheduleRepo schedule.Repository,
	pickRepo pick.Repository,
	directory group.Directory,
	cfg ReconcileConfig,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReconcileService{
		scheduleRepo: scheduleRepo,
		pickRepo:     pickRepo,
		directory:    directory,
		cfg:          cfg.normalize(),
		logger:       logger,
	}
}

// ReconcileFinishedGames sweeps every final game with a decided outcome. A
// game that fails keeps its picks pending and is reported for the next sweep;
// it never aborts the rest of the batch.
func (s *ReconcileService) ReconcileFinishedGames(ctx context.Context) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileFinishedGames")
	defer span.End()

	if s.scheduleRepo == nil || s.pickRepo == nil || s.directory == nil {
		return ReconcileResult{}, fmt.Errorf("%w: reconciler is not fully configured", ErrDependencyUnavailable)
	}

	started := time.Now()
	games, err := s.scheduleRepo.ListFinalDecided(ctx, s.cfg.Season)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list final games season=%d: %w", s.cfg.Season, err)
	}

	result := ReconcileResult{GamesScanned: len(games)}
	if len(games) == 0 {
		result.Duration = time.Since(started)
		return result, nil
	}

	workerCount := s.cfg.Workers
	if workerCount > len(games) {
		workerCount = len(games)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("create reconcile worker pool: %w", err)
	}
	defer workerPool.Release()

	var resolvedCount, skippedGroups atomic.Int64
	var mu sync.Mutex
	var failed []string

	var workers sync.WaitGroup
	for _, game := range games {
		game := game
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			resolved, skipped, gameErr := s.reconcileGame(ctx, game)
			resolvedCount.Add(int64(resolved))
			skippedGroups.Add(int64(skipped))
			if gameErr != nil {
				s.logger.WarnContext(ctx,
					"game reconciliation failed, picks stay pending",
					"external_game_id", game.ExternalGameID,
					"week", game.Week,
					"error", gameErr.Error(),
				)
				mu.Lock()
				failed = append(failed, game.ExternalGameID)
				mu.Unlock()
			}
		}); err != nil {
			workers.Done()
			mu.Lock()
			failed = append(failed, game.ExternalGameID)
			mu.Unlock()
		}
	}
	workers.Wait()

	result.PicksResolved = int(resolvedCount.Load())
	result.GroupsSkipped = int(skippedGroups.Load())
	result.FailedGames = failed
	result.Duration = time.Since(started)

	s.logger.InfoContext(ctx,
		"reconcile sweep finished",
		"season", s.cfg.Season,
		"games_scanned", result.GamesScanned,
		"picks_resolved", result.PicksResolved,
		"groups_skipped", result.GroupsSkipped,
		"failed_games", len(result.FailedGames),
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// ReconcileGame resolves the pending picks of a single game by external id.
func (s *ReconcileService) ReconcileGame(ctx context.Context, externalGameID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileGame")
	defer span.End()

	game, ok, err := s.scheduleRepo.GetByExternalID(ctx, externalGameID)
	if err != nil {
		return 0, fmt.Errorf("get game external_game_id=%s: %w", externalGameID, err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: game external_game_id=%s", ErrNotFound, externalGameID)
	}
	if !game.Decided() {
		return 0, fmt.Errorf("%w: game external_game_id=%s has no decided outcome", ErrDependencyUnavailable, externalGameID)
	}

	resolved, _, err := s.reconcileGame(ctx, game)
	return resolved, err
}

func (s *ReconcileService) reconcileGame(ctx context.Context, game schedule.Game) (resolved, skippedGroups int, err error) {
	winners := make(map[string]bool)
	for _, teamID := range game.Winners() {
		winners[teamID] = true
	}
	if len(winners) == 0 {
		return 0, 0, fmt.Errorf("game external_game_id=%s has no winners set", game.ExternalGameID)
	}

	pending, err := s.pickRepo.ListPendingByGame(ctx, game.ExternalGameID)
	if err != nil {
		return 0, 0, fmt.Errorf("list pending picks external_game_id=%s: %w", game.ExternalGameID, err)
	}
	if len(pending) == 0 {
		return 0, 0, nil
	}

	byGroup := make(map[string][]pick.Pick)
	for _, p := range pending {
		byGroup[p.GroupID] = append(byGroup[p.GroupID], p)
	}

	for groupID, groupPicks := range byGroup {
		n, groupErr := s.reconcileGroup(ctx, game, groupID, groupPicks, winners)
		if groupErr != nil {
			// The group's picks stay pending and are retried next sweep.
			s.logger.WarnContext(ctx,
				"group reconciliation skipped",
				"external_game_id", game.ExternalGameID,
				"group_id", groupID,
				"error", groupErr.Error(),
			)
			skippedGroups++
			continue
		}
		resolved += n
	}

	return resolved, skippedGroups, nil
}

func (s *ReconcileService) reconcileGroup(ctx context.Context, game schedule.Game, groupID string, groupPicks []pick.Pick, winners map[string]bool) (int, error) {
	members, err := s.directory.ListMembers(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("list members group=%s: %w", groupID, err)
	}
	size := len(members)
	isMember := make(map[string]bool, size)
	for _, m := range members {
		isMember[m.UserID] = true
	}

	// Shared counts include already-resolved picks of the same week, so a
	// partial earlier sweep cannot change what a rerun awards. Rows left
	// behind by departed members count for nothing and stay untouched.
	weekPicks, err := s.pickRepo.ListByGroupWeek(ctx, groupID, game.Week)
	if err != nil {
		return 0, fmt.Errorf("list week picks group=%s week=%d: %w", groupID, game.Week, err)
	}
	countByTeam := make(map[string]int, len(weekPicks))
	for _, p := range weekPicks {
		if isMember[p.UserID] {
			countByTeam[p.TeamID]++
		}
	}

	resolved := 0
	for _, p := range groupPicks {
		if !isMember[p.UserID] {
			continue
		}
		status := pick.StatusIncorrect
		score := 0
		if winners[p.TeamID] {
			points, scoreErr := scoring.Points(size, countByTeam[p.TeamID])
			if scoreErr != nil {
				return resolved, fmt.Errorf("score pick user=%s group=%s week=%d: %w", p.UserID, groupID, p.Week, scoreErr)
			}
			status = pick.StatusCorrect
			score = points
		}

		updated, resolveErr := s.pickRepo.Resolve(ctx, p.UserID, p.GroupID, p.Week, status, score)
		if resolveErr != nil {
			return resolved, fmt.Errorf("resolve pick user=%s group=%s week=%d: %w", p.UserID, groupID, p.Week, resolveErr)
		}
		if updated {
			resolved++
		}
	}

	return resolved, nil
}
