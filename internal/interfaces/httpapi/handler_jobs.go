package httpapi

import (
	"net/http"
	"strings"
	"time"
)

type syncResultDTO struct {
	RunID        string `json:"runId"`
	Season       int    `json:"season"`
	FetchedGames int    `json:"fetchedGames"`
	UpsertedRows int    `json:"upsertedRows"`
	SkippedGames int    `json:"skippedGames"`
	FailedWeeks  []int  `json:"failedWeeks"`
	DurationMS   int64  `json:"durationMs"`
}

type reconcileResultDTO struct {
	GamesScanned  int      `json:"gamesScanned"`
	PicksResolved int      `json:"picksResolved"`
	GroupsSkipped int      `json:"groupsSkipped"`
	FailedGames   []string `json:"failedGames"`
	DurationMS    int64    `json:"durationMs"`
}

// RunScheduleSync is triggered by the internal scheduler, never by end users.
func (h *Handler) RunScheduleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScheduleSync")
	defer span.End()

	result, err := h.syncService.SyncSchedule(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "schedule sync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx,
		"schedule sync job finished",
		"run_id", result.RunID,
		"fetched_games", result.FetchedGames,
		"upserted_rows", result.UpsertedRows,
		"failed_weeks", result.FailedWeeks,
	)
	writeSuccess(ctx, w, http.StatusOK, syncResultDTO{
		RunID:        result.RunID,
		Season:       result.Season,
		FetchedGames: result.FetchedGames,
		UpsertedRows: result.UpsertedRows,
		SkippedGames: result.SkippedGames,
		FailedWeeks:  result.FailedWeeks,
		DurationMS:   result.Duration.Milliseconds(),
	})
}

// RunReconcile sweeps all decided final games. An optional ?gameId= narrows
// the run to a single game for targeted replays.
func (h *Handler) RunReconcile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcile")
	defer span.End()

	if gameID := strings.TrimSpace(r.URL.Query().Get("gameId")); gameID != "" {
		started := time.Now()
		resolved, err := h.reconcileService.ReconcileGame(ctx, gameID)
		if err != nil {
			h.logger.ErrorContext(ctx, "reconcile job failed", "api_game_id", gameID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, reconcileResultDTO{
			GamesScanned:  1,
			PicksResolved: resolved,
			DurationMS:    time.Since(started).Milliseconds(),
		})
		return
	}

	result, err := h.reconcileService.ReconcileFinishedGames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx,
		"reconcile job finished",
		"games_scanned", result.GamesScanned,
		"picks_resolved", result.PicksResolved,
		"groups_skipped", result.GroupsSkipped,
		"failed_games", result.FailedGames,
	)
	writeSuccess(ctx, w, http.StatusOK, reconcileResultDTO{
		GamesScanned:  result.GamesScanned,
		PicksResolved: result.PicksResolved,
		GroupsSkipped: result.GroupsSkipped,
		FailedGames:   result.FailedGames,
		DurationMS:    result.Duration.Milliseconds(),
	})
}
