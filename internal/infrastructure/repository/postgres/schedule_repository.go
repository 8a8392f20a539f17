package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	qb "github.com/JamesM813/NFL-Locked-In/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Upsert writes the batch in one transaction keyed by api_game_id, so a sync
// run either lands whole or not at all.
func (r *ScheduleRepository) Upsert(ctx context.Context, games []schedule.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, g := range games {
		query, args, err := qb.InsertModel("nfl_schedule", gameToInsertModel(g), `ON CONFLICT (api_game_id)
DO UPDATE SET season = EXCLUDED.season, week = EXCLUDED.week, home_team_id = EXCLUDED.home_team_id, away_team_id = EXCLUDED.away_team_id,
kickoff_at = EXCLUDED.kickoff_at, locks_at = EXCLUDED.locks_at, wave = EXCLUDED.wave, status = EXCLUDED.status,
winner_team_id = EXCLUDED.winner_team_id, is_tie = EXCLUDED.is_tie, home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score,
updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert game query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert game api_game_id=%s: %w", g.ExternalGameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule upsert tx: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) GetByExternalID(ctx context.Context, externalGameID string) (schedule.Game, bool, error) {
	query, args, err := qb.Select("*").From("nfl_schedule").
		Where(qb.Eq("api_game_id", externalGameID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return schedule.Game{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row scheduleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Game{}, false, nil
		}
		return schedule.Game{}, false, fmt.Errorf("select game api_game_id=%s: %w", externalGameID, err)
	}
	return gameFromRow(row), true, nil
}

func (r *ScheduleRepository) ListByWeek(ctx context.Context, season, week int) ([]schedule.Game, error) {
	query, args, err := qb.Select("*").From("nfl_schedule").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("kickoff_at", "api_game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select week query: %w", err)
	}

	var rows []scheduleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games season=%d week=%d: %w", season, week, err)
	}

	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *ScheduleRepository) ListFinalDecided(ctx context.Context, season int) ([]schedule.Game, error) {
	query, args, err := qb.Select("*").From("nfl_schedule").
		Where(
			qb.Eq("season", season),
			qb.Eq("status", schedule.StatusFinal),
			qb.Expr("(winner_team_id IS NOT NULL OR is_tie = TRUE)"),
		).
		OrderBy("week", "api_game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select final games query: %w", err)
	}

	var rows []scheduleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select final games season=%d: %w", season, err)
	}

	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}
