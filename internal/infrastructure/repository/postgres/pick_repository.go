package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
	qb "github.com/JamesM813/NFL-Locked-In/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) Upsert(ctx context.Context, p pick.Pick) (pick.Pick, error) {
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	model := pickInsertModel{
		UserID:    p.UserID,
		GroupID:   p.GroupID,
		Week:      p.Week,
		TeamID:    p.TeamID,
		APIGameID: p.ExternalGameID,
		Status:    p.Status,
		Score:     p.Score,
		LocksAt:   p.LocksAt,
		UpdatedAt: updatedAt,
	}
	query, args, err := qb.InsertModel("picks", model, `ON CONFLICT (user_id, group_id, week)
DO UPDATE SET team_id = EXCLUDED.team_id, api_game_id = EXCLUDED.api_game_id, status = EXCLUDED.status,
score = EXCLUDED.score, locks_at = EXCLUDED.locks_at, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("build upsert pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return pick.Pick{}, fmt.Errorf("upsert pick user=%s group=%s week=%d: %w", p.UserID, p.GroupID, p.Week, err)
	}

	p.UpdatedAt = updatedAt
	return p, nil
}

func (r *PickRepository) Delete(ctx context.Context, userID, groupID string, week int) error {
	query, args, err := qb.DeleteFrom("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("group_id", groupID),
			qb.Eq("week", week),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete pick user=%s group=%s week=%d: %w", userID, groupID, week, err)
	}
	return nil
}

func (r *PickRepository) Get(ctx context.Context, userID, groupID string, week int) (pick.Pick, bool, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("group_id", groupID),
			qb.Eq("week", week),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build select pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("select pick user=%s group=%s week=%d: %w", userID, groupID, week, err)
	}
	return pickFromRow(row), true, nil
}

func (r *PickRepository) ListByUserGroup(ctx context.Context, userID, groupID string) ([]pick.Pick, error) {
	return r.list(ctx, []qb.Condition{
		qb.Eq("user_id", userID),
		qb.Eq("group_id", groupID),
	})
}

func (r *PickRepository) ListByGroup(ctx context.Context, groupID string) ([]pick.Pick, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("group_id", groupID)})
}

func (r *PickRepository) ListByGroupWeek(ctx context.Context, groupID string, week int) ([]pick.Pick, error) {
	return r.list(ctx, []qb.Condition{
		qb.Eq("group_id", groupID),
		qb.Eq("week", week),
	})
}

func (r *PickRepository) ListPendingByGame(ctx context.Context, externalGameID string) ([]pick.Pick, error) {
	return r.list(ctx, []qb.Condition{
		qb.Eq("api_game_id", externalGameID),
		qb.Eq("status", pick.StatusPending),
	})
}

func (r *PickRepository) list(ctx context.Context, conditions []qb.Condition) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(conditions...).
		OrderBy("group_id", "user_id", "week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

// Resolve flips a pending pick to its resolved status. The pending guard in
// the WHERE clause is what makes reconciliation reruns safe.
func (r *PickRepository) Resolve(ctx context.Context, userID, groupID string, week int, status string, score int) (bool, error) {
	query, args, err := qb.Update("picks").
		Set("status", status).
		Set("score", score).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("group_id", groupID),
			qb.Eq("week", week),
			qb.Eq("status", pick.StatusPending),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build resolve pick query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("resolve pick user=%s group=%s week=%d: %w", userID, groupID, week, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve pick rows affected: %w", err)
	}
	return affected > 0, nil
}
