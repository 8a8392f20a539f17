package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/team"
	qb "github.com/JamesM813/NFL-Locked-In/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team id=%s: %w", teamID, err)
	}
	return teamFromRow(row), true, nil
}

// Upsert keeps the registry in step with the seed list. Registry rows are
// never deleted; franchise renames update in place.
func (r *TeamRepository) Upsert(ctx context.Context, teams []team.Team) error {
	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("validate team id=%s: %w", t.ID, err)
		}

		model := teamInsertModel{
			ID:           t.ID,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			LogoURL:      t.LogoURL,
		}
		query, args, err := qb.InsertModel("teams", model, `ON CONFLICT (id)
DO UPDATE SET name = EXCLUDED.name, abbreviation = EXCLUDED.abbreviation, logo_url = EXCLUDED.logo_url, updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert team query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert team id=%s: %w", t.ID, err)
		}
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.ID,
		Name:         row.Name,
		Abbreviation: row.Abbreviation,
		LogoURL:      row.LogoURL,
	}
}
