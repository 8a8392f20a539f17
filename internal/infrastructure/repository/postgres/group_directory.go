package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/group"
	qb "github.com/JamesM813/NFL-Locked-In/internal/platform/querybuilder"
)

type groupMemberTableModel struct {
	GroupID string `db:"group_id"`
	UserID  string `db:"user_id"`
	IsAdmin bool   `db:"is_admin"`
}

// GroupDirectory reads group membership. The product's account system owns
// these rows; this subsystem only ever reads them.
type GroupDirectory struct {
	db *sqlx.DB
}

func NewGroupDirectory(db *sqlx.DB) *GroupDirectory {
	return &GroupDirectory{db: db}
}

func (d *GroupDirectory) ListMembers(ctx context.Context, groupID string) ([]group.Member, error) {
	query, args, err := qb.Select("group_id", "user_id", "is_admin").From("group_members").
		Where(qb.Eq("group_id", groupID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select members query: %w", err)
	}

	var rows []groupMemberTableModel
	if err := d.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select members group=%s: %w", groupID, err)
	}

	out := make([]group.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, group.Member{UserID: row.UserID, IsAdmin: row.IsAdmin})
	}
	return out, nil
}

func (d *GroupDirectory) GroupSize(ctx context.Context, groupID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("group_members").
		Where(qb.Eq("group_id", groupID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count members query: %w", err)
	}

	var count int
	if err := d.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count members group=%s: %w", groupID, err)
	}
	return count, nil
}
