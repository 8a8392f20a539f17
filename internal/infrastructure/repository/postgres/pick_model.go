package postgres

import (
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
)

type pickTableModel struct {
	UserID    string    `db:"user_id"`
	GroupID   string    `db:"group_id"`
	Week      int       `db:"week"`
	TeamID    string    `db:"team_id"`
	APIGameID string    `db:"api_game_id"`
	Status    string    `db:"status"`
	Score     int       `db:"score"`
	LocksAt   time.Time `db:"locks_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type pickInsertModel struct {
	UserID    string    `db:"user_id"`
	GroupID   string    `db:"group_id"`
	Week      int       `db:"week"`
	TeamID    string    `db:"team_id"`
	APIGameID string    `db:"api_game_id"`
	Status    string    `db:"status"`
	Score     int       `db:"score"`
	LocksAt   time.Time `db:"locks_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		UserID:         row.UserID,
		GroupID:        row.GroupID,
		Week:           row.Week,
		TeamID:         row.TeamID,
		ExternalGameID: row.APIGameID,
		Status:         row.Status,
		Score:          row.Score,
		LocksAt:        row.LocksAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
