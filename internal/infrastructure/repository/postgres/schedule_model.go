package postgres

import (
	"database/sql"
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
)

type scheduleTableModel struct {
	ID           int64          `db:"id"`
	APIGameID    string         `db:"api_game_id"`
	Season       int            `db:"season"`
	Week         int            `db:"week"`
	HomeTeamID   string         `db:"home_team_id"`
	AwayTeamID   string         `db:"away_team_id"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	LocksAt      time.Time      `db:"locks_at"`
	Wave         int            `db:"wave"`
	Status       string         `db:"status"`
	WinnerTeamID sql.NullString `db:"winner_team_id"`
	IsTie        bool           `db:"is_tie"`
	HomeScore    sql.NullInt32  `db:"home_score"`
	AwayScore    sql.NullInt32  `db:"away_score"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type scheduleInsertModel struct {
	APIGameID    string         `db:"api_game_id"`
	Season       int            `db:"season"`
	Week         int            `db:"week"`
	HomeTeamID   string         `db:"home_team_id"`
	AwayTeamID   string         `db:"away_team_id"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	LocksAt      time.Time      `db:"locks_at"`
	Wave         int            `db:"wave"`
	Status       string         `db:"status"`
	WinnerTeamID sql.NullString `db:"winner_team_id"`
	IsTie        bool           `db:"is_tie"`
	HomeScore    sql.NullInt32  `db:"home_score"`
	AwayScore    sql.NullInt32  `db:"away_score"`
}

func gameFromRow(row scheduleTableModel) schedule.Game {
	return schedule.Game{
		ID:             row.ID,
		ExternalGameID: row.APIGameID,
		Season:         row.Season,
		Week:           row.Week,
		HomeTeamID:     row.HomeTeamID,
		AwayTeamID:     row.AwayTeamID,
		KickoffAt:      row.KickoffAt,
		LocksAt:        row.LocksAt,
		Wave:           row.Wave,
		Status:         row.Status,
		WinnerTeamID:   nullStringToString(row.WinnerTeamID),
		IsTie:          row.IsTie,
		HomeScore:      nullInt32ToIntPtr(row.HomeScore),
		AwayScore:      nullInt32ToIntPtr(row.AwayScore),
	}
}

func gameToInsertModel(g schedule.Game) scheduleInsertModel {
	return scheduleInsertModel{
		APIGameID:    g.ExternalGameID,
		Season:       g.Season,
		Week:         g.Week,
		HomeTeamID:   g.HomeTeamID,
		AwayTeamID:   g.AwayTeamID,
		KickoffAt:    g.KickoffAt,
		LocksAt:      g.LocksAt,
		Wave:         g.Wave,
		Status:       g.Status,
		WinnerTeamID: stringToNullString(g.WinnerTeamID),
		IsTie:        g.IsTie,
		HomeScore:    intPtrToNullInt32(g.HomeScore),
		AwayScore:    intPtrToNullInt32(g.AwayScore),
	}
}
