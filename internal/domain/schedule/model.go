package schedule

import (
	"strings"
	"time"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinal      = "final"
)

const (
	Wave1 = 1
	Wave2 = 2
)

const (
	FirstWeek = 1
	LastWeek  = 18
)

// Game is one scheduled NFL game, keyed by the stable provider game id so
// repeated synchronizer runs upsert instead of duplicating rows.
type Game struct {
	ID             int64
	ExternalGameID string
	Season         int
	Week           int
	HomeTeamID     string
	AwayTeamID     string
	KickoffAt      time.Time
	LocksAt        time.Time
	Wave           int
	Status         string
	WinnerTeamID   string
	IsTie          bool
	HomeScore      *int
	AwayScore      *int
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	switch status {
	case StatusScheduled, StatusInProgress, StatusFinal:
		return status
	case "":
		return StatusScheduled
	default:
		return status
	}
}

func (g Game) IsFinal() bool {
	return NormalizeStatus(g.Status) == StatusFinal
}

// Decided reports whether the game has a resolved outcome: a single winner
// or a tied final. "final with no winner yet" stays undecided until the feed
// carries the result.
func (g Game) Decided() bool {
	return g.IsFinal() && (g.WinnerTeamID != "" || g.IsTie)
}

// Winners returns the set of winning team ids. A tie yields both competing
// teams; an undecided game yields none.
func (g Game) Winners() []string {
	if !g.Decided() {
		return nil
	}
	if g.IsTie {
		return []string{g.HomeTeamID, g.AwayTeamID}
	}
	return []string{g.WinnerTeamID}
}

func (g Game) HasTeam(teamID string) bool {
	if teamID == "" {
		return false
	}
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

func (g Game) Locked(now time.Time) bool {
	return !now.Before(g.LocksAt)
}

// WaveForKickoff classifies a kickoff by its day of week in Eastern time:
// Thursday through Saturday games are Wave 1, everything else Wave 2.
func WaveForKickoff(kickoff time.Time, eastern *time.Location) int {
	switch kickoff.In(eastern).Weekday() {
	case time.Thursday, time.Friday, time.Saturday:
		return Wave1
	default:
		return Wave2
	}
}
