package pick

import (
	"errors"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCorrect   = "correct"
	StatusIncorrect = "incorrect"
)

// Validation failures surfaced to the caller of the pick lifecycle. These are
// never retried automatically and never partially applied.
var (
	ErrNoGameForTeamWeek = errors.New("no game for this team and week")
	ErrPickWindowClosed  = errors.New("picks are locked for this matchup")
	ErrTeamAlreadyUsed   = errors.New("team already used this season")
)

// Pick is one member's weekly selection inside a group. At most one row per
// (user, group, week); the team may not repeat across that user's other weeks
// in the group.
type Pick struct {
	UserID         string
	GroupID        string
	Week           int
	TeamID         string
	ExternalGameID string
	Status         string
	Score          int
	// LocksAt is the game's lock time captured at submission, so clears and
	// re-validation never depend on the schedule row mutating underneath.
	LocksAt   time.Time
	UpdatedAt time.Time
}

func (p Pick) Resolved() bool {
	return p.Status != StatusPending
}
