package usecase

import (
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
)

// LockPolicy derives the moment a game stops accepting pick changes from its
// kickoff. A deployment uses exactly one policy for the whole season; mixing
// policies would let the same kickoff lock at different times depending on
// which code path stamped the row.
type LockPolicy interface {
	LocksAt(kickoff time.Time) time.Time
}

// WaveDeadlinePolicy locks every game of a wave at a shared wall-clock
// deadline in Eastern time: Wave 1 (Thu-Sat kickoffs) at Thursday 19:45 ET of
// the game's week, Wave 2 at Sunday 12:30 ET. Games that kick off before
// their wave deadline, such as morning international games, lock at kickoff
// instead so a pick can never change after the game has started.
type WaveDeadlinePolicy struct {
	Eastern *time.Location
}

func NewWaveDeadlinePolicy(eastern *time.Location) WaveDeadlinePolicy {
	if eastern == nil {
		eastern = time.UTC
	}
	return WaveDeadlinePolicy{Eastern: eastern}
}

func (p WaveDeadlinePolicy) LocksAt(kickoff time.Time) time.Time {
	local := kickoff.In(p.Eastern)

	var deadline time.Time
	if schedule.WaveForKickoff(kickoff, p.Eastern) == schedule.Wave1 {
		deadline = atWeekday(local, time.Thursday, 19, 45)
	} else {
		deadline = atWeekday(local, time.Sunday, 12, 30)
	}
	if deadline.After(kickoff) {
		return kickoff
	}
	return deadline
}

// atWeekday returns the most recent occurrence of weekday at hh:mm on or
// before t, in t's location.
func atWeekday(t time.Time, weekday time.Weekday, hour, minute int) time.Time {
	daysBack := int(t.Weekday() - weekday)
	if daysBack < 0 {
		daysBack += 7
	}
	day := t.AddDate(0, 0, -daysBack)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, t.Location())
}

// KickoffOffsetPolicy locks each game a fixed duration before its own
// kickoff. Kept as the simpler alternative for deployments that do not want
// shared wave deadlines.
type KickoffOffsetPolicy struct {
	Offset time.Duration
}

func (p KickoffOffsetPolicy) LocksAt(kickoff time.Time) time.Time {
	if p.Offset <= 0 {
		return kickoff
	}
	return kickoff.Add(-p.Offset)
}
