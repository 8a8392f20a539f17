package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu     sync.RWMutex
	games  map[string]schedule.Game
	nextID int64
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{games: make(map[string]schedule.Game), nextID: 1}
}

func (r *ScheduleRepository) Upsert(_ context.Context, games []schedule.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range games {
		if existing, ok := r.games[g.ExternalGameID]; ok {
			g.ID = existing.ID
		} else {
			g.ID = r.nextID
			r.nextID++
		}
		r.games[g.ExternalGameID] = g
	}
	return nil
}

func (r *ScheduleRepository) GetByExternalID(_ context.Context, externalGameID string) (schedule.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[externalGameID]
	return g, ok, nil
}

func (r *ScheduleRepository) ListByWeek(_ context.Context, season, week int) ([]schedule.Game, error) {
	return r.filter(func(g schedule.Game) bool {
		return g.Season == season && g.Week == week
	}), nil
}

func (r *ScheduleRepository) ListFinalDecided(_ context.Context, season int) ([]schedule.Game, error) {
	return r.filter(func(g schedule.Game) bool {
		return g.Season == season && g.Decided()
	}), nil
}

func (r *ScheduleRepository) filter(match func(schedule.Game) bool) []schedule.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []schedule.Game
	for _, g := range r.games {
		if match(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ExternalGameID < out[j].ExternalGameID
	})
	return out
}
