package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
)

type pickKey struct {
	userID  string
	groupID string
	week    int
}

type PickRepository struct {
	mu    sync.RWMutex
	picks map[pickKey]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{picks: make(map[pickKey]pick.Pick)}
}

func (r *PickRepository) Upsert(_ context.Context, p pick.Pick) (pick.Pick, error) {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.picks[pickKey{p.UserID, p.GroupID, p.Week}] = p
	return p, nil
}

func (r *PickRepository) Delete(_ context.Context, userID, groupID string, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.picks, pickKey{userID, groupID, week})
	return nil
}

func (r *PickRepository) Get(_ context.Context, userID, groupID string, week int) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.picks[pickKey{userID, groupID, week}]
	return p, ok, nil
}

func (r *PickRepository) ListByUserGroup(_ context.Context, userID, groupID string) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool {
		return p.UserID == userID && p.GroupID == groupID
	}), nil
}

func (r *PickRepository) ListByGroup(_ context.Context, groupID string) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool { return p.GroupID == groupID }), nil
}

func (r *PickRepository) ListByGroupWeek(_ context.Context, groupID string, week int) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool {
		return p.GroupID == groupID && p.Week == week
	}), nil
}

func (r *PickRepository) ListPendingByGame(_ context.Context, externalGameID string) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool {
		return p.ExternalGameID == externalGameID && p.Status == pick.StatusPending
	}), nil
}

func (r *PickRepository) Resolve(_ context.Context, userID, groupID string, week int, status string, score int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pickKey{userID, groupID, week}
	p, ok := r.picks[key]
	if !ok || p.Status != pick.StatusPending {
		return false, nil
	}
	p.Status = status
	p.Score = score
	p.UpdatedAt = time.Now().UTC()
	r.picks[key] = p
	return true, nil
}

func (r *PickRepository) filter(match func(pick.Pick) bool) []pick.Pick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []pick.Pick
	for _, p := range r.picks {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Week < out[j].Week
	})
	return out
}
