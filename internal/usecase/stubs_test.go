package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/group"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/team"
)

type stubTeamRepo struct {
	mu    sync.Mutex
	teams []team.Team
	err   error
}

func (r *stubTeamRepo) List(context.Context) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]team.Team, len(r.teams))
	copy(out, r.teams)
	return out, nil
}

func (r *stubTeamRepo) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return team.Team{}, false, r.err
	}
	for _, t := range r.teams {
		if t.ID == teamID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

type stubScheduleRepo struct {
	mu       sync.Mutex
	games    map[string]schedule.Game
	upserts  int
	writeErr error
	readErr  error
}

func newStubScheduleRepo(games ...schedule.Game) *stubScheduleRepo {
	repo := &stubScheduleRepo{games: make(map[string]schedule.Game)}
	for _, g := range games {
		repo.games[g.ExternalGameID] = g
	}
	return repo
}

func (r *stubScheduleRepo) Upsert(_ context.Context, games []schedule.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.upserts++
	for _, g := range games {
		r.games[g.ExternalGameID] = g
	}
	return nil
}

func (r *stubScheduleRepo) GetByExternalID(_ context.Context, externalGameID string) (schedule.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return schedule.Game{}, false, r.readErr
	}
	g, ok := r.games[externalGameID]
	return g, ok, nil
}

func (r *stubScheduleRepo) ListByWeek(_ context.Context, season, week int) ([]schedule.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	var out []schedule.Game
	for _, g := range r.games {
		if g.Season == season && g.Week == week {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalGameID < out[j].ExternalGameID })
	return out, nil
}

func (r *stubScheduleRepo) ListFinalDecided(_ context.Context, season int) ([]schedule.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	var out []schedule.Game
	for _, g := range r.games {
		if g.Season == season && g.Decided() {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalGameID < out[j].ExternalGameID })
	return out, nil
}

type pickKey struct {
	userID  string
	groupID string
	week    int
}

type stubPickRepo struct {
	mu       sync.Mutex
	picks    map[pickKey]pick.Pick
	writeErr error
	readErr  error
}

func newStubPickRepo(picks ...pick.Pick) *stubPickRepo {
	repo := &stubPickRepo{picks: make(map[pickKey]pick.Pick)}
	for _, p := range picks {
		repo.picks[pickKey{p.UserID, p.GroupID, p.Week}] = p
	}
	return repo
}

func (r *stubPickRepo) Upsert(_ context.Context, p pick.Pick) (pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return pick.Pick{}, r.writeErr
	}
	r.picks[pickKey{p.UserID, p.GroupID, p.Week}] = p
	return p, nil
}

func (r *stubPickRepo) Delete(_ context.Context, userID, groupID string, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	delete(r.picks, pickKey{userID, groupID, week})
	return nil
}

func (r *stubPickRepo) Get(_ context.Context, userID, groupID string, week int) (pick.Pick, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return pick.Pick{}, false, r.readErr
	}
	p, ok := r.picks[pickKey{userID, groupID, week}]
	return p, ok, nil
}

func (r *stubPickRepo) ListByUserGroup(_ context.Context, userID, groupID string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.UserID == userID && p.GroupID == groupID })
}

func (r *stubPickRepo) ListByGroup(_ context.Context, groupID string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.GroupID == groupID })
}

func (r *stubPickRepo) ListByGroupWeek(_ context.Context, groupID string, week int) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool { return p.GroupID == groupID && p.Week == week })
}

func (r *stubPickRepo) ListPendingByGame(_ context.Context, externalGameID string) ([]pick.Pick, error) {
	return r.list(func(p pick.Pick) bool {
		return p.ExternalGameID == externalGameID && p.Status == pick.StatusPending
	})
}

func (r *stubPickRepo) list(match func(pick.Pick) bool) ([]pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	var out []pick.Pick
	for _, p := range r.picks {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Week < out[j].Week
	})
	return out, nil
}

func (r *stubPickRepo) Resolve(_ context.Context, userID, groupID string, week int, status string, score int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return false, r.writeErr
	}
	key := pickKey{userID, groupID, week}
	p, ok := r.picks[key]
	if !ok || p.Status != pick.StatusPending {
		return false, nil
	}
	p.Status = status
	p.Score = score
	r.picks[key] = p
	return true, nil
}

type stubDirectory struct {
	mu      sync.Mutex
	members map[string][]group.Member
	err     error
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{members: make(map[string][]group.Member)}
}

func (d *stubDirectory) ListMembers(_ context.Context, groupID string) ([]group.Member, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	out := make([]group.Member, len(d.members[groupID]))
	copy(out, d.members[groupID])
	return out, nil
}

func (d *stubDirectory) GroupSize(ctx context.Context, groupID string) (int, error) {
	members, err := d.ListMembers(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return len(members), nil
}
