package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/group"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/team"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/logging"
)

// GroupPickView is one member's row in the weekly group picks board. TeamID
// stays empty for other members until their pick locks, so nobody can copy a
// pick before the deadline.
type GroupPickView struct {
	UserID   string
	Week     int
	HasPick  bool
	TeamID   string
	Status   string
	Score    int
	LockedIn bool
}

// PickService owns the pick lifecycle: submission and clearing before lock,
// and the member-facing read views. It never mutates resolved rows; scoring
// is the reconciler's job.
type PickService struct {
	pickRepo  pick.Repository
	teamRepo  team.Repository
	schedules *ScheduleService
	directory group.Directory
	logger    *logging.Logger
	now       func() time.Time
}

func NewPickService(
	pickRepo pick.Repository,
	teamRepo team.Repository,
	schedules *ScheduleService,
	directory group.Directory,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PickService{
		pickRepo:  pickRepo,
		teamRepo:  teamRepo,
		schedules: schedules,
		directory: directory,
		logger:    logger,
		now:       time.Now,
	}
}

// SubmitPick creates or replaces the caller's pick for the week. Validation
// order is fixed: matchup existence, lock window, then season uniqueness, so
// the caller always sees the most fundamental failure first. The lock window
// covers both sides of a replacement: the new team's game must be open, and
// any existing pick for the week must be unresolved and not yet locked.
func (s *PickService) SubmitPick(ctx context.Context, userID, groupID string, week int, teamID string) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitPick")
	defer span.End()

	if err := validatePickIdentity(userID, groupID, week); err != nil {
		return pick.Pick{}, err
	}
	if strings.TrimSpace(teamID) == "" {
		return pick.Pick{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return pick.Pick{}, err
	}

	game, err := s.findGameForTeam(ctx, week, teamID)
	if err != nil {
		return pick.Pick{}, err
	}

	now := s.now()
	if game.Locked(now) {
		return pick.Pick{}, fmt.Errorf("%w: team=%s week=%d locked_at=%s", pick.ErrPickWindowClosed, teamID, week, game.LocksAt.Format(time.RFC3339))
	}

	existing, err := s.pickRepo.ListByUserGroup(ctx, userID, groupID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("list picks user=%s group=%s: %w", userID, groupID, err)
	}
	for _, p := range existing {
		if p.Week == week {
			if p.Resolved() || !now.Before(p.LocksAt) {
				return pick.Pick{}, fmt.Errorf("%w: week=%d locked_at=%s", pick.ErrPickWindowClosed, week, p.LocksAt.Format(time.RFC3339))
			}
			continue
		}
		if p.TeamID == teamID {
			return pick.Pick{}, fmt.Errorf("%w: team=%s already picked in week %d", pick.ErrTeamAlreadyUsed, teamID, p.Week)
		}
	}

	saved, err := s.pickRepo.Upsert(ctx, pick.Pick{
		UserID:         userID,
		GroupID:        groupID,
		Week:           week,
		TeamID:         teamID,
		ExternalGameID: game.ExternalGameID,
		Status:         pick.StatusPending,
		Score:          0,
		LocksAt:        game.LocksAt,
		UpdatedAt:      now,
	})
	if err != nil {
		return pick.Pick{}, fmt.Errorf("save pick user=%s group=%s week=%d: %w", userID, groupID, week, err)
	}

	s.logger.InfoContext(ctx,
		"pick submitted",
		"user_id", userID,
		"group_id", groupID,
		"week", week,
		"team_id", teamID,
		"locks_at", saved.LocksAt.Format(time.RFC3339),
	)

	return saved, nil
}

// ClearPick removes the caller's pick for the week. The lock check uses the
// lock time captured at submission, not the live schedule row. Clearing a
// week that has no pick succeeds and does nothing.
func (s *PickService) ClearPick(ctx context.Context, userID, groupID string, week int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ClearPick")
	defer span.End()

	if err := validatePickIdentity(userID, groupID, week); err != nil {
		return err
	}
	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return err
	}

	existing, ok, err := s.pickRepo.Get(ctx, userID, groupID, week)
	if err != nil {
		return fmt.Errorf("get pick user=%s group=%s week=%d: %w", userID, groupID, week, err)
	}
	if !ok {
		return nil
	}
	if existing.Resolved() || !s.now().Before(existing.LocksAt) {
		return fmt.Errorf("%w: week=%d locked_at=%s", pick.ErrPickWindowClosed, week, existing.LocksAt.Format(time.RFC3339))
	}

	if err := s.pickRepo.Delete(ctx, userID, groupID, week); err != nil {
		return fmt.Errorf("delete pick user=%s group=%s week=%d: %w", userID, groupID, week, err)
	}

	s.logger.InfoContext(ctx, "pick cleared", "user_id", userID, "group_id", groupID, "week", week)
	return nil
}

// UserPicks lists the caller's own picks across the season, oldest week
// first.
func (s *PickService) UserPicks(ctx context.Context, userID, groupID string) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.UserPicks")
	defer span.End()

	if strings.TrimSpace(userID) == "" || strings.TrimSpace(groupID) == "" {
		return nil, fmt.Errorf("%w: user id and group id are required", ErrInvalidInput)
	}
	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByUserGroup(ctx, userID, groupID)
	if err != nil {
		return nil, fmt.Errorf("list picks user=%s group=%s: %w", userID, groupID, err)
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].Week < picks[j].Week })
	return picks, nil
}

// GroupPicks renders the weekly board for every group member. The viewer's
// own pick is always shown; other members' team choices are withheld until
// their pick locks.
func (s *PickService) GroupPicks(ctx context.Context, viewerID, groupID string, week int) ([]GroupPickView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GroupPicks")
	defer span.End()

	if err := validatePickIdentity(viewerID, groupID, week); err != nil {
		return nil, err
	}
	if err := s.requireMembership(ctx, viewerID, groupID); err != nil {
		return nil, err
	}

	members, err := s.directory.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members group=%s: %w", groupID, err)
	}
	picks, err := s.pickRepo.ListByGroupWeek(ctx, groupID, week)
	if err != nil {
		return nil, fmt.Errorf("list picks group=%s week=%d: %w", groupID, week, err)
	}

	byUser := make(map[string]pick.Pick, len(picks))
	for _, p := range picks {
		byUser[p.UserID] = p
	}

	now := s.now()
	views := make([]GroupPickView, 0, len(members))
	for _, m := range members {
		view := GroupPickView{UserID: m.UserID, Week: week}
		if p, ok := byUser[m.UserID]; ok {
			locked := !now.Before(p.LocksAt)
			view.HasPick = true
			view.Status = p.Status
			view.Score = p.Score
			view.LockedIn = locked
			if m.UserID == viewerID || locked {
				view.TeamID = p.TeamID
			}
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].UserID < views[j].UserID })
	return views, nil
}

// AvailableTeams lists the teams the caller can still pick for the week:
// playing that week, not yet used in another week, and not locked.
func (s *PickService) AvailableTeams(ctx context.Context, userID, groupID string, week int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.AvailableTeams")
	defer span.End()

	if err := validatePickIdentity(userID, groupID, week); err != nil {
		return nil, err
	}
	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return nil, err
	}

	games, err := s.schedules.WeekSchedule(ctx, week)
	if err != nil {
		return nil, err
	}
	existing, err := s.pickRepo.ListByUserGroup(ctx, userID, groupID)
	if err != nil {
		return nil, fmt.Errorf("list picks user=%s group=%s: %w", userID, groupID, err)
	}

	used := make(map[string]bool, len(existing))
	for _, p := range existing {
		if p.Week != week {
			used[p.TeamID] = true
		}
	}

	allTeams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	byID := make(map[string]team.Team, len(allTeams))
	for _, t := range allTeams {
		byID[t.ID] = t
	}

	now := s.now()
	seen := make(map[string]bool)
	available := make([]team.Team, 0, len(games)*2)
	for _, g := range games {
		if g.Locked(now) {
			continue
		}
		for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
			if used[teamID] || seen[teamID] {
				continue
			}
			t, ok := byID[teamID]
			if !ok {
				s.logger.WarnContext(ctx, "scheduled team missing from registry", "team_id", teamID, "external_game_id", g.ExternalGameID)
				continue
			}
			seen[teamID] = true
			available = append(available, t)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].Name < available[j].Name })
	return available, nil
}

func (s *PickService) findGameForTeam(ctx context.Context, week int, teamID string) (schedule.Game, error) {
	games, err := s.schedules.WeekSchedule(ctx, week)
	if err != nil {
		return schedule.Game{}, err
	}
	for _, g := range games {
		if g.HasTeam(teamID) {
			return g, nil
		}
	}
	return schedule.Game{}, fmt.Errorf("%w: team=%s week=%d", pick.ErrNoGameForTeamWeek, teamID, week)
}

func (s *PickService) requireMembership(ctx context.Context, userID, groupID string) error {
	members, err := s.directory.ListMembers(ctx, groupID)
	if err != nil {
		return fmt.Errorf("list members group=%s: %w", groupID, err)
	}
	for _, m := range members {
		if m.UserID == userID {
			return nil
		}
	}
	return fmt.Errorf("%w: user=%s is not a member of group=%s", ErrUnauthorized, userID, groupID)
}

func validatePickIdentity(userID, groupID string, week int) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(groupID) == "" {
		return fmt.Errorf("%w: user id and group id are required", ErrInvalidInput)
	}
	if week < schedule.FirstWeek || week > schedule.LastWeek {
		return fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, schedule.FirstWeek, schedule.LastWeek)
	}
	return nil
}
