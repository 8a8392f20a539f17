package usecase

import (
	"context"
	"fmt"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/cache"
)

// ScheduleService serves week-schedule reads through a short-lived cache so
// pick validation and the schedule endpoint do not hammer the registry on
// every request.
type ScheduleService struct {
	repo   schedule.Repository
	cache  *cache.Store
	season int
}

func NewScheduleService(repo schedule.Repository, store *cache.Store, season int) *ScheduleService {
	return &ScheduleService{
		repo:   repo,
		cache:  store,
		season: season,
	}
}

func (s *ScheduleService) Season() int {
	return s.season
}

func (s *ScheduleService) WeekSchedule(ctx context.Context, week int) ([]schedule.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.WeekSchedule")
	defer span.End()

	if week < schedule.FirstWeek || week > schedule.LastWeek {
		return nil, fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, schedule.FirstWeek, schedule.LastWeek)
	}
	if s.repo == nil {
		return nil, fmt.Errorf("%w: schedule repository is not configured", ErrDependencyUnavailable)
	}

	load := func(ctx context.Context) (any, error) {
		games, err := s.repo.ListByWeek(ctx, s.season, week)
		if err != nil {
			return nil, fmt.Errorf("list schedule season=%d week=%d: %w", s.season, week, err)
		}
		return games, nil
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]schedule.Game), nil
	}

	key := fmt.Sprintf("schedule:%d:week:%d", s.season, week)
	value, err := s.cache.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}
	return value.([]schedule.Game), nil
}
