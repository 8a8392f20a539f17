package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/group"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
)

// StandingRow is one member's season total inside a group. Rank starts at 1;
// members tied on points share neither rank nor position, the earlier user id
// ranks first.
type StandingRow struct {
	Rank         int
	UserID       string
	TotalScore   int
	CorrectPicks int
	PicksMade    int
}

// StandingsService aggregates resolved pick scores into the group table.
// Standings carry no state of their own; they are recomputed from picks on
// every read.
type StandingsService struct {
	pickRepo  pick.Repository
	directory group.Directory
}

func NewStandingsService(pickRepo pick.Repository, directory group.Directory) *StandingsService {
	return &StandingsService{
		pickRepo:  pickRepo,
		directory: directory,
	}
}

func (s *StandingsService) GroupStandings(ctx context.Context, groupID string) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GroupStandings")
	defer span.End()

	if strings.TrimSpace(groupID) == "" {
		return nil, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}

	members, err := s.directory.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members group=%s: %w", groupID, err)
	}
	picks, err := s.pickRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list picks group=%s: %w", groupID, err)
	}

	byUser := make(map[string]*StandingRow, len(members))
	rows := make([]StandingRow, 0, len(members))
	for _, m := range members {
		byUser[m.UserID] = &StandingRow{UserID: m.UserID}
	}
	for _, p := range picks {
		row, ok := byUser[p.UserID]
		if !ok {
			// Picks from departed members stay stored but never rank.
			continue
		}
		row.PicksMade++
		if p.Status == pick.StatusCorrect {
			row.CorrectPicks++
			row.TotalScore += p.Score
		}
	}

	for _, m := range members {
		rows = append(rows, *byUser[m.UserID])
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		return rows[i].UserID < rows[j].UserID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
