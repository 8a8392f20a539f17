package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/domain/team"
)

type teamDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	LogoURL      string `json:"logoUrl,omitempty"`
}

type gameDTO struct {
	APIGameID    string `json:"apiGameId"`
	Season       int    `json:"season"`
	Week         int    `json:"week"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	KickoffAt    string `json:"kickoffAt"`
	LocksAt      string `json:"locksAt"`
	Wave         int    `json:"wave"`
	Status       string `json:"status"`
	WinnerTeamID string `json:"winnerTeamId,omitempty"`
	IsTie        bool   `json:"isTie"`
	HomeScore    *int   `json:"homeScore,omitempty"`
	AwayScore    *int   `json:"awayScore,omitempty"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:           t.ID,
		Name:         t.Name,
		Abbreviation: t.Abbreviation,
		LogoURL:      t.LogoURL,
	}
}

func gameToDTO(g schedule.Game) gameDTO {
	return gameDTO{
		APIGameID:    g.ExternalGameID,
		Season:       g.Season,
		Week:         g.Week,
		HomeTeamID:   g.HomeTeamID,
		AwayTeamID:   g.AwayTeamID,
		KickoffAt:    g.KickoffAt.UTC().Format(time.RFC3339),
		LocksAt:      g.LocksAt.UTC().Format(time.RFC3339),
		Wave:         g.Wave,
		Status:       g.Status,
		WinnerTeamID: g.WinnerTeamID,
		IsTie:        g.IsTie,
		HomeScore:    g.HomeScore,
		AwayScore:    g.AwayScore,
	}
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTOs(ctx, teams))
}

func (h *Handler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekSchedule")
	defer span.End()

	week, err := weekQueryParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.scheduleService.WeekSchedule(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get week schedule failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func teamsToDTOs(_ context.Context, teams []team.Team) []teamDTO {
	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	return items
}
