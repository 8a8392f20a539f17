package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JamesM813/NFL-Locked-In/internal/usecase"
)

type standingRowDTO struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"userId"`
	TotalScore   int    `json:"totalScore"`
	CorrectPicks int    `json:"correctPicks"`
	PicksMade    int    `json:"picksMade"`
}

func (h *Handler) GetGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupStandings")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))

	rows, err := h.standingsService.GroupStandings(ctx, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "group standings failed", "user_id", userID, "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowDTO{
			Rank:         row.Rank,
			UserID:       row.UserID,
			TotalScore:   row.TotalScore,
			CorrectPicks: row.CorrectPicks,
			PicksMade:    row.PicksMade,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
