package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/pick"
	"github.com/JamesM813/NFL-Locked-In/internal/usecase"
)

type submitPickRequest struct {
	Week   int    `json:"week" validate:"required,min=1,max=18"`
	TeamID string `json:"teamId" validate:"required"`
}

type pickDTO struct {
	UserID    string `json:"userId"`
	GroupID   string `json:"groupId"`
	Week      int    `json:"week"`
	TeamID    string `json:"teamId"`
	APIGameID string `json:"apiGameId"`
	Status    string `json:"status"`
	Score     int    `json:"score"`
	LocksAt   string `json:"locksAt"`
}

type groupPickDTO struct {
	UserID   string `json:"userId"`
	Week     int    `json:"week"`
	HasPick  bool   `json:"hasPick"`
	TeamID   string `json:"teamId,omitempty"`
	Status   string `json:"status,omitempty"`
	Score    int    `json:"score"`
	LockedIn bool   `json:"lockedIn"`
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		UserID:    p.UserID,
		GroupID:   p.GroupID,
		Week:      p.Week,
		TeamID:    p.TeamID,
		APIGameID: p.ExternalGameID,
		Status:    p.Status,
		Score:     p.Score,
		LocksAt:   p.LocksAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))

	var req submitPickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.pickService.SubmitPick(ctx, userID, groupID, req.Week, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "submit pick failed", "user_id", userID, "group_id", groupID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(saved))
}

func (h *Handler) ClearPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearPick")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))

	week, err := weekPathParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.pickService.ClearPick(ctx, userID, groupID, week); err != nil {
		h.logger.WarnContext(ctx, "clear pick failed", "user_id", userID, "group_id", groupID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ListGroupPicks returns either the caller's season picks, or the group's
// weekly board when ?week= is present.
func (h *Handler) ListGroupPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroupPicks")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))

	if strings.TrimSpace(r.URL.Query().Get("week")) == "" {
		picks, err := h.pickService.UserPicks(ctx, userID, groupID)
		if err != nil {
			h.logger.WarnContext(ctx, "list user picks failed", "user_id", userID, "group_id", groupID, "error", err)
			writeError(ctx, w, err)
			return
		}

		items := make([]pickDTO, 0, len(picks))
		for _, p := range picks {
			items = append(items, pickToDTO(p))
		}
		writeSuccess(ctx, w, http.StatusOK, items)
		return
	}

	week, err := weekQueryParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.pickService.GroupPicks(ctx, userID, groupID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list group picks failed", "user_id", userID, "group_id", groupID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]groupPickDTO, 0, len(views))
	for _, view := range views {
		items = append(items, groupPickDTO{
			UserID:   view.UserID,
			Week:     view.Week,
			HasPick:  view.HasPick,
			TeamID:   view.TeamID,
			Status:   view.Status,
			Score:    view.Score,
			LockedIn: view.LockedIn,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListAvailableTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailableTeams")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized))
		return
	}
	groupID := strings.TrimSpace(r.PathValue("groupID"))

	week, err := weekQueryParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.pickService.AvailableTeams(ctx, userID, groupID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list available teams failed", "user_id", userID, "group_id", groupID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTOs(ctx, teams))
}
