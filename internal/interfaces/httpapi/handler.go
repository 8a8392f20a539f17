package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JamesM813/NFL-Locked-In/internal/domain/schedule"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/logging"
	"github.com/JamesM813/NFL-Locked-In/internal/usecase"
)

type Handler struct {
	teamService      *usecase.TeamService
	scheduleService  *usecase.ScheduleService
	pickService      *usecase.PickService
	standingsService *usecase.StandingsService
	syncService      *usecase.ScheduleSyncService
	reconcileService *usecase.ReconcileService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	scheduleService *usecase.ScheduleService,
	pickService *usecase.PickService,
	standingsService *usecase.StandingsService,
	syncService *usecase.ScheduleSyncService,
	reconcileService *usecase.ReconcileService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:      teamService,
		scheduleService:  scheduleService,
		pickService:      pickService,
		standingsService: standingsService,
		syncService:      syncService,
		reconcileService: reconcileService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// weekQueryParam parses the required ?week= parameter.
func weekQueryParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return 0, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput)
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidInput)
	}
	if week < schedule.FirstWeek || week > schedule.LastWeek {
		return 0, fmt.Errorf("%w: week must be between %d and %d", usecase.ErrInvalidInput, schedule.FirstWeek, schedule.LastWeek)
	}
	return week, nil
}

func weekPathParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidInput)
	}
	if week < schedule.FirstWeek || week > schedule.LastWeek {
		return 0, fmt.Errorf("%w: week must be between %d and %d", usecase.ErrInvalidInput, schedule.FirstWeek, schedule.LastWeek)
	}
	return week, nil
}
