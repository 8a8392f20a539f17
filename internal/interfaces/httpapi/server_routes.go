package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/schedule", handler.GetWeekSchedule)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/groups/{groupID}/picks", RequireUser(http.HandlerFunc(handler.SubmitPick)))
	mux.Handle("DELETE /v1/groups/{groupID}/picks/{week}", RequireUser(http.HandlerFunc(handler.ClearPick)))
	mux.Handle("GET /v1/groups/{groupID}/picks", RequireUser(http.HandlerFunc(handler.ListGroupPicks)))
	mux.Handle("GET /v1/groups/{groupID}/available-teams", RequireUser(http.HandlerFunc(handler.ListAvailableTeams)))
	mux.Handle("GET /v1/groups/{groupID}/standings", RequireUser(http.HandlerFunc(handler.GetGroupStandings)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-schedule", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScheduleSync)))
	mux.Handle("POST /v1/internal/jobs/reconcile", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcile)))
}
