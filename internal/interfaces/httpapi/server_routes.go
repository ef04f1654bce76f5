package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/teams/{teamID}/opponents", handler.ListOpponents)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/teams/{teamID}/matches", handler.ListTeamMatches)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/groups", handler.ListTeamsByGroup)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/groups/{group}/matches", handler.ListGroupMatches)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/groups/{group}/standings", handler.GetGroupStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedCaptainRoutes(mux, handler, verifier)
	registerAuthorizedAdminRoutes(mux, handler, verifier)
}

func registerAuthorizedCaptainRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tournaments/{tournamentID}/teams", RequireAuth(verifier, http.HandlerFunc(handler.RegisterTeam)))
	mux.Handle("GET /v1/tournaments/{tournamentID}/teams/me", RequireAuth(verifier, http.HandlerFunc(handler.MyTeam)))
	mux.Handle("POST /v1/tournaments/{tournamentID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatch)))
}

func registerAuthorizedAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tournaments", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.CreateTournament))))
	mux.Handle("POST /v1/tournaments/{tournamentID}/assignments", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.AssignGroups))))
	mux.Handle("POST /v1/tournaments/{tournamentID}/assignments/random", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.AssignGroupsRandom))))
}
