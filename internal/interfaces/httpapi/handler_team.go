package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/usecase"
)

func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req registerTeamRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	participants := make([]team.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		participants = append(participants, team.Participant{Name: p.Name, PhoneNumber: p.PhoneNumber})
	}

	item, err := h.teamService.Register(ctx, usecase.RegisterTeamInput{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		Participants: participants,
		OwnerID:      principal.Subject,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register team failed", "owner_id", principal.Subject, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toTeamDTO(item))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.Roster(ctx, strings.TrimSpace(r.PathValue("tournamentID")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toTeamDTOs(items))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	item, err := h.teamService.Get(ctx,
		strings.TrimSpace(r.PathValue("tournamentID")),
		strings.TrimSpace(r.PathValue("teamID")),
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toTeamDTO(item))
}

func (h *Handler) ListTeamsByGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByGroup")
	defer span.End()

	grouped, err := h.teamService.TeamsByGroup(ctx, strings.TrimSpace(r.PathValue("tournamentID")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := groupedTeamsDTO{
		Groups:     make(map[string][]teamDTO, len(team.Groups)),
		Unassigned: toTeamDTOs(grouped.Unassigned),
		Total:      grouped.Total,
	}
	for _, g := range team.Groups {
		out.Groups[g.String()] = toTeamDTOs(grouped.Groups[g])
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// MyTeam returns the team registered by the calling account.
func (h *Handler) MyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	item, err := h.teamService.ForOwner(ctx, strings.TrimSpace(r.PathValue("tournamentID")), principal.Subject)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toTeamDTO(item))
}

func (h *Handler) ListOpponents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOpponents")
	defer span.End()

	items, err := h.teamService.Opponents(ctx,
		strings.TrimSpace(r.PathValue("tournamentID")),
		strings.TrimSpace(r.PathValue("teamID")),
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toTeamDTOs(items))
}
