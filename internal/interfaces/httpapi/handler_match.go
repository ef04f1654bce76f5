package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/foosball-league/internal/usecase"
)

func (h *Handler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req recordMatchRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Record(ctx, usecase.RecordMatchInput{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		TeamAID:      req.TeamAID,
		TeamBID:      req.TeamBID,
		GoalsA:       *req.GoalsA,
		GoalsB:       *req.GoalsB,
	}, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "record match failed",
			"reporter_id", principal.Subject,
			"team_a_id", req.TeamAID,
			"team_b_id", req.TeamBID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toMatchDTO(item))
}

func (h *Handler) ListGroupMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroupMatches")
	defer span.End()

	items, err := h.matchService.ListByGroup(ctx,
		strings.TrimSpace(r.PathValue("tournamentID")),
		r.PathValue("group"),
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toMatchDTOs(items))
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	items, err := h.matchService.ListByTeam(ctx,
		strings.TrimSpace(r.PathValue("tournamentID")),
		strings.TrimSpace(r.PathValue("teamID")),
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toMatchDTOs(items))
}
