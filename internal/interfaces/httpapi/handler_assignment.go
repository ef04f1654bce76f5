package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/usecase"
)

func (h *Handler) AssignGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignGroups")
	defer span.End()

	var req assignGroupsRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.AssignTeamInput, 0, len(req.Assignments))
	for _, item := range req.Assignments {
		entries = append(entries, usecase.AssignTeamInput{TeamID: item.TeamID, Group: item.Group})
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	assignments, err := h.assignmentService.Assign(ctx, tournamentID, entries)
	if err != nil {
		h.logger.WarnContext(ctx, "assign groups failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toAssignmentDTOs(assignments))
}

// AssignGroupsRandom accepts an empty body, which deals into every group.
func (h *Handler) AssignGroupsRandom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignGroupsRandom")
	defer span.End()

	var req assignRandomRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r.Body, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	assignments, err := h.assignmentService.AssignRandom(ctx, tournamentID, req.Groups)
	if err != nil {
		h.logger.WarnContext(ctx, "random group draw failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toAssignmentDTOs(assignments))
}

func toAssignmentDTOs(items []team.Assignment) []assignmentDTO {
	out := make([]assignmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, assignmentDTO{TeamID: item.TeamID, Group: item.Group.String()})
	}
	return out
}
