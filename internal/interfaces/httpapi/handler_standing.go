package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/foosball-league/internal/domain/standing"
)

func (h *Handler) GetGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupStandings")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	rows, err := h.standingService.Compute(ctx, tournamentID, r.PathValue("group"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	names, err := h.teamNames(r, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toStandingRowDTOs(rows, names))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	tables, err := h.standingService.ComputeAll(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	names, err := h.teamNames(r, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]groupStandingsDTO, 0, len(tables))
	for _, table := range tables {
		out = append(out, groupStandingsDTO{
			Group: table.Group.String(),
			Rows:  toStandingRowDTOs(table.Rows, names),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) teamNames(r *http.Request, tournamentID string) (map[string]string, error) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.teamNames")
	defer span.End()

	roster, err := h.teamService.Roster(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(roster))
	for _, t := range roster {
		names[t.ID] = t.Name
	}
	return names, nil
}

func toStandingRowDTOs(rows []standing.Row, names map[string]string) []standingRowDTO {
	out := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowDTO{
			Position:       row.Position,
			TeamID:         row.TeamID,
			TeamName:       names[row.TeamID],
			Played:         row.Played,
			Won:            row.Won,
			Draw:           row.Draw,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out
}
