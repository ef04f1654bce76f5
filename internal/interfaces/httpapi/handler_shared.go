package httpapi

import (
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
)

type createTournamentRequest struct {
	Name             string `json:"name" validate:"required,max=120"`
	StartDate        string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EstimatedEndDate string `json:"estimated_end_date" validate:"required,datetime=2006-01-02"`
}

type participantRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}

type registerTeamRequest struct {
	Name         string               `json:"name" validate:"required,max=100"`
	PhoneNumber  string               `json:"phone_number" validate:"omitempty,max=32"`
	Participants []participantRequest `json:"participants" validate:"omitempty,max=10,dive"`
}

// Goals are pointers so that a missing score is told apart from zero.
type recordMatchRequest struct {
	TeamAID string `json:"team_a_id" validate:"required"`
	TeamBID string `json:"team_b_id" validate:"required"`
	GoalsA  *int   `json:"goals_a" validate:"required"`
	GoalsB  *int   `json:"goals_b" validate:"required"`
}

type assignmentRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	Group  string `json:"group" validate:"required"`
}

type assignGroupsRequest struct {
	Assignments []assignmentRequest `json:"assignments" validate:"required,min=1,dive"`
}

type assignRandomRequest struct {
	Groups []string `json:"groups" validate:"omitempty,max=3,dive,required"`
}

type tournamentDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	StartDate        string `json:"start_date"`
	EstimatedEndDate string `json:"estimated_end_date"`
	CreatedAt        string `json:"created_at"`
}

type tournamentSummaryDTO struct {
	tournamentDTO
	TeamsCount   int            `json:"teams_count"`
	TeamsByGroup map[string]int `json:"teams_by_group"`
}

type participantDTO struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type teamDTO struct {
	ID           string           `json:"id"`
	TournamentID string           `json:"tournament_id"`
	Name         string           `json:"name"`
	PhoneNumber  string           `json:"phone_number,omitempty"`
	Group        string           `json:"group,omitempty"`
	Participants []participantDTO `json:"participants"`
	CreatedAt    string           `json:"created_at"`
}

type groupedTeamsDTO struct {
	Groups     map[string][]teamDTO `json:"groups"`
	Unassigned []teamDTO            `json:"unassigned"`
	Total      int                  `json:"total"`
}

type matchDTO struct {
	ID           string `json:"id"`
	Sequence     int64  `json:"sequence"`
	TournamentID string `json:"tournament_id"`
	Group        string `json:"group"`
	TeamAID      string `json:"team_a_id"`
	TeamBID      string `json:"team_b_id"`
	GoalsA       int    `json:"goals_a"`
	GoalsB       int    `json:"goals_b"`
	ReporterID   string `json:"reporter_id"`
	CreatedAt    string `json:"created_at"`
}

type standingRowDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type groupStandingsDTO struct {
	Group string           `json:"group"`
	Rows  []standingRowDTO `json:"rows"`
}

type assignmentDTO struct {
	TeamID string `json:"team_id"`
	Group  string `json:"group"`
}

func toTournamentDTO(v tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:               v.ID,
		Name:             v.Name,
		StartDate:        v.StartDate.UTC().Format(dateLayout),
		EstimatedEndDate: v.EstimatedEndDate.UTC().Format(dateLayout),
		CreatedAt:        v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toTournamentSummaryDTO(v tournament.Summary) tournamentSummaryDTO {
	byGroup := make(map[string]int, len(v.TeamsByGroup))
	for k, n := range v.TeamsByGroup {
		byGroup[k] = n
	}
	return tournamentSummaryDTO{
		tournamentDTO: toTournamentDTO(v.Tournament),
		TeamsCount:    v.TeamsCount,
		TeamsByGroup:  byGroup,
	}
}

func toTeamDTO(v team.Team) teamDTO {
	participants := make([]participantDTO, 0, len(v.Participants))
	for _, p := range v.Participants {
		participants = append(participants, participantDTO{Name: p.Name, PhoneNumber: p.PhoneNumber})
	}

	return teamDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Name:         v.Name,
		PhoneNumber:  v.PhoneNumber,
		Group:        v.Group.String(),
		Participants: participants,
		CreatedAt:    v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toTeamDTOs(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toTeamDTO(item))
	}
	return out
}

func toMatchDTO(v match.Result) matchDTO {
	return matchDTO{
		ID:           v.ID,
		Sequence:     v.Sequence,
		TournamentID: v.TournamentID,
		Group:        v.Group.String(),
		TeamAID:      v.TeamAID,
		TeamBID:      v.TeamBID,
		GoalsA:       v.GoalsA,
		GoalsB:       v.GoalsB,
		ReporterID:   v.ReporterID,
		CreatedAt:    v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toMatchDTOs(items []match.Result) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toMatchDTO(item))
	}
	return out
}
