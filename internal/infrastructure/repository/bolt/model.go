package bolt

import (
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
)

type tournamentRecord struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	StartDate        time.Time `json:"start_date"`
	EstimatedEndDate time.Time `json:"estimated_end_date"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r tournamentRecord) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:               r.ID,
		Name:             r.Name,
		StartDate:        r.StartDate,
		EstimatedEndDate: r.EstimatedEndDate,
		CreatedAt:        r.CreatedAt,
	}
}

type participantRecord struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type teamRecord struct {
	ID           string              `json:"id"`
	TournamentID string              `json:"tournament_id"`
	Name         string              `json:"name"`
	PhoneNumber  string              `json:"phone_number,omitempty"`
	Group        string              `json:"group,omitempty"`
	OwnerID      string              `json:"owner_id"`
	Participants []participantRecord `json:"participants"`
	CreatedAt    time.Time           `json:"created_at"`
}

func teamRecordFromDomain(item team.Team) teamRecord {
	participants := make([]participantRecord, 0, len(item.Participants))
	for _, p := range item.Participants {
		participants = append(participants, participantRecord{Name: p.Name, PhoneNumber: p.PhoneNumber})
	}
	return teamRecord{
		ID:           item.ID,
		TournamentID: item.TournamentID,
		Name:         item.Name,
		PhoneNumber:  item.PhoneNumber,
		Group:        item.Group.String(),
		OwnerID:      item.OwnerID,
		Participants: participants,
		CreatedAt:    item.CreatedAt,
	}
}

func (r teamRecord) toDomain() team.Team {
	participants := make([]team.Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, team.Participant{Name: p.Name, PhoneNumber: p.PhoneNumber})
	}
	return team.Team{
		ID:           r.ID,
		TournamentID: r.TournamentID,
		Name:         r.Name,
		PhoneNumber:  r.PhoneNumber,
		Group:        team.Group(r.Group),
		OwnerID:      r.OwnerID,
		Participants: participants,
		CreatedAt:    r.CreatedAt,
	}
}

type matchRecord struct {
	ID           string    `json:"id"`
	Sequence     int64     `json:"sequence"`
	TournamentID string    `json:"tournament_id"`
	Group        string    `json:"group"`
	PairKey      string    `json:"pair_key"`
	TeamAID      string    `json:"team_a_id"`
	TeamBID      string    `json:"team_b_id"`
	GoalsA       int       `json:"goals_a"`
	GoalsB       int       `json:"goals_b"`
	ReporterID   string    `json:"reporter_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func matchRecordFromDomain(item match.Result) matchRecord {
	return matchRecord{
		ID:           item.ID,
		Sequence:     item.Sequence,
		TournamentID: item.TournamentID,
		Group:        item.Group.String(),
		PairKey:      item.PairKey,
		TeamAID:      item.TeamAID,
		TeamBID:      item.TeamBID,
		GoalsA:       item.GoalsA,
		GoalsB:       item.GoalsB,
		ReporterID:   item.ReporterID,
		CreatedAt:    item.CreatedAt,
	}
}

func (r matchRecord) toDomain() match.Result {
	return match.Result{
		ID:           r.ID,
		Sequence:     r.Sequence,
		TournamentID: r.TournamentID,
		Group:        team.Group(r.Group),
		PairKey:      r.PairKey,
		TeamAID:      r.TeamAID,
		TeamBID:      r.TeamBID,
		GoalsA:       r.GoalsA,
		GoalsB:       r.GoalsB,
		ReporterID:   r.ReporterID,
		CreatedAt:    r.CreatedAt,
	}
}
