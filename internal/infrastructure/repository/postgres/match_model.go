package postgres

import (
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
)

type matchTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	TournamentID string    `db:"tournament_public_id"`
	GroupLabel   string    `db:"group_label"`
	PairKey      string    `db:"pair_key"`
	TeamAID      string    `db:"team_a_public_id"`
	TeamBID      string    `db:"team_b_public_id"`
	GoalsA       int       `db:"goals_a"`
	GoalsB       int       `db:"goals_b"`
	ReporterID   string    `db:"reporter_id"`
	CreatedAt    time.Time `db:"created_at"`
}

func (m matchTableModel) toDomain() match.Result {
	return match.Result{
		ID:           m.PublicID,
		Sequence:     m.ID,
		TournamentID: m.TournamentID,
		Group:        team.Group(m.GroupLabel),
		PairKey:      m.PairKey,
		TeamAID:      m.TeamAID,
		TeamBID:      m.TeamBID,
		GoalsA:       m.GoalsA,
		GoalsB:       m.GoalsB,
		ReporterID:   m.ReporterID,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type matchInsertModel struct {
	PublicID     string    `db:"public_id"`
	TournamentID string    `db:"tournament_public_id"`
	GroupLabel   string    `db:"group_label"`
	PairKey      string    `db:"pair_key"`
	TeamAID      string    `db:"team_a_public_id"`
	TeamBID      string    `db:"team_b_public_id"`
	GoalsA       int       `db:"goals_a"`
	GoalsB       int       `db:"goals_b"`
	ReporterID   string    `db:"reporter_id"`
	CreatedAt    time.Time `db:"created_at,default"`
}
