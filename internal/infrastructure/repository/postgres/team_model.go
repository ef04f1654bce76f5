package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
)

type teamTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	TournamentID string         `db:"tournament_public_id"`
	Name         string         `db:"name"`
	PhoneNumber  sql.NullString `db:"phone_number"`
	GroupLabel   sql.NullString `db:"group_label"`
	OwnerID      string         `db:"owner_id"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (m teamTableModel) toDomain(participants []team.Participant) team.Team {
	if participants == nil {
		participants = []team.Participant{}
	}
	return team.Team{
		ID:           m.PublicID,
		TournamentID: m.TournamentID,
		Name:         m.Name,
		PhoneNumber:  m.PhoneNumber.String,
		Group:        team.Group(m.GroupLabel.String),
		OwnerID:      m.OwnerID,
		Participants: participants,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type teamInsertModel struct {
	PublicID     string         `db:"public_id"`
	TournamentID string         `db:"tournament_public_id"`
	Name         string         `db:"name"`
	PhoneNumber  sql.NullString `db:"phone_number"`
	GroupLabel   sql.NullString `db:"group_label"`
	OwnerID      string         `db:"owner_id"`
	CreatedAt    time.Time      `db:"created_at,default"`
}

type participantTableModel struct {
	TeamID      string         `db:"team_public_id"`
	Position    int            `db:"position"`
	Name        string         `db:"name"`
	PhoneNumber sql.NullString `db:"phone_number"`
}

// teamLockModel is the slice of a team row read under FOR UPDATE before assignment.
type teamLockModel struct {
	PublicID   string         `db:"public_id"`
	GroupLabel sql.NullString `db:"group_label"`
}
