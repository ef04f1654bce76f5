package postgres

import (
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
)

type tournamentTableModel struct {
	ID               int64     `db:"id"`
	PublicID         string    `db:"public_id"`
	Name             string    `db:"name"`
	StartDate        time.Time `db:"start_date"`
	EstimatedEndDate time.Time `db:"estimated_end_date"`
	CreatedAt        time.Time `db:"created_at"`
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:               m.PublicID,
		Name:             m.Name,
		StartDate:        m.StartDate.UTC(),
		EstimatedEndDate: m.EstimatedEndDate.UTC(),
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

type tournamentInsertModel struct {
	PublicID         string    `db:"public_id"`
	Name             string    `db:"name"`
	StartDate        time.Time `db:"start_date"`
	EstimatedEndDate time.Time `db:"estimated_end_date"`
	CreatedAt        time.Time `db:"created_at,default"`
}
