package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	"github.com/riskibarqy/foosball-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo tournament into an empty database. It is a no-op once any
// tournament exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tournaments`); err != nil {
		return fmt.Errorf("count tournaments for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tournaments := NewTournamentRepository(db)
	for _, item := range memory.SeedTournaments() {
		if err := tournaments.Create(ctx, item); err != nil && !errors.Is(err, tournament.ErrDuplicateName) {
			return fmt.Errorf("seed tournament %s: %w", item.ID, err)
		}
	}

	teams := NewTeamRepository(db)
	for _, item := range memory.SeedTeams() {
		if err := teams.Create(ctx, item); err != nil && !errors.Is(err, team.ErrDuplicateName) {
			return fmt.Errorf("seed team %s: %w", item.ID, err)
		}
	}

	return nil
}
