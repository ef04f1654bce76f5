package bolt

import (
	"context"
	"fmt"

	"github.com/riskibarqy/foosball-league/internal/infrastructure/repository/memory"
	bbolt "go.etcd.io/bbolt"
)

// BootstrapSeed loads the demo tournament into an empty file. It is a no-op once any
// tournament exists.
func BootstrapSeed(ctx context.Context, db *bbolt.DB) error {
	tournaments := NewTournamentRepository(db)
	existing, err := tournaments.List(ctx)
	if err != nil {
		return fmt.Errorf("list tournaments for bootstrap seed: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, item := range memory.SeedTournaments() {
		if err := tournaments.Create(ctx, item); err != nil {
			return fmt.Errorf("seed tournament %s: %w", item.ID, err)
		}
	}

	teams := NewTeamRepository(db)
	for _, item := range memory.SeedTeams() {
		if err := teams.Create(ctx, item); err != nil {
			return fmt.Errorf("seed team %s: %w", item.ID, err)
		}
	}

	return nil
}
