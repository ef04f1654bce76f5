package match

import (
	"context"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
)

// Repository is the append-only ledger. There is no update or delete.
type Repository interface {
	// Append stores the entry and returns it with the store-assigned Sequence.
	Append(ctx context.Context, item Result) (Result, error)
	// ListByGroup returns entries ordered by creation time, then sequence.
	ListByGroup(ctx context.Context, tournamentID string, group team.Group) ([]Result, error)
	// ListByTeam returns entries involving the team, newest first.
	ListByTeam(ctx context.Context, tournamentID, teamID string) ([]Result, error)
	CountByTournament(ctx context.Context, tournamentID string) (int, error)
}
