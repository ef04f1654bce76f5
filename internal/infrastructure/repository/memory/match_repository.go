package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
)

// MatchRepository keeps the ledger as a slice that only grows.
type MatchRepository struct {
	mu      sync.RWMutex
	entries []match.Result
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

func (r *MatchRepository) Append(_ context.Context, item match.Result) (match.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.Sequence = int64(len(r.entries) + 1)
	r.entries = append(r.entries, item)
	return item, nil
}

func (r *MatchRepository) ListByGroup(_ context.Context, tournamentID string, group team.Group) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Result, 0)
	for _, item := range r.entries {
		if item.TournamentID == tournamentID && item.Group == group {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Sequence < out[j].Sequence
	})

	return out, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, tournamentID, teamID string) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Result, 0)
	for _, item := range r.entries {
		if item.TournamentID == tournamentID && item.Involves(teamID) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Sequence > out[j].Sequence
	})

	return out, nil
}

func (r *MatchRepository) CountByTournament(_ context.Context, tournamentID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.entries {
		if item.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}
