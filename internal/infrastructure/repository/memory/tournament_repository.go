package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
)

type TournamentRepository struct {
	mu     sync.RWMutex
	items  map[string]tournament.Tournament
	byName map[string]string
}

func NewTournamentRepository(items []tournament.Tournament) *TournamentRepository {
	r := &TournamentRepository{
		items:  make(map[string]tournament.Tournament, len(items)),
		byName: make(map[string]string, len(items)),
	}
	for _, item := range items {
		r.items[item.ID] = item
		r.byName[nameKey(item.Name)] = item.ID
	}
	return r
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[tournamentID]
	return item, ok, nil
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := nameKey(item.Name)
	if _, taken := r.byName[key]; taken {
		return tournament.ErrDuplicateName
	}
	r.items[item.ID] = item
	r.byName[key] = item.ID
	return nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
