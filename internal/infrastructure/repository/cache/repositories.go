package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	basecache "github.com/riskibarqy/foosball-league/internal/platform/cache"
)

const (
	keyTournamentList   = "tournament:list"
	keyTournamentPrefix = "tournament:id:"
)

type cachedTournament struct {
	value  tournament.Tournament
	exists bool
}

// TournamentRepository is a read-through cache over another tournament.Repository. Tournaments
// are never updated, so only Create invalidates.
type TournamentRepository struct {
	next  tournament.Repository
	byID  *basecache.Store[cachedTournament]
	lists *basecache.Store[[]tournament.Tournament]
}

func NewTournamentRepository(next tournament.Repository, ttl time.Duration) *TournamentRepository {
	return &TournamentRepository{
		next:  next,
		byID:  basecache.NewStore[cachedTournament](ttl),
		lists: basecache.NewStore[[]tournament.Tournament](ttl),
	}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	items, err := r.lists.GetOrLoad(ctx, keyTournamentList, func(ctx context.Context) ([]tournament.Tournament, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]tournament.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, keyTournamentPrefix+tournamentID, func(ctx context.Context) (cachedTournament, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return cachedTournament{}, err
		}
		return cachedTournament{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.lists.Delete(ctx, keyTournamentList)
	r.byID.Delete(ctx, keyTournamentPrefix+item.ID)
	return nil
}
