package bolt

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	bbolt "go.etcd.io/bbolt"
)

// MatchRepository stores the ledger under tournament id + big-endian sequence, so a
// prefix scan returns a tournament's entries in append order.
type MatchRepository struct {
	db *bbolt.DB
}

func NewMatchRepository(db *bbolt.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Append(_ context.Context, item match.Result) (match.Result, error) {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMatches)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("next match sequence: %w", err)
		}
		item.Sequence = int64(seq)

		data, err := encode(matchRecordFromDomain(item))
		if err != nil {
			return fmt.Errorf("encode match result: %w", err)
		}
		return b.Put(sequenceKey(item.TournamentID, seq), data)
	})
	if err != nil {
		return match.Result{}, fmt.Errorf("append match result: %w", err)
	}
	return item, nil
}

func (r *MatchRepository) ListByGroup(_ context.Context, tournamentID string, group team.Group) ([]match.Result, error) {
	out, err := r.scan(tournamentID, func(item match.Result) bool { return item.Group == group })
	if err != nil {
		return nil, err
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
	out, err := r.scan(tournamentID, func(item match.Result) bool { return item.Involves(teamID) })
	if err != nil {
		return nil, err
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
	count := 0
	err := r.db.View(func(tx *bbolt.Tx) error {
		return scanPrefix(tx.Bucket(bucketMatches), compositeKey(tournamentID), func([]byte) error {
			count++
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("count match results: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) scan(tournamentID string, keep func(match.Result) bool) ([]match.Result, error) {
	out := make([]match.Result, 0)
	err := r.db.View(func(tx *bbolt.Tx) error {
		return scanPrefix(tx.Bucket(bucketMatches), compositeKey(tournamentID), func(v []byte) error {
			var record matchRecord
			if err := decode(v, &record); err != nil {
				return fmt.Errorf("decode match result: %w", err)
			}
			if item := record.toDomain(); keep(item) {
				out = append(out, item)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("scan match results: %w", err)
	}
	return out, nil
}
