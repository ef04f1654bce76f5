package bolt

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	bbolt "go.etcd.io/bbolt"
)

type TournamentRepository struct {
	db *bbolt.DB
}

func NewTournamentRepository(db *bbolt.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	out := make([]tournament.Tournament, 0)
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTournaments).ForEach(func(_, v []byte) error {
			var record tournamentRecord
			if err := decode(v, &record); err != nil {
				return fmt.Errorf("decode tournament: %w", err)
			}
			out = append(out, record.toDomain())
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	var (
		record tournamentRecord
		found  bool
	)
	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTournaments).Get([]byte(tournamentID))
		if data == nil {
			return nil
		}
		found = true
		return decode(data, &record)
	})
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}
	if !found {
		return tournament.Tournament{}, false, nil
	}
	return record.toDomain(), true, nil
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) error {
	data, err := encode(tournamentRecord{
		ID:               item.ID,
		Name:             item.Name,
		StartDate:        item.StartDate,
		EstimatedEndDate: item.EstimatedEndDate,
		CreatedAt:        item.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode tournament: %w", err)
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		names := tx.Bucket(bucketTournamentNames)
		nameKey := []byte(strings.ToLower(strings.TrimSpace(item.Name)))
		if names.Get(nameKey) != nil {
			return tournament.ErrDuplicateName
		}
		if err := names.Put(nameKey, []byte(item.ID)); err != nil {
			return fmt.Errorf("index tournament name: %w", err)
		}
		if err := tx.Bucket(bucketTournaments).Put([]byte(item.ID), data); err != nil {
			return fmt.Errorf("put tournament: %w", err)
		}
		return nil
	})
}
