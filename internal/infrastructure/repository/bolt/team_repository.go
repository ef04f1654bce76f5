package bolt

import (
	"context"
	"fmt"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
	bbolt "go.etcd.io/bbolt"
)

type TeamRepository struct {
	db *bbolt.DB
}

func NewTeamRepository(db *bbolt.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID string) ([]team.Team, error) {
	out := make([]team.Team, 0)
	err := r.db.View(func(tx *bbolt.Tx) error {
		return scanPrefix(tx.Bucket(bucketTeams), compositeKey(tournamentID), func(v []byte) error {
			var record teamRecord
			if err := decode(v, &record); err != nil {
				return fmt.Errorf("decode team: %w", err)
			}
			out = append(out, record.toDomain())
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, tournamentID, teamID string) (team.Team, bool, error) {
	var (
		record teamRecord
		found  bool
	)
	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTeams).Get(compositeKey(tournamentID, teamID))
		if data == nil {
			return nil
		}
		found = true
		return decode(data, &record)
	})
	if err != nil {
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, false, nil
	}
	return record.toDomain(), true, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	data, err := encode(teamRecordFromDomain(item))
	if err != nil {
		return fmt.Errorf("encode team: %w", err)
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		names := tx.Bucket(bucketTeamNames)
		nameKey := compositeKey(item.TournamentID, team.NameKey(item.Name))
		if names.Get(nameKey) != nil {
			return team.ErrDuplicateName
		}
		if err := names.Put(nameKey, []byte(item.ID)); err != nil {
			return fmt.Errorf("index team name: %w", err)
		}
		if item.OwnerID != "" {
			owners := tx.Bucket(bucketTeamOwners)
			ownerKey := compositeKey(item.TournamentID, item.OwnerID)
			if owners.Get(ownerKey) != nil {
				return team.ErrDuplicateOwner
			}
			if err := owners.Put(ownerKey, []byte(item.ID)); err != nil {
				return fmt.Errorf("index team owner: %w", err)
			}
		}
		if err := tx.Bucket(bucketTeams).Put(compositeKey(item.TournamentID, item.ID), data); err != nil {
			return fmt.Errorf("put team: %w", err)
		}
		return nil
	})
}

// AssignGroups runs in one write transaction; any error rolls back every put.
func (r *TeamRepository) AssignGroups(_ context.Context, tournamentID string, assignments []team.Assignment, onlyUnassigned bool) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		teams := tx.Bucket(bucketTeams)
		for _, a := range assignments {
			key := compositeKey(tournamentID, a.TeamID)
			data := teams.Get(key)
			if data == nil {
				return fmt.Errorf("team %s: %w", a.TeamID, team.ErrNotInTournament)
			}

			var record teamRecord
			if err := decode(data, &record); err != nil {
				return fmt.Errorf("decode team: %w", err)
			}
			if onlyUnassigned && record.Group != "" {
				return fmt.Errorf("team %s: %w", a.TeamID, team.ErrAlreadyAssigned)
			}

			record.Group = a.Group.String()
			updated, err := encode(record)
			if err != nil {
				return fmt.Errorf("encode team: %w", err)
			}
			if err := teams.Put(key, updated); err != nil {
				return fmt.Errorf("put team: %w", err)
			}
		}
		return nil
	})
}
