package team

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateName is returned by Create when the tournament already has a team with that name.
	ErrDuplicateName = errors.New("team name already exists in tournament")
	// ErrDuplicateOwner is returned by Create when the owner already has a team in the tournament.
	ErrDuplicateOwner = errors.New("owner already has a team in tournament")
	// ErrNotInTournament is returned by AssignGroups when a team does not belong to the tournament.
	ErrNotInTournament = errors.New("team does not belong to tournament")
	// ErrAlreadyAssigned is returned by AssignGroups in unassigned-only mode when a team has a group.
	ErrAlreadyAssigned = errors.New("team already assigned to a group")
)

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Team, error)
	GetByID(ctx context.Context, tournamentID, teamID string) (Team, bool, error)
	// Create rejects a second team with the same NameKey, or a second team for the same
	// non-empty OwnerID, within one tournament.
	Create(ctx context.Context, item Team) error
	// AssignGroups applies every assignment or none. With onlyUnassigned set, a team that
	// already has a group aborts the whole batch with ErrAlreadyAssigned.
	AssignGroups(ctx context.Context, tournamentID string, assignments []Assignment, onlyUnassigned bool) error
}
