package usecase

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrUnauthorized          = crerr.New("unauthorized")
	ErrConflict              = crerr.New("conflict")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)

// Validation errors.
var (
	ErrInvalidPair             = fmt.Errorf("%w: teams must be distinct", ErrInvalidInput)
	ErrInvalidGroup            = fmt.Errorf("%w: group must be one of A, B, C", ErrInvalidInput)
	ErrInvalidDateRange        = fmt.Errorf("%w: estimated end date precedes start date", ErrInvalidInput)
	ErrInvalidScore            = fmt.Errorf("%w: goals cannot be negative", ErrInvalidInput)
	ErrTooFewParticipants      = fmt.Errorf("%w: not enough participants", ErrInvalidInput)
	ErrDuplicateTeamName       = fmt.Errorf("%w: team name already taken in tournament", ErrInvalidInput)
	ErrOwnerHasTeam            = fmt.Errorf("%w: account already registered a team in tournament", ErrInvalidInput)
	ErrDuplicateTournamentName = fmt.Errorf("%w: tournament name already taken", ErrInvalidInput)
)

// Consistency errors. The caller's view of the roster is stale.
var (
	ErrUnknownTournament  = fmt.Errorf("%w: unknown tournament", ErrNotFound)
	ErrUnknownTeam        = fmt.Errorf("%w: unknown team", ErrNotFound)
	ErrGroupMismatch      = fmt.Errorf("%w: teams are not in the same group", ErrConflict)
	ErrAssignmentConflict = fmt.Errorf("%w: roster changed during assignment", ErrConflict)
)

// ErrEmptyRoster reports an assignment that would not place any team.
var ErrEmptyRoster = fmt.Errorf("%w: no unassigned teams to place", ErrConflict)
