package tournament

import (
	"context"
	"errors"
)

// ErrDuplicateName is returned by Create when the name is already taken.
var ErrDuplicateName = errors.New("tournament name already exists")

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	Create(ctx context.Context, item Tournament) error
}
