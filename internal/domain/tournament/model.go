package tournament

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateRange is returned when the estimated end date precedes the start date.
var ErrInvalidDateRange = errors.New("tournament end date must not be before start date")

// Tournament is one league edition: a group stage followed by a knockout.
type Tournament struct {
	ID               string
	Name             string
	StartDate        time.Time
	EstimatedEndDate time.Time
	CreatedAt        time.Time
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	if t.StartDate.IsZero() || t.EstimatedEndDate.IsZero() {
		return fmt.Errorf("tournament dates are required")
	}
	if t.EstimatedEndDate.Before(t.StartDate) {
		return ErrInvalidDateRange
	}

	return nil
}

// Summary is a tournament with its roster counters.
type Summary struct {
	Tournament
	TeamsCount   int
	TeamsByGroup map[string]int
}
