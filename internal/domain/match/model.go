package match

import (
	"fmt"
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
)

// Result is one immutable ledger entry: an encounter between two teams of the same group.
type Result struct {
	ID           string
	Sequence     int64
	TournamentID string
	Group        team.Group
	PairKey      string
	TeamAID      string
	TeamBID      string
	GoalsA       int
	GoalsB       int
	ReporterID   string
	CreatedAt    time.Time
}

// PairKey identifies the unordered pair of teams.
func PairKey(teamAID, teamBID string) string {
	if teamBID < teamAID {
		teamAID, teamBID = teamBID, teamAID
	}
	return teamAID + ":" + teamBID
}

// Involves reports whether the team took part in the encounter.
func (r Result) Involves(teamID string) bool {
	return r.TeamAID == teamID || r.TeamBID == teamID
}

func (r Result) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if r.TournamentID == "" {
		return fmt.Errorf("match tournament id is required")
	}
	if r.TeamAID == "" || r.TeamBID == "" {
		return fmt.Errorf("match teams are required")
	}
	if r.TeamAID == r.TeamBID {
		return fmt.Errorf("match teams must be distinct")
	}
	if r.GoalsA < 0 || r.GoalsB < 0 {
		return fmt.Errorf("match goals cannot be negative")
	}
	if r.ReporterID == "" {
		return fmt.Errorf("match reporter is required")
	}

	return nil
}
