package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
)

type TeamRepository struct {
	mu                sync.RWMutex
	teamsByTournament map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	teamsByTournament := make(map[string][]team.Team)
	for _, item := range teams {
		teamsByTournament[item.TournamentID] = append(teamsByTournament[item.TournamentID], item.Clone())
	}

	return &TeamRepository{teamsByTournament: teamsByTournament}
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.teamsByTournament[tournamentID]
	out := make([]team.Team, 0, len(teams))
	for _, item := range teams {
		out = append(out, item.Clone())
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, tournamentID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teamsByTournament[tournamentID] {
		if item.ID == teamID {
			return item.Clone(), true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := team.NameKey(item.Name)
	for _, existing := range r.teamsByTournament[item.TournamentID] {
		if team.NameKey(existing.Name) == key {
			return team.ErrDuplicateName
		}
	}
	if item.OwnerID != "" {
		for _, existing := range r.teamsByTournament[item.TournamentID] {
			if existing.OwnerID == item.OwnerID {
				return team.ErrDuplicateOwner
			}
		}
	}
	r.teamsByTournament[item.TournamentID] = append(r.teamsByTournament[item.TournamentID], item.Clone())

	return nil
}

func (r *TeamRepository) AssignGroups(_ context.Context, tournamentID string, assignments []team.Assignment, onlyUnassigned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.teamsByTournament[tournamentID]
	index := make(map[string]int, len(rows))
	for idx, item := range rows {
		index[item.ID] = idx
	}

	// Validate the whole batch before the first write.
	for _, a := range assignments {
		idx, ok := index[a.TeamID]
		if !ok {
			return team.ErrNotInTournament
		}
		if onlyUnassigned && rows[idx].Assigned() {
			return team.ErrAlreadyAssigned
		}
	}
	for _, a := range assignments {
		rows[index[a.TeamID]].Group = a.Group
	}

	return nil
}
