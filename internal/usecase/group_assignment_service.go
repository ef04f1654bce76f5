package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/foosball-league/internal/domain/draw"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type AssignTeamInput struct {
	TeamID string
	Group  string
}

// GroupAssignmentService is the only writer of team group membership. Calls for the same
// tournament run one at a time inside this process; the repository's all-or-nothing write
// covers other processes.
type GroupAssignmentService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	shuffler       draw.Shuffler
	locks          *keyedLock
	logger         *logging.Logger
}

func NewGroupAssignmentService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	shuffler draw.Shuffler,
	logger *logging.Logger,
) *GroupAssignmentService {
	if logger == nil {
		logger = logging.Default()
	}
	if shuffler == nil {
		shuffler = draw.NewRandom(0)
	}

	return &GroupAssignmentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		shuffler:       shuffler,
		locks:          newKeyedLock(),
		logger:         logger,
	}
}

// Assign places each listed team into its group. Either every entry is applied or none.
func (s *GroupAssignmentService) Assign(ctx context.Context, tournamentID string, entries []AssignTeamInput) ([]team.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupAssignmentService.Assign", attribute.String("tournament.id", tournamentID))
	defer span.End()

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: assignment batch is empty", ErrEmptyRoster)
	}

	assignments := make([]team.Assignment, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		teamID := strings.TrimSpace(entry.TeamID)
		if teamID == "" {
			return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
		}
		if _, dup := seen[teamID]; dup {
			return nil, fmt.Errorf("%w: team %s listed twice", ErrInvalidInput, teamID)
		}
		seen[teamID] = struct{}{}

		group, err := parseGroup(entry.Group)
		if err != nil {
			return nil, fmt.Errorf("team=%s: %w", teamID, err)
		}
		assignments = append(assignments, team.Assignment{TeamID: teamID, Group: group})
	}

	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(tournamentValue.ID)
	defer unlock()

	roster, err := s.teamRepo.ListByTournament(ctx, tournamentValue.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}
	members := make(map[string]struct{}, len(roster))
	for _, t := range roster {
		members[t.ID] = struct{}{}
	}
	for _, a := range assignments {
		if _, ok := members[a.TeamID]; !ok {
			return nil, fmt.Errorf("%w: team=%s tournament=%s", ErrUnknownTeam, a.TeamID, tournamentValue.ID)
		}
	}

	if err := s.apply(ctx, tournamentValue.ID, assignments, false); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "teams assigned to groups",
		"tournament_id", tournamentValue.ID,
		"teams", len(assignments),
		"mode", "explicit",
	)

	return assignments, nil
}

// AssignRandom deals every unassigned team into groups (all of A, B, C when groups is empty)
// so that group sizes never differ by more than one. Assigned teams are left alone.
func (s *GroupAssignmentService) AssignRandom(ctx context.Context, tournamentID string, groups []string) ([]team.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupAssignmentService.AssignRandom", attribute.String("tournament.id", tournamentID))
	defer span.End()

	targets, err := parseTargetGroups(groups)
	if err != nil {
		return nil, err
	}

	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(tournamentValue.ID)
	defer unlock()

	roster, err := s.teamRepo.ListByTournament(ctx, tournamentValue.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}

	unassigned := make([]string, 0, len(roster))
	existing := make(map[team.Group]int, len(targets))
	for _, t := range roster {
		if !t.Assigned() {
			unassigned = append(unassigned, t.ID)
			continue
		}
		existing[t.Group]++
	}
	if len(unassigned) == 0 {
		return nil, fmt.Errorf("%w: tournament=%s", ErrEmptyRoster, tournamentValue.ID)
	}

	assignments := draw.Deal(unassigned, targets, existing, s.shuffler)
	if err := s.apply(ctx, tournamentValue.ID, assignments, true); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "teams assigned to groups",
		"tournament_id", tournamentValue.ID,
		"teams", len(assignments),
		"mode", "random",
	)

	return assignments, nil
}

func (s *GroupAssignmentService) apply(ctx context.Context, tournamentID string, assignments []team.Assignment, onlyUnassigned bool) error {
	err := s.teamRepo.AssignGroups(ctx, tournamentID, assignments, onlyUnassigned)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, team.ErrNotInTournament):
		return fmt.Errorf("%w: %v", ErrUnknownTeam, err)
	case errors.Is(err, team.ErrAlreadyAssigned):
		return fmt.Errorf("%w: %v", ErrAssignmentConflict, err)
	default:
		return fmt.Errorf("assign groups: %w", err)
	}
}

func parseTargetGroups(raw []string) ([]team.Group, error) {
	if len(raw) == 0 {
		return append([]team.Group(nil), team.Groups...), nil
	}

	out := make([]team.Group, 0, len(raw))
	seen := make(map[team.Group]struct{}, len(raw))
	for _, item := range raw {
		group, err := parseGroup(item)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[group]; dup {
			continue
		}
		seen[group] = struct{}{}
		out = append(out, group)
	}

	return out, nil
}
