package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	idgen "github.com/riskibarqy/foosball-league/internal/platform/id"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RegisterTeamInput struct {
	TournamentID string
	Name         string
	PhoneNumber  string
	Participants []team.Participant
	// OwnerID is the subject of the principal registering the team. It may report results.
	OwnerID string
}

// GroupedTeams is the roster split by group label, each list sorted by name.
type GroupedTeams struct {
	Groups     map[team.Group][]team.Team
	Unassigned []team.Team
	Total      int
}

type TeamService struct {
	tournamentRepo  tournament.Repository
	teamRepo        team.Repository
	idGen           idgen.Generator
	minParticipants int
	logger          *logging.Logger
	now             func() time.Time
}

func NewTeamService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	minParticipants int,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if minParticipants < 1 {
		minParticipants = 1
	}

	return &TeamService{
		tournamentRepo:  tournamentRepo,
		teamRepo:        teamRepo,
		idGen:           idGen,
		minParticipants: minParticipants,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *TeamService) Register(ctx context.Context, input RegisterTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Register", attribute.String("tournament.id", input.TournamentID))
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.Name = strings.TrimSpace(input.Name)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.OwnerID = strings.TrimSpace(input.OwnerID)

	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if input.OwnerID == "" {
		return team.Team{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	participants := cleanParticipants(input.Participants)
	if len(participants) < s.minParticipants {
		return team.Team{}, fmt.Errorf("%w: got=%d want at least %d", ErrTooFewParticipants, len(participants), s.minParticipants)
	}

	if _, err := requireTournament(ctx, s.tournamentRepo, input.TournamentID); err != nil {
		return team.Team{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:           id,
		TournamentID: input.TournamentID,
		Name:         input.Name,
		PhoneNumber:  input.PhoneNumber,
		OwnerID:      input.OwnerID,
		Participants: participants,
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		if errors.Is(err, team.ErrDuplicateName) {
			return team.Team{}, fmt.Errorf("%w: name=%q tournament=%s", ErrDuplicateTeamName, item.Name, item.TournamentID)
		}
		if errors.Is(err, team.ErrDuplicateOwner) {
			return team.Team{}, fmt.Errorf("%w: owner=%s tournament=%s", ErrOwnerHasTeam, item.OwnerID, item.TournamentID)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team registered",
		"tournament_id", item.TournamentID,
		"team_id", item.ID,
		"participants", len(item.Participants),
	)

	return item, nil
}

func (s *TeamService) Get(ctx context.Context, tournamentID, teamID string) (team.Team, error) {
	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return team.Team{}, err
	}
	return requireTeam(ctx, s.teamRepo, tournamentValue.ID, teamID)
}

// ForOwner returns the team the account registered in the tournament.
func (s *TeamService) ForOwner(ctx context.Context, tournamentID, ownerID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ForOwner", attribute.String("tournament.id", tournamentID))
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return team.Team{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return team.Team{}, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentValue.ID)
	if err != nil {
		return team.Team{}, fmt.Errorf("list teams by tournament: %w", err)
	}
	for _, t := range teams {
		if t.OwnerID == ownerID {
			return t, nil
		}
	}

	return team.Team{}, fmt.Errorf("%w: owner=%s tournament=%s", ErrUnknownTeam, ownerID, tournamentValue.ID)
}

// Roster lists every team of the tournament sorted by name.
func (s *TeamService) Roster(ctx context.Context, tournamentID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Roster", attribute.String("tournament.id", tournamentID))
	defer span.End()

	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentValue.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}
	sortByName(teams)

	return teams, nil
}

func (s *TeamService) TeamsByGroup(ctx context.Context, tournamentID string) (GroupedTeams, error) {
	teams, err := s.Roster(ctx, tournamentID)
	if err != nil {
		return GroupedTeams{}, err
	}

	out := GroupedTeams{
		Groups:     make(map[team.Group][]team.Team, len(team.Groups)),
		Unassigned: []team.Team{},
		Total:      len(teams),
	}
	for _, g := range team.Groups {
		out.Groups[g] = []team.Team{}
	}
	for _, t := range teams {
		if !t.Assigned() {
			out.Unassigned = append(out.Unassigned, t)
			continue
		}
		out.Groups[t.Group] = append(out.Groups[t.Group], t)
	}

	return out, nil
}

// Opponents lists the other members of the team's group. An unassigned team has none.
func (s *TeamService) Opponents(ctx context.Context, tournamentID, teamID string) ([]team.Team, error) {
	self, err := s.Get(ctx, tournamentID, teamID)
	if err != nil {
		return nil, err
	}
	if !self.Assigned() {
		return []team.Team{}, nil
	}

	teams, err := s.teamRepo.ListByTournament(ctx, self.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}

	out := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if t.ID == self.ID || t.Group != self.Group {
			continue
		}
		out = append(out, t)
	}
	sortByName(out)

	return out, nil
}

func cleanParticipants(in []team.Participant) []team.Participant {
	out := make([]team.Participant, 0, len(in))
	for _, p := range in {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		out = append(out, team.Participant{
			Name:        name,
			PhoneNumber: strings.TrimSpace(p.PhoneNumber),
		})
	}
	return out
}

func sortByName(teams []team.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		left, right := team.NameKey(teams[i].Name), team.NameKey(teams[j].Name)
		if left != right {
			return left < right
		}
		return teams[i].ID < teams[j].ID
	})
}
