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

// UnassignedKey is the TeamsByGroup bucket for teams without a group.
const UnassignedKey = "unassigned"

type CreateTournamentInput struct {
	Name             string
	StartDate        time.Time
	EstimatedEndDate time.Time
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	}
	if input.StartDate.IsZero() || input.EstimatedEndDate.IsZero() {
		return tournament.Tournament{}, fmt.Errorf("%w: start and estimated end dates are required", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
	}

	item := tournament.Tournament{
		ID:               id,
		Name:             input.Name,
		StartDate:        input.StartDate.UTC(),
		EstimatedEndDate: input.EstimatedEndDate.UTC(),
		CreatedAt:        s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		if errors.Is(err, tournament.ErrInvalidDateRange) {
			return tournament.Tournament{}, fmt.Errorf("%w: start=%s end=%s", ErrInvalidDateRange,
				item.StartDate.Format(time.DateOnly), item.EstimatedEndDate.Format(time.DateOnly))
		}
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.tournamentRepo.Create(ctx, item); err != nil {
		if errors.Is(err, tournament.ErrDuplicateName) {
			return tournament.Tournament{}, fmt.Errorf("%w: name=%q", ErrDuplicateTournamentName, item.Name)
		}
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		"tournament_id", item.ID,
		"name", item.Name,
	)

	return item, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get", attribute.String("tournament.id", tournamentID))
	defer span.End()

	return requireTournament(ctx, s.tournamentRepo, tournamentID)
}

// List returns every tournament newest first, each with its team counters.
func (s *TournamentService) List(ctx context.Context) ([]tournament.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	out := make([]tournament.Summary, 0, len(items))
	for _, item := range items {
		teams, err := s.teamRepo.ListByTournament(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("list teams for tournament=%s: %w", item.ID, err)
		}

		byGroup := make(map[string]int, len(team.Groups)+1)
		for _, g := range team.Groups {
			byGroup[g.String()] = 0
		}
		byGroup[UnassignedKey] = 0
		for _, t := range teams {
			if !t.Assigned() {
				byGroup[UnassignedKey]++
				continue
			}
			byGroup[t.Group.String()]++
		}

		out = append(out, tournament.Summary{
			Tournament:   item,
			TeamsCount:   len(teams),
			TeamsByGroup: byGroup,
		})
	}

	return out, nil
}
