package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	"github.com/riskibarqy/foosball-league/internal/domain/user"
	idgen "github.com/riskibarqy/foosball-league/internal/platform/id"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RecordMatchInput struct {
	TournamentID string
	TeamAID      string
	TeamBID      string
	GoalsA       int
	GoalsB       int
}

// MatchService owns the append-only match ledger.
//
// Two identical submissions produce two ledger entries. There is no dedupe and no
// correction workflow; a wrong result stays in the ledger.
type MatchService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	matchRepo      match.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewMatchService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// Record appends one encounter. Checks run in this order: pair, score, tournament, teams,
// group, reporter.
func (s *MatchService) Record(ctx context.Context, input RecordMatchInput, reporter user.Principal) (match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Record",
		attribute.String("tournament.id", input.TournamentID),
		attribute.String("match.pair", match.PairKey(input.TeamAID, input.TeamBID)),
	)
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.TeamAID = strings.TrimSpace(input.TeamAID)
	input.TeamBID = strings.TrimSpace(input.TeamBID)
	reporter.Subject = strings.TrimSpace(reporter.Subject)

	if input.TeamAID == "" || input.TeamBID == "" {
		return match.Result{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if input.TeamAID == input.TeamBID {
		return match.Result{}, fmt.Errorf("%w: team=%s", ErrInvalidPair, input.TeamAID)
	}
	if input.GoalsA < 0 || input.GoalsB < 0 {
		return match.Result{}, fmt.Errorf("%w: goals=%d-%d", ErrInvalidScore, input.GoalsA, input.GoalsB)
	}

	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, input.TournamentID)
	if err != nil {
		return match.Result{}, err
	}
	teamA, err := requireTeam(ctx, s.teamRepo, tournamentValue.ID, input.TeamAID)
	if err != nil {
		return match.Result{}, err
	}
	teamB, err := requireTeam(ctx, s.teamRepo, tournamentValue.ID, input.TeamBID)
	if err != nil {
		return match.Result{}, err
	}

	if !teamA.Assigned() || teamA.Group != teamB.Group {
		return match.Result{}, fmt.Errorf("%w: %s=%q %s=%q", ErrGroupMismatch, teamA.ID, teamA.Group, teamB.ID, teamB.Group)
	}

	if reporter.Subject == "" || (reporter.Subject != teamA.OwnerID && reporter.Subject != teamB.OwnerID) {
		// The detail stays out of Error() so the boundary cannot tell which half failed.
		err := crerr.WithDetailf(ErrUnauthorized, "reporter=%q owners=%q,%q", reporter.Subject, teamA.OwnerID, teamB.OwnerID)
		s.logger.WarnContext(ctx, "match report rejected",
			"tournament_id", tournamentValue.ID,
			"pair", match.PairKey(teamA.ID, teamB.ID),
			"error", err,
		)
		return match.Result{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Result{}, fmt.Errorf("generate match id: %w", err)
	}

	entry := match.Result{
		ID:           id,
		TournamentID: tournamentValue.ID,
		Group:        teamA.Group,
		PairKey:      match.PairKey(teamA.ID, teamB.ID),
		TeamAID:      teamA.ID,
		TeamBID:      teamB.ID,
		GoalsA:       input.GoalsA,
		GoalsB:       input.GoalsB,
		ReporterID:   reporter.Subject,
		CreatedAt:    s.now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return match.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, err := s.matchRepo.Append(ctx, entry)
	if err != nil {
		return match.Result{}, fmt.Errorf("append match result: %w", err)
	}

	s.logger.InfoContext(ctx, "match recorded",
		"tournament_id", stored.TournamentID,
		"group", stored.Group.String(),
		"match_id", stored.ID,
		"sequence", stored.Sequence,
		"pair", stored.PairKey,
		"score", fmt.Sprintf("%d-%d", stored.GoalsA, stored.GoalsB),
	)

	return stored, nil
}

// ListByGroup returns the group's ledger in creation order. Every call reads from the start.
func (s *MatchService) ListByGroup(ctx context.Context, tournamentID, group string) ([]match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByGroup", attribute.String("tournament.id", tournamentID))
	defer span.End()

	groupValue, err := parseGroup(group)
	if err != nil {
		return nil, err
	}
	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListByGroup(ctx, tournamentValue.ID, groupValue)
	if err != nil {
		return nil, fmt.Errorf("list matches by group: %w", err)
	}

	return items, nil
}

// ListByTeam returns the team's encounters, newest first.
func (s *MatchService) ListByTeam(ctx context.Context, tournamentID, teamID string) ([]match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByTeam", attribute.String("tournament.id", tournamentID))
	defer span.End()

	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}
	teamValue, err := requireTeam(ctx, s.teamRepo, tournamentValue.ID, teamID)
	if err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListByTeam(ctx, tournamentValue.ID, teamValue.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by team: %w", err)
	}

	return items, nil
}
