package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/standing"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	"github.com/riskibarqy/foosball-league/internal/platform/cache"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultStandingWorkers = 3

// GroupStandings is one group's ranked table.
type GroupStandings struct {
	Group team.Group
	Rows  []standing.Row
}

type StandingServiceOptions struct {
	// Cache is optional. Entries are keyed by ledger length and roster, so a new result or a
	// membership change always misses.
	Cache   *cache.Store[[]standing.Row]
	Workers int
}

type StandingService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	matchRepo      match.Repository
	rules          standing.Rules
	cache          *cache.Store[[]standing.Row]
	pool           *ants.Pool
	logger         *logging.Logger
}

func NewStandingService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	rules standing.Rules,
	opts StandingServiceOptions,
	logger *logging.Logger,
) (*StandingService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = defaultStandingWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create standings worker pool: %w", err)
	}

	return &StandingService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		rules:          rules,
		cache:          opts.Cache,
		pool:           pool,
		logger:         logger,
	}, nil
}

func (s *StandingService) Close() {
	s.pool.Release()
}

// Compute returns the ranked table of one group. A group without members yields an empty
// table, not an error.
func (s *StandingService) Compute(ctx context.Context, tournamentID, group string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Compute",
		attribute.String("tournament.id", tournamentID),
		attribute.String("group", group),
	)
	defer span.End()

	groupValue, err := parseGroup(group)
	if err != nil {
		return nil, err
	}
	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	roster, err := s.teamRepo.ListByTournament(ctx, tournamentValue.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}

	return s.computeGroup(ctx, tournamentValue.ID, groupValue, roster)
}

// ComputeAll returns the table of every group, computed concurrently.
func (s *StandingService) ComputeAll(ctx context.Context, tournamentID string) ([]GroupStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ComputeAll", attribute.String("tournament.id", tournamentID))
	defer span.End()

	tournamentValue, err := requireTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	roster, err := s.teamRepo.ListByTournament(ctx, tournamentValue.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}

	out := make([]GroupStandings, len(team.Groups))
	errs := make([]error, len(team.Groups))

	var workers sync.WaitGroup
	for idx, g := range team.Groups {
		idx, g := idx, g
		workers.Add(1)
		if err := s.pool.Submit(func() {
			defer workers.Done()

			rows, err := s.computeGroup(ctx, tournamentValue.ID, g, roster)
			out[idx] = GroupStandings{Group: g, Rows: rows}
			errs[idx] = err
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit standings task: %w", err)
		}
	}
	workers.Wait()

	for idx, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("compute standings group=%s: %w", team.Groups[idx], err)
		}
	}

	return out, nil
}

func (s *StandingService) computeGroup(ctx context.Context, tournamentID string, group team.Group, roster []team.Team) ([]standing.Row, error) {
	members := make([]string, 0, len(roster))
	for _, t := range roster {
		if t.Group == group {
			members = append(members, t.ID)
		}
	}
	if len(members) == 0 {
		return []standing.Row{}, nil
	}
	sort.Strings(members)

	load := func(ctx context.Context) ([]standing.Row, error) {
		results, err := s.matchRepo.ListByGroup(ctx, tournamentID, group)
		if err != nil {
			return nil, fmt.Errorf("list matches by group: %w", err)
		}
		rows := standing.Compute(members, results, s.rules)

		s.logger.DebugContext(ctx, "standings computed",
			"tournament_id", tournamentID,
			"group", group.String(),
			"matches", len(results),
			"ranked", len(rows),
		)
		return rows, nil
	}

	if s.cache == nil {
		return load(ctx)
	}

	ledgerLen, err := s.matchRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("count matches by tournament: %w", err)
	}

	rows, err := s.cache.GetOrLoad(ctx, standingsCacheKey(tournamentID, group, ledgerLen, members), load)
	if err != nil {
		return nil, err
	}
	return append([]standing.Row(nil), rows...), nil
}

// standingsCacheKey expects members sorted.
func standingsCacheKey(tournamentID string, group team.Group, ledgerLen int, members []string) string {
	h := fnv.New64a()
	for _, id := range members {
		_, _ = h.Write([]byte(id))
		_, _ = h.Write([]byte{0})
	}
	return "standings:" + tournamentID + ":" + group.String() + ":" +
		strconv.Itoa(ledgerLen) + ":" + strconv.FormatUint(h.Sum64(), 16)
}
