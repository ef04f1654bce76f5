package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/foosball-league/internal/config"
	"github.com/riskibarqy/foosball-league/internal/domain/draw"
	"github.com/riskibarqy/foosball-league/internal/domain/standing"
	"github.com/riskibarqy/foosball-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/foosball-league/internal/platform/cache"
	idgen "github.com/riskibarqy/foosball-league/internal/platform/id"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"github.com/riskibarqy/foosball-league/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned cleanup releases the
// storage handles and worker pools; call it after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	verifier, err := newTokenVerifier(cfg, logger)
	if err != nil {
		_ = closeRepos()
		return nil, nil, err
	}

	rules := standing.DefaultRules()
	rules.MinGames = cfg.LeagueMinGames

	standingOpts := usecase.StandingServiceOptions{Workers: cfg.StandingsWorkers}
	if cfg.CacheEnabled {
		standingOpts.Cache = cache.NewStore[[]standing.Row](cfg.CacheTTL)
	}
	standingSvc, err := usecase.NewStandingService(repos.tournaments, repos.teams, repos.matches, rules, standingOpts, logger)
	if err != nil {
		_ = closeRepos()
		return nil, nil, err
	}

	ids := idgen.NewUUIDGenerator()
	handler := httpapi.NewHandler(
		usecase.NewTournamentService(repos.tournaments, repos.teams, ids, logger),
		usecase.NewTeamService(repos.tournaments, repos.teams, ids, cfg.LeagueMinParticipants, logger),
		usecase.NewMatchService(repos.tournaments, repos.teams, repos.matches, ids, logger),
		standingSvc,
		usecase.NewGroupAssignmentService(repos.tournaments, repos.teams, draw.NewRandom(cfg.LeagueDrawSeed), logger),
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := joinClosers(closeRepos, func() error {
		standingSvc.Close()
		return nil
	})

	logger.Info("application wired",
		"storage", cfg.StorageDriver,
		"auth_mode", cfg.AuthMode,
		"cache_enabled", cfg.CacheEnabled,
		"min_games", rules.MinGames,
	)

	return server, cleanup, nil
}

// joinClosers runs closers in reverse order and collects every error.
func joinClosers(closers ...func() error) func() error {
	return func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
