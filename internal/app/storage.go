package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/foosball-league/internal/config"
	"github.com/riskibarqy/foosball-league/internal/domain/match"
	"github.com/riskibarqy/foosball-league/internal/domain/team"
	"github.com/riskibarqy/foosball-league/internal/domain/tournament"
	boltrepo "github.com/riskibarqy/foosball-league/internal/infrastructure/repository/bolt"
	cacherepo "github.com/riskibarqy/foosball-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/foosball-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/foosball-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	tournaments tournament.Repository
	teams       team.Repository
	matches     match.Repository
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos   repositories
		closeFn = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.SeedDemo {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, err
			}
		}
		repos = repositories{
			tournaments: postgres.NewTournamentRepository(db),
			teams:       postgres.NewTeamRepository(db),
			matches:     postgres.NewMatchRepository(db),
		}
		closeFn = db.Close
	case config.StorageBolt:
		db, err := boltrepo.Open(cfg.BoltPath)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.SeedDemo {
			if err := boltrepo.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, err
			}
		}
		repos = repositories{
			tournaments: boltrepo.NewTournamentRepository(db),
			teams:       boltrepo.NewTeamRepository(db),
			matches:     boltrepo.NewMatchRepository(db),
		}
		closeFn = db.Close
	case config.StorageMemory:
		repos = repositories{
			tournaments: memory.NewTournamentRepository(nil),
			teams:       memory.NewTeamRepository(nil),
			matches:     memory.NewMatchRepository(),
		}
		if cfg.SeedDemo {
			repos.tournaments = memory.NewTournamentRepository(memory.SeedTournaments())
			repos.teams = memory.NewTeamRepository(memory.SeedTeams())
		}
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, cfg.CacheTTL)
	}

	logger.Info("storage ready", "driver", cfg.StorageDriver, "seed_demo", cfg.SeedDemo)

	return repos, closeFn, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
