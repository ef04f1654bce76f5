package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/foosball-league/internal/platform/logging"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("AUTH_MODE", AuthModeJWT)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("UPTRACE_ENABLED", "false")
}

func TestFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LeagueMinParticipants != 1 {
		t.Fatalf("expected default min participants 1, got %d", cfg.LeagueMinParticipants)
	}
	if cfg.LeagueMinGames != 3 {
		t.Fatalf("expected default min games 3, got %d", cfg.LeagueMinGames)
	}
	if cfg.LeagueDrawSeed != 0 {
		t.Fatalf("expected unseeded draw by default, got %d", cfg.LeagueDrawSeed)
	}
	if cfg.CacheEnabled {
		t.Fatalf("standings cache must be off by default")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel)
	}
	if !cfg.SeedDemo {
		t.Fatalf("expected demo seed on in dev")
	}
}

func TestFromEnv_AppEnvValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestFromEnv_RejectsUnknownLogLevel(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_LOG_LEVEL", "verbose")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for unknown APP_LOG_LEVEL")
	}
}

func TestFromEnv_PostgresRequiresDBURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("DB_URL", "")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
	}
}

func TestFromEnv_RejectsUnknownStorageDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "mongo")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for unknown STORAGE_DRIVER")
	}
}

func TestFromEnv_AuthModes(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error when AUTH_MODE=jwt without JWT_SECRET")
	}

	t.Setenv("AUTH_MODE", AuthModeIntrospect)
	t.Setenv("ACCOUNT_BASE_URL", "")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error when AUTH_MODE=introspect without ACCOUNT_BASE_URL")
	}

	t.Setenv("ACCOUNT_BASE_URL", "http://accounts.local")
	t.Setenv("ACCOUNT_CIRCUIT_OPEN_TIMEOUT", "30s")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AccountCircuitOpenTimeout != 30*time.Second {
		t.Fatalf("unexpected circuit open timeout: %s", cfg.AccountCircuitOpenTimeout)
	}
}

func TestFromEnv_LeagueSettings(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LEAGUE_MIN_PARTICIPANTS", "2")
	t.Setenv("LEAGUE_MIN_GAMES", "4")
	t.Setenv("LEAGUE_DRAW_SEED", "2026")
	t.Setenv("STANDINGS_WORKERS", "6")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LeagueMinParticipants != 2 || cfg.LeagueMinGames != 4 || cfg.LeagueDrawSeed != 2026 || cfg.StandingsWorkers != 6 {
		t.Fatalf("unexpected league config: %+v", cfg)
	}

	t.Setenv("LEAGUE_MIN_PARTICIPANTS", "0")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for LEAGUE_MIN_PARTICIPANTS=0")
	}
}

func TestFromEnv_RejectsNonPositiveDuration(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CACHE_TTL", "0s")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for CACHE_TTL=0s")
	}
}

func TestFromEnv_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LEAGUE_MIN_GAMES", "")
	os.Unsetenv("LEAGUE_MIN_GAMES")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LEAGUE_MIN_GAMES=5\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LeagueMinGames != 5 {
		t.Fatalf("expected LEAGUE_MIN_GAMES from .env, got %d", cfg.LeagueMinGames)
	}
}
