package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

const (
	AuthModeJWT        = "jwt"
	AuthModeIntrospect = "introspect"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level
	SwaggerEnabled bool

	StorageDriver           string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBMaxOpenConns          int
	BoltPath                string
	SeedDemo                bool

	CacheEnabled       bool
	CacheTTL           time.Duration
	CORSAllowedOrigins []string

	AuthMode                     string
	JWTSecret                    string
	JWTIssuer                    string
	AccountBaseURL               string
	AccountIntrospectPath        string
	AccountAdminKey              string
	AccountTimeout               time.Duration
	AccountCacheTTL              time.Duration
	AccountCircuitEnabled        bool
	AccountCircuitFailureCount   int
	AccountCircuitOpenTimeout    time.Duration
	AccountCircuitHalfOpenMaxReq int

	LeagueMinParticipants int
	LeagueMinGames        int
	LeagueDrawSeed        uint64
	StandingsWorkers      int

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)

	if cfg.AppEnv, err = parseAppEnv(getEnv("APP_ENV", EnvDev)); err != nil {
		return Config{}, err
	}
	cfg.ServiceName = getEnv("APP_SERVICE_NAME", "foosball-league-api")
	cfg.ServiceVersion = getEnv("APP_SERVICE_VERSION", "dev")
	cfg.HTTPAddr = getEnv("APP_HTTP_ADDR", ":8080")
	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	level, ok := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if !ok {
		return Config{}, fmt.Errorf("invalid APP_LOG_LEVEL %q: valid values are debug, info, warn, error", os.Getenv("APP_LOG_LEVEL"))
	}
	cfg.LogLevel = level
	if cfg.SwaggerEnabled, err = getEnvAsBool("SWAGGER_ENABLED", cfg.AppEnv == EnvDev); err != nil {
		return Config{}, err
	}

	if err := cfg.loadStorage(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadAuth(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadLeague(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadObservability(); err != nil {
		return Config{}, err
	}

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func (cfg *Config) loadStorage() error {
	var err error

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres, StorageBolt:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s, %s", cfg.StorageDriver, StorageMemory, StoragePostgres, StorageBolt)
	}

	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if cfg.StorageDriver == StoragePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", true); err != nil {
		return err
	}
	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return err
	}
	if cfg.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1")
	}
	cfg.BoltPath = strings.TrimSpace(getEnv("BOLT_PATH", "foosball-league.db"))

	seedDefault := cfg.AppEnv == EnvDev
	if cfg.SeedDemo, err = getEnvAsBool("SEED_DEMO", seedDefault); err != nil {
		return err
	}

	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", false); err != nil {
		return err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 60*time.Second); err != nil {
		return err
	}
	return nil
}

func (cfg *Config) loadAuth() error {
	var err error

	cfg.AuthMode = strings.ToLower(strings.TrimSpace(getEnv("AUTH_MODE", AuthModeJWT)))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	cfg.JWTIssuer = strings.TrimSpace(getEnv("JWT_ISSUER", ""))
	cfg.AccountBaseURL = strings.TrimSpace(getEnv("ACCOUNT_BASE_URL", ""))
	cfg.AccountIntrospectPath = getEnv("ACCOUNT_INTROSPECT_PATH", "/v1/auth/introspect")
	cfg.AccountAdminKey = strings.TrimSpace(getEnv("ACCOUNT_ADMIN_KEY", ""))

	switch cfg.AuthMode {
	case AuthModeJWT:
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=%s", AuthModeJWT)
		}
	case AuthModeIntrospect:
		if cfg.AccountBaseURL == "" {
			return fmt.Errorf("ACCOUNT_BASE_URL is required when AUTH_MODE=%s", AuthModeIntrospect)
		}
	default:
		return fmt.Errorf("invalid AUTH_MODE %q: valid values are %s, %s", cfg.AuthMode, AuthModeJWT, AuthModeIntrospect)
	}

	if cfg.AccountTimeout, err = getEnvAsDuration("ACCOUNT_TIMEOUT", 3*time.Second); err != nil {
		return err
	}
	if cfg.AccountCacheTTL, err = getEnvAsDuration("ACCOUNT_CACHE_TTL", 30*time.Second); err != nil {
		return err
	}
	if cfg.AccountCircuitEnabled, err = getEnvAsBool("ACCOUNT_CIRCUIT_ENABLED", true); err != nil {
		return err
	}
	if cfg.AccountCircuitFailureCount, err = getEnvAsInt("ACCOUNT_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return err
	}
	if cfg.AccountCircuitFailureCount < 1 {
		return fmt.Errorf("ACCOUNT_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.AccountCircuitOpenTimeout, err = getEnvAsDuration("ACCOUNT_CIRCUIT_OPEN_TIMEOUT", 15*time.Second); err != nil {
		return err
	}
	if cfg.AccountCircuitHalfOpenMaxReq, err = getEnvAsInt("ACCOUNT_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return err
	}
	if cfg.AccountCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("ACCOUNT_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func (cfg *Config) loadLeague() error {
	var err error

	if cfg.LeagueMinParticipants, err = getEnvAsInt("LEAGUE_MIN_PARTICIPANTS", 1); err != nil {
		return err
	}
	if cfg.LeagueMinParticipants < 1 {
		return fmt.Errorf("LEAGUE_MIN_PARTICIPANTS must be >= 1")
	}
	if cfg.LeagueMinGames, err = getEnvAsInt("LEAGUE_MIN_GAMES", 3); err != nil {
		return err
	}
	if cfg.LeagueMinGames < 0 {
		return fmt.Errorf("LEAGUE_MIN_GAMES must be >= 0")
	}
	if raw := strings.TrimSpace(os.Getenv("LEAGUE_DRAW_SEED")); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("parse LEAGUE_DRAW_SEED: %w", err)
		}
		cfg.LeagueDrawSeed = seed
	}
	if cfg.StandingsWorkers, err = getEnvAsInt("STANDINGS_WORKERS", 3); err != nil {
		return err
	}
	if cfg.StandingsWorkers < 1 {
		return fmt.Errorf("STANDINGS_WORKERS must be >= 1")
	}
	return nil
}

func (cfg *Config) loadObservability() error {
	var err error

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return err
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration rejects non-positive durations.
func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
