package app

import (
	"fmt"

	"github.com/riskibarqy/foosball-league/internal/config"
	"github.com/riskibarqy/foosball-league/internal/infrastructure/account/introspect"
	"github.com/riskibarqy/foosball-league/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/foosball-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"github.com/riskibarqy/foosball-league/internal/platform/resilience"
)

func newTokenVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeIntrospect:
		return introspect.NewClient(nil, introspect.Options{
			BaseURL:        cfg.AccountBaseURL,
			IntrospectPath: cfg.AccountIntrospectPath,
			AdminKey:       cfg.AccountAdminKey,
			Timeout:        cfg.AccountTimeout,
			CacheTTL:       cfg.AccountCacheTTL,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AccountCircuitEnabled,
				FailureThreshold: cfg.AccountCircuitFailureCount,
				OpenTimeout:      cfg.AccountCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
			},
		}, logger.Named("account")), nil
	case config.AuthModeJWT:
		verifier, err := jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		return verifier, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}
}
