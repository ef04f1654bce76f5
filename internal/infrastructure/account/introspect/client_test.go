package introspect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"github.com/riskibarqy/foosball-league/internal/platform/resilience"
	"github.com/riskibarqy/foosball-league/internal/usecase"
)

func newTestClient(srv *httptest.Server, adminKey string, ttl time.Duration, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(nil, Options{
		BaseURL:        srv.URL,
		IntrospectPath: "v1/auth/introspect",
		AdminKey:       adminKey,
		Timeout:        2 * time.Second,
		CacheTTL:       ttl,
		CircuitBreaker: breaker,
	}, logging.NewNop())
}

func writeJSON(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	encoded, err := sonic.Marshal(body)
	if err != nil {
		t.Fatalf("encode response: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(encoded)
}

func TestClientVerifyAccessToken_SendsAdminKeyAndParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-admin-key"); got != "admin-secret" {
			t.Errorf("unexpected x-admin-key: %s", got)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Errorf("unexpected token value: %s", req["token"])
		}

		writeJSON(t, w, map[string]any{
			"active":  true,
			"user_id": "user-123",
			"roles":   []string{"admin"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, "admin-secret", 0, resilience.CircuitBreakerConfig{})
	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.Subject != "user-123" {
		t.Fatalf("unexpected subject: %s", principal.Subject)
	}
	if !principal.IsAdmin() {
		t.Fatalf("expected admin role to be carried over")
	}
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"active": false})
	}))
	defer srv.Close()

	client := newTestClient(srv, "admin-secret", 0, resilience.CircuitBreakerConfig{})
	_, err := client.VerifyAccessToken(context.Background(), "invalid-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_ForbiddenMappedToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(srv, "wrong-key", 0, resilience.CircuitBreakerConfig{})
	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClientVerifyAccessToken_UsesCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, map[string]any{"active": true, "user_id": "user-cache"})
	}))
	defer srv.Close()

	client := newTestClient(srv, "admin-secret", time.Minute, resilience.CircuitBreakerConfig{})
	for i := 0; i < 2; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.Subject != "user-cache" {
			t.Fatalf("unexpected subject: %s", principal.Subject)
		}
	}

	if calls.Load() != 1 {
		t.Fatalf("expected one introspection call with cache, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv, "admin-secret", 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	})

	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}

	if calls.Load() != 2 {
		t.Fatalf("expected the open circuit to short-circuit the third call, got %d upstream calls", calls.Load())
	}
}

func TestClientVerifyAccessToken_RejectedTokensDoNotTripCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv, "admin-secret", 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	for i := 0; i < 3; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "bad"); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if calls.Load() != 3 {
		t.Fatalf("expected every call to reach upstream, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_UnreachableServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv, "admin-secret", 0, resilience.CircuitBreakerConfig{})
	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected transport failure to count against the circuit, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	if got := buildURL("https://acct.example/", "v1/introspect"); got != "https://acct.example/v1/introspect" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := buildURL("https://acct.example", "https://other.example/x"); got != "https://other.example/x" {
		t.Fatalf("absolute path must win, got %s", got)
	}
}
