package introspect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/foosball-league/internal/domain/user"
	"github.com/riskibarqy/foosball-league/internal/platform/cache"
	"github.com/riskibarqy/foosball-league/internal/platform/logging"
	"github.com/riskibarqy/foosball-league/internal/platform/resilience"
	"github.com/riskibarqy/foosball-league/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout       = 5 * time.Second
	maxResponseBodyBytes = 1 << 20
)

// errTransient marks failures that count against the circuit breaker.
var errTransient = errors.New("account service transient failure")

type Options struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client resolves bearer tokens against the account service introspection endpoint.
type Client struct {
	httpClient    *fasthttp.Client
	timeout       time.Duration
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	principals    *cache.Store[user.Principal]
	logger        *logging.Logger
}

func NewClient(httpClient *fasthttp.Client, opts Options, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "foosball-league",
			MaxResponseBodySize: maxResponseBodyBytes,
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	breaker := resilience.NewCircuitBreaker(opts.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("account circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:    httpClient,
		timeout:       timeout,
		introspectURL: buildURL(opts.BaseURL, opts.IntrospectPath),
		adminKey:      strings.TrimSpace(opts.AdminKey),
		breaker:       breaker,
		principals:    cache.NewStore[user.Principal](opts.CacheTTL),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if principal, ok := c.principals.Get(ctx, key); ok {
		return principal, nil
	}

	var principal user.Principal
	err := c.breaker.Do(func() error {
		var callErr error
		principal, callErr = c.introspect(ctx, token)
		return callErr
	}, isCircuitFailure)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return user.Principal{}, fmt.Errorf("%w: account service circuit open", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	c.principals.Set(ctx, key, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.introspectURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}
	req.SetBodyRaw(encoded)

	if err := c.httpClient.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w: request introspection: %v", usecase.ErrDependencyUnavailable, errTransient, err)
	}

	status := resp.StatusCode()
	body := resp.Body()

	switch {
	case status == fasthttp.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case status == fasthttp.StatusForbidden:
		c.logger.ErrorContext(ctx, "account service rejected admin key", "status_code", status)
		return user.Principal{}, fmt.Errorf("%w: introspection forbidden", usecase.ErrDependencyUnavailable)
	case status >= fasthttp.StatusInternalServerError:
		c.logger.WarnContext(ctx, "account introspection failed", "status_code", status)
		return user.Principal{}, fmt.Errorf("%w: %w: status %d", usecase.ErrDependencyUnavailable, errTransient, status)
	case status != fasthttp.StatusOK:
		c.logger.WarnContext(ctx, "account introspection non-200", "status_code", status)
		return user.Principal{}, fmt.Errorf("%w: introspection status %d", usecase.ErrDependencyUnavailable, status)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: unmarshal introspect response: %v", usecase.ErrDependencyUnavailable, err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has empty user_id", usecase.ErrDependencyUnavailable)
	}

	return user.Principal{
		Subject: decoded.UserID,
		Email:   decoded.Email,
		Roles:   append([]string(nil), decoded.Roles...),
	}, nil
}

// deadline is the earlier of the context deadline and the client timeout.
func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool     `json:"active"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

func isCircuitFailure(err error) bool {
	return errors.Is(err, errTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
