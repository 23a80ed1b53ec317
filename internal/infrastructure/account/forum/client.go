package forum

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/avenratt/league-portal/internal/domain/user"
	"github.com/avenratt/league-portal/internal/platform/cache"
	"github.com/avenratt/league-portal/internal/platform/logging"
	"github.com/avenratt/league-portal/internal/platform/resilience"
	"github.com/avenratt/league-portal/internal/usecase"
)

const (
	defaultIntrospectPath = "/api/oauth/introspect"
	defaultTimeout        = 10 * time.Second
	defaultCacheTTL       = 30 * time.Second
)

var errForumTransient = crerr.New("forum transient failure")

// ClientConfig configures the forum token verifier. The forum is the
// identity provider for the whole league; every authenticated request
// goes through token introspection here.
type ClientConfig struct {
	BaseURL        string
	IntrospectPath string
	Timeout        time.Duration
	MaxRetries     int
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	introspectURL  string
	maxRetries     int
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	principals     *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	path := strings.TrimSpace(cfg.IntrospectPath)
	if path == "" {
		path = defaultIntrospectPath
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		introspectURL:  buildURL(cfg.BaseURL, path),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		principals:     cache.NewStore(cacheTTL),
	}
}

// VerifyAccessToken resolves a bearer token to a Principal. Successful
// verifications are cached briefly so a burst of requests from one
// session costs a single forum round trip.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	value, err := c.principals.GetOrLoad(ctx, token, func(ctx context.Context) (any, error) {
		return c.introspect(ctx, token)
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal, ok := value.(user.Principal)
	if !ok {
		return user.Principal{}, fmt.Errorf("unexpected cached principal type %T", value)
	}
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "forum circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: forum is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.introspectWithRetries(ctx, token)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errForumTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil && crerr.Is(err, errForumTransient) {
		return user.Principal{}, fmt.Errorf("%w: forum introspection failed", usecase.ErrDependencyUnavailable)
	}
	return principal, err
}

func (c *Client) introspectWithRetries(ctx context.Context, token string) (user.Principal, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return user.Principal{}, fmt.Errorf("introspect cancelled: %w", err)
		}

		principal, err := c.doIntrospect(token)
		if err == nil {
			return principal, nil
		}
		lastErr = err
		if !crerr.Is(err, errForumTransient) {
			return user.Principal{}, err
		}
		c.logger.WarnContext(ctx, "forum introspection attempt failed",
			"attempt", attempt+1,
			"error", err,
		)
	}
	return user.Principal{}, lastErr
}

func (c *Client) doIntrospect(token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.introspectURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBody(encoded)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return user.Principal{}, fmt.Errorf("%w: send request: %v", errForumTransient, err)
	}

	status := resp.StatusCode()
	if status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	// The response body is only valid until the response is released,
	// so it is copied into a pooled buffer before decoding.
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.Write(resp.Body()); err != nil {
		return user.Principal{}, fmt.Errorf("%w: read response body: %v", errForumTransient, err)
	}

	if status != fasthttp.StatusOK {
		return user.Principal{}, fmt.Errorf("%w: forum status=%d", errForumTransient, status)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(buf.B, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, stderrors.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Name:   decoded.Username,
		Roles:  decoded.Roles,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active   bool     `json:"active"`
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
