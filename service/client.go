package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL     = "https://api.rapidmock.com/api/vikuman/v1"
	defaultUserAgent   = "movielist-cli/1.0 (+https://github.com/movielist-cli)"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
	defaultRateLimit   = 8
	defaultRateBurst   = 4
	maxBodyBytes       = 8 << 20
)

// Client wraps HTTP access to the catalog and watch list API.
// It is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
	limiter     *rate.Limiter
	logger      *slog.Logger

	inflight singleflight.Group
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetry sets how many times idempotent requests are attempted and the backoff bounds.
func WithRetry(attempts int, base, cap time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = attempts
		c.retryBase = base
		c.retryCap = cap
	}
}

// WithRateLimit throttles outgoing requests. A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// APIError is returned when the API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "movie api error"
	}
	return fmt.Sprintf("movie api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a new API client. If httpClient is nil, a default client is used.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     DefaultBaseURL,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
		limiter:     rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

// get fetches endpoint, retrying transient failures.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	attempts := c.maxAttempts
	if attempts < 1 {
		attempts = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	maxDelay := c.retryCap
	if maxDelay <= 0 {
		maxDelay = defaultRetryCap
	}

	return retry.DoWithData(
		func() ([]byte, error) {
			return c.do(ctx, http.MethodGet, endpoint, nil)
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(base),
		retry.MaxDelay(maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(c.shouldRetry),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("service.retry", "endpoint", endpoint, "attempt", n+1, "err", err)
		}),
	)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, endpoint, data)
	return err
}

func (c *Client) do(ctx context.Context, method string, endpoint string, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("service.request_failed", "method", method, "endpoint", endpoint, "request_id", requestID, "err", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	c.logger.Debug("service.request",
		"method", method,
		"endpoint", endpoint,
		"status", res.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
	)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		return nil, &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", endpoint, err)
	}
	return body, nil
}

func (c *Client) shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func (c *Client) endpoint(path string, query url.Values) string {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}
