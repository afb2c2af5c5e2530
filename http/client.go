// Package http provides the HTTP client infrastructure used to talk to
// YouTube's web frontend and Innertube API: default headers, per-host rate
// limiting, circuit breaking, and typed error responses.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DisableKeepAliveEnv is the environment variable that, when set to "true",
// disables HTTP keep-alives on the default transport. Some proxies mishandle
// pooled connections to YouTube's edge.
const DisableKeepAliveEnv = "YTPL_DISABLE_KEEPALIVE"

// Doer is the request primitive the scraping core depends on. Tests and
// embedders can supply their own transport; *Client is the default.
type Doer interface {
	Do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*Response, error)
}

// Response is an HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests
	Timeout time.Duration

	// UserAgent applied when the request carries none
	UserAgent string

	// Rate limiter configuration
	RateLimiter RateLimiterConfig

	// Circuit breaker configuration
	CircuitBreaker CircuitBreakerConfig

	// Connection pool configuration
	Transport TransportConfig

	// Logger for request-level debug logging. Zero value logs nothing.
	Logger zerolog.Logger
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	MaxIdleConnsPerHost int

	// MaxConnsPerHost is the maximum concurrent connections per host.
	MaxConnsPerHost int

	// IdleConnTimeout is how long an idle connection may remain open.
	IdleConnTimeout time.Duration

	// ForceAttemptHTTP2 forces HTTP/2 where the server allows it.
	ForceAttemptHTTP2 bool

	// DisableKeepAlives disables connection reuse. Forced on when
	// YTPL_DISABLE_KEEPALIVE=true.
	DisableKeepAlives bool
}

// DefaultTransportConfig returns sensible defaults for the transport.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
		DisableKeepAlives:   false,
	}
}

// DefaultConfig returns sensible defaults for HTTP client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:        30 * time.Second,
		UserAgent:      "ytpl/1.0",
		RateLimiter:    DefaultRateLimiterConfig(),
		CircuitBreaker: DefaultCircuitBreakerConfig(),
		Transport:      DefaultTransportConfig(),
		Logger:         zerolog.Nop(),
	}
}

// Client wraps an HTTP client with rate limiting and circuit breaking.
type Client struct {
	base           *http.Client
	config         *Config
	rateLimiter    *RateLimiter
	circuitBreaker *CircuitBreaker
	log            zerolog.Logger
}

// New creates a new HTTP client with the given configuration.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	disableKeepAlives := cfg.Transport.DisableKeepAlives
	if os.Getenv(DisableKeepAliveEnv) == "true" {
		disableKeepAlives = true
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.Transport.MaxConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
		DisableKeepAlives:   disableKeepAlives,
	}

	return &Client{
		base: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config:         cfg,
		rateLimiter:    NewRateLimiter(cfg.RateLimiter),
		circuitBreaker: NewCircuitBreaker(cfg.CircuitBreaker),
		log:            cfg.Logger.With().Str("session", uuid.NewString()).Logger(),
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, nil)
}

// Do performs one HTTP request, pacing it through the per-host rate limiter
// and circuit breaker. Rate-limit responses (429/503) are returned as
// *RateLimitError, other non-2xx responses as *HTTPError. Do never retries:
// retry policy belongs to the callers.
func (c *Client) Do(ctx context.Context, method, urlStr string, body io.Reader, headers map[string]string) (*Response, error) {
	host := extractHost(urlStr)

	if err := c.circuitBreaker.Allow(host); err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx, urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	start := time.Now()
	resp, err := c.base.Do(req)
	if err != nil {
		c.circuitBreaker.RecordFailure(host, err)
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("url", urlStr).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusServiceUnavailable {
		rlErr := &RateLimitError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
		}
		c.circuitBreaker.RecordFailure(host, rlErr)
		return nil, rlErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: respBody}
		if resp.StatusCode >= 500 {
			c.circuitBreaker.RecordFailure(host, httpErr)
		}
		return nil, httpErr
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.circuitBreaker.RecordFailure(host, err)
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.circuitBreaker.RecordSuccess(host)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// parseRetryAfter extracts the Retry-After header value, either as seconds
// or an HTTP date. Missing or malformed values yield 0.
func parseRetryAfter(header http.Header) time.Duration {
	retryAfter := header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}

	return 0
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	if c.base != nil {
		c.base.CloseIdleConnections()
	}
	return nil
}
