package transport

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/famomatic/ytscribe/internal/proxypool"
)

// Logger receives retry and failover diagnostics. Nil-safe via nopLogger.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// RetryConfig controls retry and backoff behavior for upstream requests.
type RetryConfig struct {
	// MaxRetries is the total number of attempts. Default 3.
	MaxRetries int

	// BackoffFactor is the base of the exponential delay: the wait after
	// failed attempt n is BackoffFactor * 2^(n-1) plus jitter. Default 750ms.
	BackoffFactor time.Duration

	// Timeout bounds each individual attempt. Default 30s.
	Timeout time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BackoffFactor <= 0 {
		c.BackoffFactor = 750 * time.Millisecond
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

const (
	backoffJitterMax   = 500 * time.Millisecond
	rateLimitJitterMax = time.Second
)

// Executor performs HTTP requests with per-attempt timeout, exponential
// backoff between attempts, optional proxy rotation, and a minimum delay
// between logical operations. Only transport-level failures are retried;
// HTTP status handling belongs to callers. When every attempt fails, the
// last error is returned as-is so callers can match its original cause.
type Executor struct {
	cfg     RetryConfig
	client  *http.Client
	pool    *proxypool.Manager
	limiter *RateLimiter
	logger  Logger

	sleep  func(time.Duration)
	jitter func(max time.Duration) time.Duration
}

// Config assembles an Executor.
type Config struct {
	Retry RetryConfig

	// HTTPClient is used for direct requests and as the fallback when the
	// pool has no active proxy. Nil means a fresh client with the retry
	// timeout applied.
	HTTPClient *http.Client

	// Pool enables per-attempt proxy rotation when non-nil.
	Pool *proxypool.Manager

	// MinDelay is the minimum gap between logical operations. Zero disables
	// rate limiting.
	MinDelay time.Duration

	Logger Logger
}

// New builds an Executor from the config.
func New(cfg Config) *Executor {
	retry := cfg.Retry.withDefaults()
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: retry.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	var limiter *RateLimiter
	if cfg.MinDelay > 0 {
		limiter = NewRateLimiter(cfg.MinDelay)
	}
	return &Executor{
		cfg:     retry,
		client:  client,
		pool:    cfg.Pool,
		limiter: limiter,
		logger:  logger,
		sleep:   time.Sleep,
		jitter:  randomJitter,
	}
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max)))
}

// Do issues one logical request with rate limiting, retries, and backoff.
// The body is re-materialized for every attempt. The returned response body
// is open and owned by the caller.
func (e *Executor) Do(ctx context.Context, method, rawURL string, header http.Header, body []byte) (*http.Response, error) {
	if e.limiter != nil {
		e.limiter.Wait()
	}

	var lastErr error
	for attempt := 1; attempt <= e.cfg.MaxRetries; attempt++ {
		resp, err := e.attempt(ctx, method, rawURL, header, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt == e.cfg.MaxRetries {
			break
		}
		delay := e.backoffFor(attempt)
		e.logger.Warnf("request failed (attempt %d/%d) for %s: %v, retrying in %s", attempt, e.cfg.MaxRetries, rawURL, err, delay)
		e.sleep(delay)
	}
	return nil, lastErr
}

// Get is a convenience wrapper for bodyless GET requests.
func (e *Executor) Get(ctx context.Context, rawURL string, header http.Header) (*http.Response, error) {
	return e.Do(ctx, http.MethodGet, rawURL, header, nil)
}

// GetBytes issues a GET and drains the response body. Non-200 statuses are
// returned alongside the body for the caller to interpret.
func (e *Executor) GetBytes(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error) {
	resp, err := e.Get(ctx, rawURL, header)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

func (e *Executor) attempt(ctx context.Context, method, rawURL string, header http.Header, body []byte) (*http.Response, error) {
	attemptCtx := ctx
	var cancel context.CancelFunc
	if e.cfg.Timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, rawURL, bodyReader)
	if err != nil {
		if cancel != nil {
			cancel()
		}
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	client, proxy := e.clientForAttempt()
	resp, err := client.Do(req)
	if err != nil {
		if cancel != nil {
			cancel()
		}
		if proxy != nil {
			e.pool.MarkFailed(proxy, err.Error())
		}
		return nil, err
	}
	if proxy != nil {
		e.pool.MarkSuccess(proxy)
	}
	if cancel != nil {
		// Released once the caller finishes the body.
		resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	}
	return resp, nil
}

// clientForAttempt routes through the next pool proxy when rotation is
// enabled, falling back to the direct client when the pool is exhausted.
func (e *Executor) clientForAttempt() (*http.Client, *proxypool.Proxy) {
	if e.pool == nil {
		return e.client, nil
	}
	proxy := e.pool.Next()
	if proxy == nil {
		e.logger.Warnf("proxy pool exhausted, falling back to direct connection")
		return e.client, nil
	}
	tr, err := proxy.Transport()
	if err != nil {
		e.pool.MarkFailed(proxy, err.Error())
		return e.client, nil
	}
	return &http.Client{Transport: tr, Timeout: e.cfg.Timeout}, proxy
}

func (e *Executor) backoffFor(attempt int) time.Duration {
	delay := e.cfg.BackoffFactor * (1 << (attempt - 1))
	return delay + e.jitter(backoffJitterMax)
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// RateLimiter enforces a minimum delay between consecutive operations,
// measured from the previous call regardless of its outcome.
type RateLimiter struct {
	minDelay time.Duration
	last     time.Time

	now    func() time.Time
	sleep  func(time.Duration)
	jitter func(max time.Duration) time.Duration
}

// NewRateLimiter builds a limiter with the given minimum inter-call delay.
func NewRateLimiter(minDelay time.Duration) *RateLimiter {
	return &RateLimiter{
		minDelay: minDelay,
		now:      time.Now,
		sleep:    time.Sleep,
		jitter:   randomJitter,
	}
}

// Wait blocks until at least the minimum delay has elapsed since the
// previous call, plus a small jitter. The first call never blocks.
func (r *RateLimiter) Wait() {
	if !r.last.IsZero() {
		elapsed := r.now().Sub(r.last)
		if elapsed < r.minDelay {
			r.sleep(r.minDelay - elapsed + r.jitter(rateLimitJitterMax))
		}
	}
	r.last = r.now()
}
