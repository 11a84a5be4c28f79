package brain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
	"github.com/Aman-CERP/brainai/pkg/vecmath"
)

// Client talks to a Brain AI service. It is safe for concurrent use.
type Client struct {
	cfg       Config
	http      *resty.Client
	transport *http.Transport // kept for idle connection cleanup
	logger    *slog.Logger
	retry     RetryConfig
	breaker   *brainerrors.CircuitBreaker
	now       func() time.Time

	mu     sync.RWMutex
	closed bool
}

// New creates a Client for cfg.BaseURL. No request is made.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, brainerrors.ConfigError("base URL is required", nil).
			WithSuggestion("Set client.base_url in config or BRAINAI_BASE_URL")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, brainerrors.ConfigError(fmt.Sprintf("invalid base URL %q", cfg.BaseURL), err).
			WithSuggestion("Use an absolute http:// or https:// URL")
	}

	o := buildOptions(cfg, opts)

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.PoolSize,
		MaxIdleConnsPerHost: cfg.PoolSize,
		MaxConnsPerHost:     cfg.PoolSize * 2,
		IdleConnTimeout:     30 * time.Second,
	}

	// Timeouts are applied per attempt through the request context, so the
	// resty client itself has none.
	rc := resty.New().
		SetTransport(transport).
		SetBaseURL(cfg.BaseURL).
		SetLogger(restyLogger{l: o.logger}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", o.userAgent)
	if cfg.APIKey != "" {
		rc.SetAuthToken(cfg.APIKey)
	}

	var breakerOpts []brainerrors.CircuitBreakerOption
	if o.maxFailures > 0 {
		breakerOpts = append(breakerOpts, brainerrors.WithMaxFailures(o.maxFailures))
	}
	if o.resetAfter > 0 {
		breakerOpts = append(breakerOpts, brainerrors.WithResetTimeout(o.resetAfter))
	}

	return &Client{
		cfg:       cfg,
		http:      rc,
		transport: transport,
		logger:    o.logger,
		retry:     *o.retry,
		breaker:   brainerrors.NewCircuitBreaker(cfg.BaseURL, breakerOpts...),
		now:       time.Now,
	}, nil
}

// Config returns the effective configuration, defaults applied.
func (c *Client) Config() Config {
	return c.cfg
}

// Close releases idle connections. Further calls fail with ErrClientClosed.
// Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.transport.CloseIdleConnections()
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// do sends a request that changes state on the service. It is attempted
// exactly once: a timeout or 5xx can arrive after the service has already
// applied the write, and resending would apply it twice.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.isClosed() {
		return brainerrors.New(brainerrors.ErrCodeClientClosed, "client is closed", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.breaker.Execute(func() error {
		return c.send(ctx, method, path, body, out, 1)
	})
}

// query sends a read-only request, retrying transient failures, and decodes
// a JSON response into out when out is non-nil.
func (c *Client) query(ctx context.Context, method, path string, body, out any) error {
	if c.isClosed() {
		return brainerrors.New(brainerrors.ErrCodeClientClosed, "client is closed", nil)
	}

	attempt := 0
	return brainerrors.Retry(ctx, c.retry, func() error {
		attempt++
		return c.breaker.Execute(func() error {
			return c.send(ctx, method, path, body, out, attempt)
		})
	})
}

func (c *Client) send(ctx context.Context, method, path string, body, out any, attempt int) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	requestID := uuid.NewString()
	req := c.http.R().
		SetContext(reqCtx).
		SetHeader("X-Request-ID", requestID)
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug("brain_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		// A caller cancellation must not be reported as a retryable timeout.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return brainerrors.FromTransport(err)
	}

	c.logger.Debug("brain_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode()),
		slog.Int("attempt", attempt),
		slog.Duration("duration", time.Since(start)))

	if resp.IsError() {
		return brainerrors.FromStatus(resp.StatusCode(), resp.String()).
			WithDetail("request_id", requestID)
	}

	raw := resp.Body()
	if out == nil || len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return brainerrors.New(brainerrors.ErrCodeDecodeFailed,
			fmt.Sprintf("decode %s %s response", method, path), err).
			WithDetail("request_id", requestID)
	}
	return nil
}

// prepareVector validates v against the configured dimensions and applies
// normalization when enabled.
func (c *Client) prepareVector(op string, v []float64) ([]float64, error) {
	if len(v) == 0 {
		return nil, invalidInput("%s: vector must not be empty", op)
	}
	if c.cfg.VectorDimensions > 0 && len(v) != c.cfg.VectorDimensions {
		return nil, brainerrors.DimensionMismatch(op, len(v), c.cfg.VectorDimensions)
	}
	if c.cfg.NormalizeVectors {
		return vecmath.Normalize(v), nil
	}
	return v, nil
}

func (c *Client) timestamp() int64 {
	return c.now().UnixMilli()
}

func escapeID(id string) string {
	return url.PathEscape(id)
}

// restyLogger forwards resty's internal warnings to slog.
type restyLogger struct {
	l *slog.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}
