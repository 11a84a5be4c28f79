package brain

import (
	"log/slog"
	"time"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

// Defaults applied to zero-valued Config fields.
const (
	DefaultTimeout             = 30 * time.Second
	DefaultMemorySize          = 10000
	DefaultLearningRate        = 0.1
	DefaultSimilarityThreshold = 0.7
	DefaultMaxReasoningDepth   = 5
	DefaultMaxRetries          = 3
	DefaultPoolSize            = 4
	DefaultSearchLimit         = 10
	DefaultUserAgent           = "brainai-go"
)

// Config holds the connection and tuning settings for a Client.
// Zero fields take their defaults, so a zero MaxRetries means
// DefaultMaxRetries; set it negative to disable retries.
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:8000. Required.
	BaseURL string
	// APIKey is sent as a bearer token when set.
	APIKey string
	// Timeout bounds each HTTP attempt.
	Timeout time.Duration

	MemorySize          int
	LearningRate        float64
	SimilarityThreshold float64
	MaxReasoningDepth   int

	// VectorDimensions, when positive, rejects vectors of any other length
	// before a request is made.
	VectorDimensions int
	// NormalizeVectors scales vectors to unit length before sending them.
	NormalizeVectors bool

	// MaxRetries is the number of retries after the first attempt of a
	// read. Zero uses DefaultMaxRetries and a negative value disables
	// retries. Writes are never retried.
	MaxRetries int
	// PoolSize bounds idle connections and StoreVectors fan-out.
	PoolSize int
}

// DefaultConfig returns a Config with every default filled in and no BaseURL.
func DefaultConfig() Config {
	return Config{
		Timeout:             DefaultTimeout,
		MemorySize:          DefaultMemorySize,
		LearningRate:        DefaultLearningRate,
		SimilarityThreshold: DefaultSimilarityThreshold,
		MaxReasoningDepth:   DefaultMaxReasoningDepth,
		MaxRetries:          DefaultMaxRetries,
		PoolSize:            DefaultPoolSize,
	}
}

// withDefaults returns c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MemorySize <= 0 {
		c.MemorySize = d.MemorySize
	}
	if c.LearningRate == 0 {
		c.LearningRate = d.LearningRate
	}
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = d.SimilarityThreshold
	}
	if c.MaxReasoningDepth <= 0 {
		c.MaxReasoningDepth = d.MaxReasoningDepth
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.PoolSize <= 0 {
		c.PoolSize = d.PoolSize
	}
	return c
}

type options struct {
	logger      *slog.Logger
	retry       *RetryConfig
	maxFailures int
	resetAfter  time.Duration
	userAgent   string
}

// Option customizes a Client.
type Option func(*options)

// WithLogger routes the client's debug logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRetryConfig replaces the backoff derived from Config.MaxRetries.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(o *options) {
		o.retry = &cfg
	}
}

// WithCircuitBreaker sets how many consecutive transient failures open the
// breaker and how long it stays open.
func WithCircuitBreaker(maxFailures int, resetTimeout time.Duration) Option {
	return func(o *options) {
		o.maxFailures = maxFailures
		o.resetAfter = resetTimeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

func buildOptions(cfg Config, opts []Option) options {
	o := options{
		logger:    slog.Default(),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.retry == nil {
		rc := brainerrors.DefaultRetryConfig()
		rc.MaxRetries = max(cfg.MaxRetries, 0)
		o.retry = &rc
	}
	return o
}
