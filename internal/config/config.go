// Package config loads brainai settings from defaults, YAML files, and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
	"github.com/Aman-CERP/brainai/internal/logging"
	"github.com/Aman-CERP/brainai/pkg/brain"
)

// CurrentVersion is the config schema version written by this build.
const CurrentVersion = 1

// Project config file names, in lookup order.
const (
	ProjectConfigName    = ".brainai.yaml"
	projectConfigAltName = ".brainai.yml"
)

// DefaultBaseURL is where a locally running Brain AI service listens.
const DefaultBaseURL = "http://localhost:8000"

// Config is the complete brainai configuration.
type Config struct {
	Version  int            `yaml:"version" json:"version"`
	Client   ClientConfig   `yaml:"client" json:"client"`
	Retry    RetrySettings  `yaml:"retry" json:"retry"`
	Circuit  CircuitConfig  `yaml:"circuit" json:"circuit"`
	Registry RegistryConfig `yaml:"registry" json:"registry"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// ClientConfig configures the connection to the Brain AI service and the
// tuning values sent with requests.
type ClientConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	APIKey  string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	// Timeout bounds each HTTP attempt, as a Go duration ("30s").
	Timeout             string  `yaml:"timeout" json:"timeout"`
	MemorySize          int     `yaml:"memory_size" json:"memory_size"`
	LearningRate        float64 `yaml:"learning_rate" json:"learning_rate"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarity_threshold"`
	MaxReasoningDepth   int     `yaml:"max_reasoning_depth" json:"max_reasoning_depth"`
	// VectorDimensions rejects vectors of other lengths locally (0 = off).
	VectorDimensions int  `yaml:"vector_dimensions" json:"vector_dimensions"`
	NormalizeVectors bool `yaml:"normalize_vectors" json:"normalize_vectors"`
	PoolSize         int  `yaml:"pool_size" json:"pool_size"`
}

// RetrySettings configures backoff for transient failures.
type RetrySettings struct {
	MaxRetries    int     `yaml:"max_retries" json:"max_retries"`
	InitialDelay  string  `yaml:"initial_delay" json:"initial_delay"`
	MaxDelay      string  `yaml:"max_delay" json:"max_delay"`
	Multiplier    float64 `yaml:"multiplier" json:"multiplier"`
	DisableJitter bool    `yaml:"disable_jitter" json:"disable_jitter"`
}

// CircuitConfig configures the client's circuit breaker.
type CircuitConfig struct {
	MaxFailures  int    `yaml:"max_failures" json:"max_failures"`
	ResetTimeout string `yaml:"reset_timeout" json:"reset_timeout"`
}

// RegistryConfig configures the named client registry.
type RegistryConfig struct {
	Capacity int `yaml:"capacity" json:"capacity"`
}

// LoggingConfig configures --debug file logging.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// NewConfig creates a Config holding the defaults.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Client: ClientConfig{
			BaseURL:             DefaultBaseURL,
			Timeout:             brain.DefaultTimeout.String(),
			MemorySize:          brain.DefaultMemorySize,
			LearningRate:        brain.DefaultLearningRate,
			SimilarityThreshold: brain.DefaultSimilarityThreshold,
			MaxReasoningDepth:   brain.DefaultMaxReasoningDepth,
			PoolSize:            brain.DefaultPoolSize,
		},
		Retry: RetrySettings{
			MaxRetries:   brain.DefaultMaxRetries,
			InitialDelay: "200ms",
			MaxDelay:     "5s",
			Multiplier:   2.0,
		},
		Circuit: CircuitConfig{
			MaxFailures:  5,
			ResetTimeout: "30s",
		},
		Registry: RegistryConfig{
			Capacity: brain.DefaultRegistryCapacity,
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// GetUserConfigPath returns the user configuration file path:
// $XDG_CONFIG_HOME/brainai/config.yaml, else ~/.config/brainai/config.yaml.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "brainai", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "brainai", "config.yaml")
	}
	return filepath.Join(home, ".config", "brainai", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists reports whether the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig reads only the user config file, without defaults.
// It returns nil, nil when the file does not exist.
func LoadUserConfig() (*Config, error) {
	path := GetUserConfigPath()
	if !fileExists(path) {
		return nil, nil
	}
	cfg, err := readYAML(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", path, err)
	}
	return cfg, nil
}

// LoadProjectConfig reads only the project config file in dir, without
// defaults. It returns nil, nil when there is none.
func LoadProjectConfig(dir string) (*Config, error) {
	path := ProjectConfigPath(dir)
	if path == "" {
		return nil, nil
	}
	return readYAML(path)
}

// ProjectConfigPath returns the project config file in dir, or "" if none exists.
// .brainai.yaml takes precedence over .brainai.yml.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectConfigName, projectConfigAltName} {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}
	return ""
}

// Load builds the effective configuration for dir. Later sources win:
//  1. Defaults
//  2. User config (~/.config/brainai/config.yaml)
//  3. Project config (.brainai.yaml in dir)
//  4. Environment variables (BRAINAI_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	userCfg, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}
	if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	projectCfg, err := LoadProjectConfig(dir)
	if err != nil {
		return nil, err
	}
	if projectCfg != nil {
		cfg.mergeWith(projectCfg)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, brainerrors.ConfigError("invalid configuration: "+err.Error(), err).
			WithSuggestion("Run 'brainai config show' to inspect the merged settings")
	}
	return cfg, nil
}

func readYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, brainerrors.New(brainerrors.ErrCodeConfigPermission,
				"cannot read config file "+path, err)
		}
		return nil, brainerrors.New(brainerrors.ErrCodeConfigNotFound,
			"cannot read config file "+path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, brainerrors.ConfigError("failed to parse config file "+path, err).
			WithDetail("path", path)
	}
	return &parsed, nil
}

// mergeWith copies the non-zero values of other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	// Client
	if other.Client.BaseURL != "" {
		c.Client.BaseURL = other.Client.BaseURL
	}
	if other.Client.APIKey != "" {
		c.Client.APIKey = other.Client.APIKey
	}
	if other.Client.Timeout != "" {
		c.Client.Timeout = other.Client.Timeout
	}
	if other.Client.MemorySize != 0 {
		c.Client.MemorySize = other.Client.MemorySize
	}
	if other.Client.LearningRate != 0 {
		c.Client.LearningRate = other.Client.LearningRate
	}
	if other.Client.SimilarityThreshold != 0 {
		c.Client.SimilarityThreshold = other.Client.SimilarityThreshold
	}
	if other.Client.MaxReasoningDepth != 0 {
		c.Client.MaxReasoningDepth = other.Client.MaxReasoningDepth
	}
	if other.Client.VectorDimensions != 0 {
		c.Client.VectorDimensions = other.Client.VectorDimensions
	}
	if other.Client.NormalizeVectors {
		c.Client.NormalizeVectors = true
	}
	if other.Client.PoolSize != 0 {
		c.Client.PoolSize = other.Client.PoolSize
	}

	// Retry
	if other.Retry.MaxRetries != 0 {
		c.Retry.MaxRetries = other.Retry.MaxRetries
	}
	if other.Retry.InitialDelay != "" {
		c.Retry.InitialDelay = other.Retry.InitialDelay
	}
	if other.Retry.MaxDelay != "" {
		c.Retry.MaxDelay = other.Retry.MaxDelay
	}
	if other.Retry.Multiplier != 0 {
		c.Retry.Multiplier = other.Retry.Multiplier
	}
	if other.Retry.DisableJitter {
		c.Retry.DisableJitter = true
	}

	// Circuit
	if other.Circuit.MaxFailures != 0 {
		c.Circuit.MaxFailures = other.Circuit.MaxFailures
	}
	if other.Circuit.ResetTimeout != "" {
		c.Circuit.ResetTimeout = other.Circuit.ResetTimeout
	}

	if other.Registry.Capacity != 0 {
		c.Registry.Capacity = other.Registry.Capacity
	}

	// Logging
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles != 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}
}

// applyEnvOverrides applies BRAINAI_* environment variables. A malformed
// numeric value is an error rather than being silently ignored.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("BRAINAI_BASE_URL"); v != "" {
		c.Client.BaseURL = v
	}
	if v := os.Getenv("BRAINAI_API_KEY"); v != "" {
		c.Client.APIKey = v
	}
	if v := os.Getenv("BRAINAI_TIMEOUT"); v != "" {
		c.Client.Timeout = v
	}
	if v := os.Getenv("BRAINAI_SIMILARITY_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return envError("BRAINAI_SIMILARITY_THRESHOLD", v, err)
		}
		c.Client.SimilarityThreshold = f
	}
	if v := os.Getenv("BRAINAI_LEARNING_RATE"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return envError("BRAINAI_LEARNING_RATE", v, err)
		}
		c.Client.LearningRate = f
	}
	if v := os.Getenv("BRAINAI_MAX_REASONING_DEPTH"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError("BRAINAI_MAX_REASONING_DEPTH", v, err)
		}
		c.Client.MaxReasoningDepth = n
	}
	if v := os.Getenv("BRAINAI_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

func envError(name, value string, err error) error {
	return brainerrors.ConfigError(fmt.Sprintf("%s=%q is not a valid number", name, value), err)
}

// Validate checks ranges and duration syntax.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Client.BaseURL) == "" {
		return fmt.Errorf("client.base_url must not be empty")
	}
	if c.Client.SimilarityThreshold < 0 || c.Client.SimilarityThreshold > 1 {
		return fmt.Errorf("client.similarity_threshold must be between 0 and 1, got %g", c.Client.SimilarityThreshold)
	}
	if c.Client.LearningRate < 0 || c.Client.LearningRate > 1 {
		return fmt.Errorf("client.learning_rate must be between 0 and 1, got %g", c.Client.LearningRate)
	}
	if c.Client.MaxReasoningDepth < 0 {
		return fmt.Errorf("client.max_reasoning_depth must be non-negative, got %d", c.Client.MaxReasoningDepth)
	}
	if c.Client.MemorySize < 0 {
		return fmt.Errorf("client.memory_size must be non-negative, got %d", c.Client.MemorySize)
	}
	if c.Client.VectorDimensions < 0 {
		return fmt.Errorf("client.vector_dimensions must be non-negative, got %d", c.Client.VectorDimensions)
	}
	if c.Retry.MaxRetries < -1 {
		return fmt.Errorf("retry.max_retries must be -1 (disabled) or more, got %d", c.Retry.MaxRetries)
	}
	if c.Retry.Multiplier != 0 && c.Retry.Multiplier < 1 {
		return fmt.Errorf("retry.multiplier must be at least 1, got %g", c.Retry.Multiplier)
	}
	if c.Registry.Capacity < 0 {
		return fmt.Errorf("registry.capacity must be non-negative, got %d", c.Registry.Capacity)
	}

	durations := map[string]string{
		"client.timeout":        c.Client.Timeout,
		"retry.initial_delay":   c.Retry.InitialDelay,
		"retry.max_delay":       c.Retry.MaxDelay,
		"circuit.reset_timeout": c.Circuit.ResetTimeout,
	}
	for name, value := range durations {
		if _, err := parseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}
	return nil
}

// parseDuration accepts "" (unset) and Go duration strings.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q must not be negative", s)
	}
	return d, nil
}

// ClientConfig converts the client section to a brain.Config.
func (c *Config) ClientConfig() brain.Config {
	timeout, _ := parseDuration(c.Client.Timeout)
	return brain.Config{
		BaseURL:             c.Client.BaseURL,
		APIKey:              c.Client.APIKey,
		Timeout:             timeout,
		MemorySize:          c.Client.MemorySize,
		LearningRate:        c.Client.LearningRate,
		SimilarityThreshold: c.Client.SimilarityThreshold,
		MaxReasoningDepth:   c.Client.MaxReasoningDepth,
		VectorDimensions:    c.Client.VectorDimensions,
		NormalizeVectors:    c.Client.NormalizeVectors,
		MaxRetries:          c.Retry.MaxRetries,
		PoolSize:            c.Client.PoolSize,
	}
}

// RetryConfig converts the retry section. Only transient failures are retried.
func (c *Config) RetryConfig() brain.RetryConfig {
	rc := brain.DefaultRetryConfig()
	rc.MaxRetries = max(c.Retry.MaxRetries, 0)
	if d, _ := parseDuration(c.Retry.InitialDelay); d > 0 {
		rc.InitialDelay = d
	}
	if d, _ := parseDuration(c.Retry.MaxDelay); d > 0 {
		rc.MaxDelay = d
	}
	if c.Retry.Multiplier >= 1 {
		rc.Multiplier = c.Retry.Multiplier
	}
	rc.Jitter = !c.Retry.DisableJitter
	return rc
}

// ClientOptions returns the brain.Client options implied by the config.
func (c *Config) ClientOptions() []brain.Option {
	reset, _ := parseDuration(c.Circuit.ResetTimeout)
	return []brain.Option{
		brain.WithRetryConfig(c.RetryConfig()),
		brain.WithCircuitBreaker(c.Circuit.MaxFailures, reset),
	}
}

// LoggingConfig returns the logging setup for --debug runs.
func (c *Config) LoggingConfig() logging.Config {
	lc := logging.DebugConfig()
	lc.MaxSizeMB = c.Logging.MaxSizeMB
	lc.MaxFiles = c.Logging.MaxFiles
	return lc
}

// Redacted returns a copy safe to print: the API key is masked.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Client.APIKey != "" {
		out.Client.APIKey = "****"
	}
	return &out
}

// FindProjectRoot walks up from startDir to the nearest directory holding
// .git or a project config. It returns startDir (absolute) if none is found.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	dir := absDir
	for {
		if dirExists(filepath.Join(dir, ".git")) || ProjectConfigPath(dir) != "" {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return absDir, nil
		}
		dir = parent
	}
}

// MergeNewDefaults fills settings added since the file was written and
// returns their dotted names.
func (c *Config) MergeNewDefaults() []string {
	defaults := NewConfig()
	var added []string

	if c.Circuit.MaxFailures == 0 {
		c.Circuit.MaxFailures = defaults.Circuit.MaxFailures
		added = append(added, "circuit.max_failures")
	}
	if c.Circuit.ResetTimeout == "" {
		c.Circuit.ResetTimeout = defaults.Circuit.ResetTimeout
		added = append(added, "circuit.reset_timeout")
	}
	if c.Registry.Capacity == 0 {
		c.Registry.Capacity = defaults.Registry.Capacity
		added = append(added, "registry.capacity")
	}
	if c.Client.PoolSize == 0 {
		c.Client.PoolSize = defaults.Client.PoolSize
		added = append(added, "client.pool_size")
	}
	if c.Version < CurrentVersion {
		c.Version = CurrentVersion
		added = append(added, "version")
	}
	return added
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
