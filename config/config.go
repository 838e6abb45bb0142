package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/geometry"
	"github.com/c360/semsparql/vocabulary"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPARQLEXPR"

// Log levels and formats accepted by LoggingConfig
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"json", "text"}
)

// Config represents the complete engine configuration
type Config struct {
	Namespaces []vocabulary.Namespace `json:"namespaces,omitempty"`
	Evaluator  EvaluatorConfig        `json:"evaluator"`
	Metrics    MetricsConfig          `json:"metrics"`
	Logging    LoggingConfig          `json:"logging"`
}

// EvaluatorConfig configures expression evaluation
type EvaluatorConfig struct {
	// RandSeed makes RAND reproducible when set.
	RandSeed          *uint64 `json:"rand_seed,omitempty"`
	BufferSegments    int     `json:"buffer_segments"`
	GeometryCacheSize int     `json:"geometry_cache_size"`
}

// MetricsConfig enables Prometheus metrics
type MetricsConfig struct {
	Enabled bool `json:"enabled"`
}

// LoggingConfig selects the slog handler
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Evaluator: EvaluatorConfig{
			BufferSegments:    geometry.DefaultSegments,
			GeometryCacheSize: geometry.DefaultCacheSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Namespaces))
	for i, n := range c.Namespaces {
		if err := n.Validate(); err != nil {
			return invalid(fmt.Errorf("namespaces[%d]: %w", i, err), "Validate")
		}
		if seen[n.Prefix] {
			return invalid(fmt.Errorf("namespaces[%d]: duplicate prefix %q", i, n.Prefix), "Validate")
		}
		seen[n.Prefix] = true
	}

	if c.Evaluator.BufferSegments < geometry.MinSegments {
		return invalid(fmt.Errorf("evaluator.buffer_segments must be at least %d, got %d",
			geometry.MinSegments, c.Evaluator.BufferSegments), "Validate")
	}
	if c.Evaluator.GeometryCacheSize < 0 {
		return invalid(fmt.Errorf("evaluator.geometry_cache_size must not be negative, got %d",
			c.Evaluator.GeometryCacheSize), "Validate")
	}

	if !contains(LogLevels, c.Logging.Level) {
		return invalid(fmt.Errorf("logging.level %q is not one of %v", c.Logging.Level, LogLevels), "Validate")
	}
	if !contains(LogFormats, c.Logging.Format) {
		return invalid(fmt.Errorf("logging.format %q is not one of %v", c.Logging.Format, LogFormats), "Validate")
	}
	return nil
}

// NamespaceTable returns the default prefixes with the configured ones
// merged over them.
func (c *Config) NamespaceTable() (*vocabulary.Namespaces, error) {
	for i, n := range c.Namespaces {
		if err := n.Validate(); err != nil {
			return nil, invalid(fmt.Errorf("namespaces[%d]: %w", i, err), "NamespaceTable")
		}
	}
	return vocabulary.DefaultNamespaces().With(c.Namespaces...), nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}

	data, err := json.Marshal(c)
	if err != nil {
		copied := *c
		return &copied
	}

	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}
	return &clone
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// SafeConfig provides thread-safe access to configuration
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a new thread-safe config wrapper
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = Default()
	}
	return &SafeConfig{config: cfg}
}

// Get returns a deep copy of the current configuration
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically replaces the configuration after validation
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return errors.WrapInvalid(fmt.Errorf("%w: config cannot be nil", errors.ErrInvalidConfig),
			"SafeConfig", "Update", "nil check")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{envPrefix: EnvPrefix}
}

// AddLayer adds a configuration file layer. Later layers override earlier ones.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load merges every layer over the defaults, applies environment overrides
// and validates the result when validation is enabled.
func (l *Loader) Load() (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	for _, path := range l.layers {
		raw, err := loadRaw(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		if l.validation {
			if err := validateSchema(raw); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		merged = deepMergeMaps(merged, raw)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	l.applyEnvOverrides(cfg)

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Load reads, merges and validates a single configuration file.
func Load(path string) (*Config, error) {
	loader := NewLoader()
	loader.EnableValidation(true)
	return loader.LoadFile(path)
}

// Decode parses a JSON or YAML document without touching the filesystem.
func Decode(data []byte, yamlFormat bool) (*Config, error) {
	raw, err := decodeRaw(data, yamlFormat)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}
	base, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	cfg, err := fromMap(deepMergeMaps(base, raw))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadRaw(path string) (map[string]any, error) {
	data, err := safeReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeRaw(data, true)
	default:
		return decodeRaw(data, false)
	}
}

// decodeRaw reads a document into a generic map. YAML goes through a JSON
// round trip so both formats reach the schema with identical types.
func decodeRaw(data []byte, yamlFormat bool) (map[string]any, error) {
	if yamlFormat {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, invalid(fmt.Errorf("%w: %v", errors.ErrParsingFailed, err), "Decode")
		}
		if doc == nil {
			return map[string]any{}, nil
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, invalid(fmt.Errorf("%w: %v", errors.ErrParsingFailed, err), "Decode")
		}
		data = converted
	}

	if err := validateJSONDepth(data); err != nil {
		return nil, invalid(fmt.Errorf("invalid JSON structure: %w", err), "Decode")
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalid(fmt.Errorf("%w: %v", errors.ErrParsingFailed, err), "Decode")
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func toMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapFatal(err, "config", "Load", "marshal defaults")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapFatal(err, "config", "Load", "unmarshal defaults")
	}
	return m, nil
}

func fromMap(m map[string]any) (*Config, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, invalid(err, "Load")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, invalid(fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err), "Load")
	}
	return &cfg, nil
}

// deepMergeMaps recursively merges two maps, with override taking precedence
func deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		if v == nil {
			continue
		}
		if baseMap, ok := base[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				result[k] = deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}
	return result
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if val := os.Getenv(l.envPrefix + "_LOG_LEVEL"); val != "" && validateEnvVar(l.envPrefix+"_LOG_LEVEL", val) == nil {
		cfg.Logging.Level = strings.ToLower(val)
	}
	if val := os.Getenv(l.envPrefix + "_LOG_FORMAT"); val != "" && validateEnvVar(l.envPrefix+"_LOG_FORMAT", val) == nil {
		cfg.Logging.Format = strings.ToLower(val)
	}
	if val := os.Getenv(l.envPrefix + "_METRICS_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if val := os.Getenv(l.envPrefix + "_RAND_SEED"); val != "" {
		if seed, err := strconv.ParseUint(val, 10, 64); err == nil {
			cfg.Evaluator.RandSeed = &seed
		}
	}
}

func invalid(err error, method string) error {
	return errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err), "config", method, "configuration validation")
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
