package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/goran-ethernal/SubgraphValidator/internal/common"
	"github.com/goran-ethernal/SubgraphValidator/internal/logger"
	"github.com/goran-ethernal/SubgraphValidator/pkg/manifest"
)

// Config represents the complete configuration for the SubgraphValidator.
type Config struct {
	// Validation contains the manifest validation rules configuration
	Validation ValidationConfig `yaml:"validation" json:"validation" toml:"validation"`

	// Registry contains the configuration of the accepted manifest store
	Registry RegistryConfig `yaml:"registry" json:"registry" toml:"registry"`

	// API contains the REST API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// ValidationConfig configures how manifests are checked.
type ValidationConfig struct {
	// BlockHandlerLimit selects how block handlers are counted per data source
	// Options: "total" (any two block handlers are rejected), "call-filtered"
	// (one unfiltered and one call-filtered handler are allowed)
	BlockHandlerLimit string `yaml:"block_handler_limit" json:"block_handler_limit" toml:"block_handler_limit"`

	// SchemaCheck enables the JSON Schema structural check before decoding
	SchemaCheck *bool `yaml:"schema_check,omitempty" json:"schema_check,omitempty" toml:"schema_check,omitempty"`

	// Concurrency is the number of manifest files validated in parallel
	Concurrency int `yaml:"concurrency" json:"concurrency" toml:"concurrency"`
}

// ApplyDefaults sets default values for optional validation configuration fields.
func (v *ValidationConfig) ApplyDefaults() {
	if v.BlockHandlerLimit == "" {
		v.BlockHandlerLimit = string(manifest.DefaultBlockHandlerLimitPolicy)
	}
	if v.SchemaCheck == nil {
		enabled := true
		v.SchemaCheck = &enabled
	}
	if v.Concurrency == 0 {
		v.Concurrency = 4
	}
}

// Validate checks if the validation configuration is valid.
func (v *ValidationConfig) Validate() error {
	if _, err := manifest.ParseBlockHandlerLimitPolicy(v.BlockHandlerLimit); err != nil {
		return fmt.Errorf("validation.block_handler_limit: %w", err)
	}
	if v.Concurrency < 0 {
		return fmt.Errorf("validation.concurrency: must not be negative")
	}
	return nil
}

// Policy returns the parsed block handler limit policy.
func (v *ValidationConfig) Policy() manifest.BlockHandlerLimitPolicy {
	policy, err := manifest.ParseBlockHandlerLimitPolicy(v.BlockHandlerLimit)
	if err != nil {
		return manifest.DefaultBlockHandlerLimitPolicy
	}
	return policy
}

// SchemaCheckEnabled reports whether the structural schema check runs. Defaults to true.
func (v *ValidationConfig) SchemaCheckEnabled() bool {
	return v.SchemaCheck == nil || *v.SchemaCheck
}

// RegistryConfig configures the store of accepted manifests.
type RegistryConfig struct {
	// DB contains database configuration for the registry
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.Path == "" {
		d.Path = "subgraph-validator.db"
	}
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 2000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 4
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 2
	}
}

// Validate checks if the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("path is required")
	}

	journalModes := []string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}
	if d.JournalMode != "" && !slices.Contains(journalModes, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	syncModes := []string{"FULL", "NORMAL", "OFF"}
	if d.Synchronous != "" && !slices.Contains(syncModes, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}

	return nil
}

// APIConfig configures the REST API server.
type APIConfig struct {
	// Enabled controls whether the API server is started by "serve"
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// MaxBodyBytes limits the size of submitted manifests
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes" toml:"max_body_bytes"`

	ReadTimeout  common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`
	IdleTimeout  common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS contains cross-origin settings
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.MaxBodyBytes == 0 {
		a.MaxBodyBytes = 4 << 20 //nolint:mnd
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate checks if the API configuration is valid.
func (a *APIConfig) Validate() error {
	if a.Enabled && a.ListenAddress == "" {
		return fmt.Errorf("listen_address is required when the API is enabled")
	}
	if a.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must not be negative")
	}
	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - registrar: Manifest validation and registration
	//   - registry: Accepted manifest store
	//   - loader: Manifest decoding
	//   - api: REST API server
	//   - metrics: Metrics server
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// IsNil reports whether the config pointer is nil.
func (l *LoggingConfig) IsNil() bool {
	return l == nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// Default returns a configuration with every default applied, used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Validation.ApplyDefaults()
	c.Registry.DB.ApplyDefaults()

	if c.API != nil {
		c.API.ApplyDefaults()
	}

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Validation.Validate(); err != nil {
		return err
	}

	if err := c.Registry.DB.Validate(); err != nil {
		return fmt.Errorf("registry.db: %w", err)
	}

	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}
