package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tempo-ui/tempo/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "tempo.json"

	// DefaultAddr is the default serve address.
	DefaultAddr = ":8080"

	// DefaultFlushCap is the default render pass cap per flush barrier.
	DefaultFlushCap = 25

	// DefaultLogLevel is the default log verbosity.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log output format.
	DefaultLogFormat = "text"

	// DefaultMetricsNamespace prefixes Prometheus metric names.
	DefaultMetricsNamespace = "tempo"
)

// Config represents the complete tempo.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Serve contains demo server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServeConfig contains demo server settings.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// FlushCap bounds render passes per flush barrier.
	FlushCap int `json:"flushCap,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled wires flush metrics into every session scheduler.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled opens one span per flush barrier.
	Enabled bool `json:"enabled,omitempty"`

	// TracerName names the tracer.
	TracerName string `json:"tracerName,omitempty"`
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	return &Config{
		Serve: ServeConfig{
			Addr:     DefaultAddr,
			FlushCap: DefaultFlushCap,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// Load reads tempo.json from dir. A missing file returns the defaults; a
// malformed file is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.configPath = path
			return cfg, nil
		}
		return nil, errors.New("T100").Wrap(err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("T101").Wrap(err).
			WithSuggestion("Check " + path + " for syntax errors")
	}
	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to the path it was loaded from, or to
// dir/tempo.json when it was never loaded.
func (c *Config) Save(dir string) error {
	path := c.configPath
	if path == "" {
		path = filepath.Join(dir, ConfigFileName)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Path returns the location the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills zero fields a partial tempo.json left unset.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Serve.Addr == "" {
		c.Serve.Addr = def.Serve.Addr
	}
	if c.Serve.FlushCap == 0 {
		c.Serve.FlushCap = def.Serve.FlushCap
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = def.Metrics.Namespace
	}
}

// Validate rejects out-of-range values.
func (c *Config) Validate() error {
	if c.Serve.FlushCap < 0 {
		return errors.New("T102").
			WithDetail(fmt.Sprintf("serve.flushCap must be positive, got %d", c.Serve.FlushCap))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("T102").
			WithDetail(fmt.Sprintf("log.level must be debug, info, warn, or error, got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("T102").
			WithDetail(fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	return nil
}
