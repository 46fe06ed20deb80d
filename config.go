package tempo

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures an App.
type Config struct {
	// Addr is the listen address for Run (default ":8080").
	Addr string

	// FlushCap bounds render passes per flush barrier (default
	// DefaultFlushCap).
	FlushCap int

	// Logger is used by the server and every session scheduler.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics configures Prometheus instrumentation.
	Metrics MetricsConfig

	// Tracing configures OpenTelemetry flush spans.
	Tracing TracingConfig
}

// MetricsConfig configures the Prometheus observer and /metrics endpoint.
type MetricsConfig struct {
	// Enabled wires a Prometheus observer into every session scheduler.
	Enabled bool

	// Namespace prefixes every metric (default "tempo").
	Namespace string

	// Registry receives the collectors and backs /metrics. Defaults to
	// the process-wide default registry.
	Registry *prometheus.Registry
}

// TracingConfig configures the OpenTelemetry observer. Spans go through
// the global tracer provider; configure that in main() first.
type TracingConfig struct {
	// Enabled opens one span per flush barrier.
	Enabled bool

	// TracerName names the tracer (default "tempo").
	TracerName string
}

// DefaultConfig returns the configuration Run uses when fields are zero.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		FlushCap: DefaultFlushCap,
		Metrics:  MetricsConfig{Namespace: "tempo"},
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.FlushCap <= 0 {
		c.FlushCap = def.FlushCap
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = def.Metrics.Namespace
	}
}
