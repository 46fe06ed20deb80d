package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tempo-ui/tempo/pkg/sched"
)

// PromConfig configures the Prometheus observer.
type PromConfig struct {
	// Namespace is the metrics namespace (default: "tempo").
	Namespace string

	// Subsystem is the metrics subsystem (default: "sched").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// PromOption configures the Prometheus observer.
type PromOption func(*PromConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) PromOption {
	return func(c *PromConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) PromOption {
	return func(c *PromConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) PromOption {
	return func(c *PromConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the flush duration histogram buckets.
func WithBuckets(buckets []float64) PromOption {
	return func(c *PromConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) PromOption {
	return func(c *PromConfig) { c.Registry = registry }
}

func defaultPromConfig() PromConfig {
	return PromConfig{
		Namespace: "tempo",
		Subsystem: "sched",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// promObserver implements sched.Observer on Prometheus metrics.
type promObserver struct {
	flushesTotal  *prometheus.CounterVec
	flushDuration *prometheus.HistogramVec
	renderPasses  prometheus.Counter
	rendered      prometheus.Counter
	effectRuns    prometheus.Counter
}

// NewPrometheus creates an observer exporting scheduler metrics.
func NewPrometheus(opts ...PromOption) sched.Observer {
	cfg := defaultPromConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &promObserver{
		flushesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flushes_total",
			Help:        "Flush barrier invocations by kind and result.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"kind", "result"}),
		flushDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Wall-clock duration of flush barriers.",
			Buckets:     cfg.Buckets,
			ConstLabels: cfg.ConstLabels,
		}, []string{"kind"}),
		renderPasses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "render_passes_total",
			Help:        "Render passes executed.",
			ConstLabels: cfg.ConstLabels,
		}),
		rendered: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "components_rendered_total",
			Help:        "Component renders across all passes.",
			ConstLabels: cfg.ConstLabels,
		}),
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Effects executed after committed renders.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

func (p *promObserver) FlushStart(sched.FlushKind) {}

func (p *promObserver) FlushDone(kind sched.FlushKind, passes int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.flushesTotal.WithLabelValues(string(kind), result).Inc()
	p.flushDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

func (p *promObserver) RenderPass(components int) {
	p.renderPasses.Inc()
	p.rendered.Add(float64(components))
}

func (p *promObserver) EffectRun() {
	p.effectRuns.Inc()
}
