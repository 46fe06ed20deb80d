package instrument

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tempo-ui/tempo/pkg/sched"
)

// defaultTracerName is the tracer used when none is configured.
const defaultTracerName = "tempo"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "tempo").
	TracerName string

	// Attributes are appended to every flush span.
	Attributes []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) { c.TracerName = name }
}

// WithAttributes appends constant attributes to every flush span.
func WithAttributes(attrs ...attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) { c.Attributes = append(c.Attributes, attrs...) }
}

// otelObserver opens one span per flush barrier. Flush starts and ends pair
// up on the flushing goroutine, but separate schedulers may share an
// observer, so open spans are kept on a small stack.
type otelObserver struct {
	cfg OTelConfig

	mu    sync.Mutex
	spans []trace.Span
}

// NewOTel creates an observer tracing flush barriers through the global
// tracer provider. Configure the provider in main() before wiring this in.
func NewOTel(opts ...OTelOption) sched.Observer {
	cfg := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)

	return &otelObserver{cfg: cfg}
}

func (o *otelObserver) FlushStart(kind sched.FlushKind) {
	_, span := o.cfg.tracer.Start(
		context.Background(),
		"tempo.flush."+string(kind),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(o.cfg.Attributes...),
	)

	o.mu.Lock()
	o.spans = append(o.spans, span)
	o.mu.Unlock()
}

func (o *otelObserver) FlushDone(kind sched.FlushKind, passes int, d time.Duration, err error) {
	o.mu.Lock()
	if len(o.spans) == 0 {
		o.mu.Unlock()
		return
	}
	span := o.spans[len(o.spans)-1]
	o.spans = o.spans[:len(o.spans)-1]
	o.mu.Unlock()

	span.SetAttributes(
		attribute.Int("tempo.render_passes", passes),
		attribute.Int64("tempo.flush_duration_us", d.Microseconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (o *otelObserver) RenderPass(int) {}

func (o *otelObserver) EffectRun() {}
