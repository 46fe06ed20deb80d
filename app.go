package tempo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tempo-ui/tempo/pkg/instrument"
	"github.com/tempo-ui/tempo/pkg/live"
	"github.com/tempo-ui/tempo/pkg/sched"
)

// App serves a live.Page with the configured instrumentation wired into
// every session scheduler. It implements http.Handler.
//
//	app := tempo.NewApp(myPage, tempo.Config{
//	    Metrics: tempo.MetricsConfig{Enabled: true},
//	})
//	log.Fatal(app.Run())
type App struct {
	config Config
	server *live.Server
	logger *slog.Logger
}

// NewApp builds an application around page.
func NewApp(page live.Page, cfg Config) *App {
	cfg.applyDefaults()

	schedOpts := []sched.Option{sched.WithFlushCap(cfg.FlushCap)}
	if obs := buildObserver(cfg); obs != nil {
		schedOpts = append(schedOpts, sched.WithObserver(obs))
	}

	serverOpts := []live.ServerOption{
		live.WithLogger(cfg.Logger),
		live.WithSchedulerOptions(schedOpts...),
	}
	if cfg.Metrics.Registry != nil {
		serverOpts = append(serverOpts, live.WithMetricsRegistry(cfg.Metrics.Registry))
	}

	return &App{
		config: cfg,
		server: live.NewServer(page, serverOpts...),
		logger: cfg.Logger,
	}
}

// buildObserver assembles the observer stack from the config. Returns nil
// when nothing is enabled.
func buildObserver(cfg Config) sched.Observer {
	var observers []sched.Observer

	if cfg.Metrics.Enabled {
		promOpts := []instrument.PromOption{instrument.WithNamespace(cfg.Metrics.Namespace)}
		if cfg.Metrics.Registry != nil {
			promOpts = append(promOpts, instrument.WithRegistry(cfg.Metrics.Registry))
		}
		observers = append(observers, instrument.NewPrometheus(promOpts...))
	}
	if cfg.Tracing.Enabled {
		var otelOpts []instrument.OTelOption
		if cfg.Tracing.TracerName != "" {
			otelOpts = append(otelOpts, instrument.WithTracerName(cfg.Tracing.TracerName))
		}
		observers = append(observers, instrument.NewOTel(otelOpts...))
	}

	switch len(observers) {
	case 0:
		return nil
	case 1:
		return observers[0]
	default:
		return instrument.Multi(observers...)
	}
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.server.Handler().ServeHTTP(w, r)
}

// Run blocks serving on the configured address.
func (a *App) Run() error {
	return a.server.ListenAndServe(a.config.Addr)
}

// Shutdown gracefully stops the listener.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
