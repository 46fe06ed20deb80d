package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	tempo "github.com/tempo-ui/tempo"
	"github.com/tempo-ui/tempo/internal/config"
	temperrors "github.com/tempo-ui/tempo/internal/errors"
	"github.com/tempo-ui/tempo/pkg/live"
	"github.com/tempo-ui/tempo/pkg/sched"
	"github.com/tempo-ui/tempo/pkg/widgets"
)

func serveCmd() *cobra.Command {
	var (
		addr string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long: `Run the built-in demo server.

Widgets are served over a WebSocket: the browser sends JSON event
frames and receives the committed output after each flush. Configure
the server through tempo.json or flags; flags win.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}

			logger := buildLogger(cfg.Log)
			app := tempo.NewApp(demoPage, tempo.Config{
				Addr:     cfg.Serve.Addr,
				FlushCap: cfg.Serve.FlushCap,
				Logger:   logger,
				Metrics: tempo.MetricsConfig{
					Enabled:   cfg.Metrics.Enabled,
					Namespace: cfg.Metrics.Namespace,
				},
				Tracing: tempo.TracingConfig{
					Enabled:    cfg.Tracing.Enabled,
					TracerName: cfg.Tracing.TracerName,
				},
			})

			printBanner()
			info("Serving on http://localhost%s", normalizeAddr(cfg.Serve.Addr))
			info("Press Ctrl+C to stop")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- app.Run() }()

			select {
			case err := <-errCh:
				if err != nil {
					return temperrors.New("T150").Wrap(err).
						WithSuggestion("Is " + cfg.Serve.Addr + " already in use?")
				}
				return nil
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return app.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides tempo.json)")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory containing tempo.json")

	return cmd
}

// demoPage wires every built-in widget behind named actions. The root
// output is the counter; the other widgets answer through their own
// actions' side effects on shared state.
func demoPage(s *sched.Scheduler) (*sched.Component, map[string]live.Action) {
	counter := widgets.NewCounter(s)
	todos := widgets.NewTodoList(s)

	return counter.Component(), map[string]live.Action{
		"increment": func(string) { counter.Increment() },
		"reset":     func(string) { counter.Reset() },
		"todo-add":  func(v string) { todos.Add(v) },
		"todo-toggle": func(v string) {
			if i, err := strconv.Atoi(v); err == nil {
				todos.Toggle(i)
			}
		},
	}
}

// buildLogger translates the log config into an slog handler.
func buildLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// normalizeAddr makes ":8080" readable in the startup message.
func normalizeAddr(addr string) string {
	if addr == "" {
		return ":8080"
	}
	return addr
}
