package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tempo-ui/tempo/pkg/middleware"
	"github.com/tempo-ui/tempo/pkg/sched"
)

// Server exposes a Page over HTTP: a WebSocket endpoint for event
// dispatch, a health check, and Prometheus metrics.
type Server struct {
	page       Page
	router     chi.Router
	upgrader   websocket.Upgrader
	logger     *slog.Logger
	schedOpts  []sched.Option
	registry   *prometheus.Registry
	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// WithSchedulerOptions passes extra options to every session scheduler,
// typically an instrument observer.
func WithSchedulerOptions(opts ...sched.Option) ServerOption {
	return func(s *Server) { s.schedOpts = append(s.schedOpts, opts...) }
}

// WithMetricsRegistry serves /metrics from reg instead of the default
// Prometheus registry.
func WithMetricsRegistry(reg *prometheus.Registry) ServerOption {
	return func(s *Server) { s.registry = reg }
}

// NewServer builds a server around page.
func NewServer(page Page, opts ...ServerOption) *Server {
	s := &Server{
		page:   page,
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Demo server: accept any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	promOpts := []middleware.MetricsOption{}
	if s.registry != nil {
		promOpts = append(promOpts, middleware.WithRegistry(s.registry))
	}
	r.Use(middleware.Prometheus(promOpts...))

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", s.handleHealth)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler, for mounting or for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks serving on addr until Shutdown or failure.
func (s *Server) ListenAndServe(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("live: listening", "addr", addr)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("live: upgrade failed", "error", err)
		return
	}

	middleware.RecordSessionOpen()
	defer middleware.RecordSessionClose()
	newSession(conn, s.page, s.schedOpts, s.logger).run()
}

// indexPage is a minimal client: a pre for output, an input for the
// action, a send button.
const indexPage = `<!DOCTYPE html>
<html>
<head><title>tempo live</title></head>
<body>
<pre id="out">connecting...</pre>
<input id="action" placeholder="action"> <input id="value" placeholder="value">
<button onclick="send()">send</button>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (e) => {
  const frame = JSON.parse(e.data);
  document.getElementById("out").textContent = frame.error ? frame.output + "\n[error] " + frame.error : frame.output;
};
function send() {
  ws.send(JSON.stringify({action: document.getElementById("action").value, value: document.getElementById("value").value}));
}
</script>
</body>
</html>
`
