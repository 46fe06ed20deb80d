package live

import (
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/tempo-ui/tempo/pkg/loop"
	"github.com/tempo-ui/tempo/pkg/sched"
)

// Event is an incoming client frame.
type Event struct {
	// Action names a handler registered by the page.
	Action string `json:"action"`

	// Value is an optional argument (query text, todo index, ...).
	Value string `json:"value,omitempty"`
}

// Frame is an outgoing server frame carrying committed output.
type Frame struct {
	Output string `json:"output"`

	// Error is set when a dispatch failed (unknown action, overflow).
	Error string `json:"error,omitempty"`
}

// Action handles one client event. It runs inside a FlushSync, so state
// writes it performs commit before the reply frame is built.
type Action func(value string)

// Page assembles the widgets for one session and returns the root
// component plus the actions the client may invoke.
type Page func(s *sched.Scheduler) (root *sched.Component, actions map[string]Action)

var sessionIDCounter atomic.Uint64

// Session owns one scheduler per WebSocket connection.
type Session struct {
	id      uint64
	conn    *websocket.Conn
	sched   *sched.Scheduler
	root    *sched.Component
	actions map[string]Action
	logger  *slog.Logger
}

// newSession mounts the page on a fresh scheduler bound to a system-clock
// loop.
func newSession(conn *websocket.Conn, page Page, opts []sched.Option, logger *slog.Logger) *Session {
	s := sched.New(append([]sched.Option{
		sched.WithLoop(loop.New(nil)),
		sched.WithLogger(logger),
	}, opts...)...)

	root, actions := page(s)

	return &Session{
		id:      sessionIDCounter.Add(1),
		conn:    conn,
		sched:   s,
		root:    root,
		actions: actions,
		logger:  logger,
	}
}

// run reads event frames until the connection drops, dispatching each
// through a synchronous flush and replying with the committed output.
func (s *Session) run() {
	defer s.close()

	// Initial frame: mount output is committed before the first event.
	if err := s.send(Frame{Output: s.root.Output()}); err != nil {
		return
	}

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("live: read failed", "session", s.id, "error", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(msg, &event); err != nil {
			s.logger.Warn("live: bad event frame", "session", s.id, "error", err)
			if err := s.send(Frame{Error: "bad event frame"}); err != nil {
				return
			}
			continue
		}

		if err := s.send(s.dispatch(event)); err != nil {
			return
		}
	}
}

// dispatch runs one event through a flush and builds the reply.
func (s *Session) dispatch(event Event) Frame {
	action, ok := s.actions[event.Action]
	if !ok {
		s.logger.Warn("live: unknown action", "session", s.id, "action", event.Action)
		return Frame{Output: s.root.Output(), Error: "unknown action: " + event.Action}
	}

	if err := s.sched.FlushSync(func() { action(event.Value) }); err != nil {
		s.logger.Error("live: flush failed", "session", s.id, "action", event.Action, "error", err)
		return Frame{Output: s.root.Output(), Error: err.Error()}
	}

	return Frame{Output: s.root.Output()}
}

func (s *Session) send(frame Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.logger.Warn("live: write failed", "session", s.id, "error", err)
		return err
	}
	return nil
}

func (s *Session) close() {
	s.sched.Close()
	s.conn.Close()
	s.logger.Debug("live: session closed", "session", s.id)
}
