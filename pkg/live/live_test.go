package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/tempo-ui/tempo/pkg/sched"
	"github.com/tempo-ui/tempo/pkg/widgets"
)

func counterPage(s *sched.Scheduler) (*sched.Component, map[string]Action) {
	counter := widgets.NewCounter(s)
	return counter.Component(), map[string]Action{
		"increment": func(string) { counter.Increment() },
		"reset":     func(string) { counter.Reset() },
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewServer(counterPage, WithLogger(logger)).Handler())
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return srv, conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var frame Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return frame
}

func sendEvent(t *testing.T, conn *websocket.Conn, event Event) {
	t.Helper()

	if err := conn.WriteJSON(event); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSessionSendsMountOutputFirst(t *testing.T) {
	_, conn := newTestServer(t)

	frame := readFrame(t, conn)
	if frame.Output != "count: 0 | label: 0" {
		t.Errorf("unexpected mount output %q", frame.Output)
	}
	if frame.Error != "" {
		t.Errorf("unexpected error %q", frame.Error)
	}
}

func TestDispatchCommitsBeforeReply(t *testing.T) {
	_, conn := newTestServer(t)
	readFrame(t, conn)

	sendEvent(t, conn, Event{Action: "increment"})
	if got := readFrame(t, conn).Output; got != "count: 1 | label: 1" {
		t.Errorf("after increment got %q", got)
	}

	sendEvent(t, conn, Event{Action: "increment"})
	if got := readFrame(t, conn).Output; got != "count: 2 | label: 2" {
		t.Errorf("after second increment got %q", got)
	}

	sendEvent(t, conn, Event{Action: "reset"})
	if got := readFrame(t, conn).Output; got != "count: 0 | label: 0" {
		t.Errorf("after reset got %q", got)
	}
}

func TestUnknownActionKeepsSessionAlive(t *testing.T) {
	_, conn := newTestServer(t)
	readFrame(t, conn)

	sendEvent(t, conn, Event{Action: "explode"})
	frame := readFrame(t, conn)
	if !strings.Contains(frame.Error, "unknown action") {
		t.Errorf("expected unknown action error, got %q", frame.Error)
	}
	if frame.Output != "count: 0 | label: 0" {
		t.Errorf("output should be unchanged, got %q", frame.Output)
	}

	sendEvent(t, conn, Event{Action: "increment"})
	if got := readFrame(t, conn).Output; got != "count: 1 | label: 1" {
		t.Errorf("session should keep dispatching, got %q", got)
	}
}

func TestBadFrameReportsError(t *testing.T) {
	_, conn := newTestServer(t)
	readFrame(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if frame := readFrame(t, conn); frame.Error != "bad event frame" {
		t.Errorf("expected bad frame error, got %q", frame.Error)
	}
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status %d", resp.StatusCode)
	}
}
