// Package schedtest provides testing helpers for scheduler-driven
// components.
//
// The harness wires a virtual clock, an event loop, and a scheduler
// together, so tests control time explicitly and never sleep for real:
//
//	func TestCounter(t *testing.T) {
//	    h := schedtest.New(t)
//	    c := widgets.NewCounter(h.Sched)
//	    h.Sched.FlushSync(c.Increment)
//	    schedtest.ExpectContains(t, c, "count: 1")
//	}
package schedtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tempo-ui/tempo/pkg/loop"
	"github.com/tempo-ui/tempo/pkg/sched"
)

// Renderer is anything with observable committed output. Both
// *sched.Component and the widget types satisfy it.
type Renderer interface {
	Output() string
}

// Harness bundles a virtual clock, its loop, and a scheduler. The scheduler
// is closed automatically when the test finishes, so timers scheduled by a
// test cannot leak state writes into the next one.
type Harness struct {
	Clock *loop.VirtualClock
	Loop  *loop.Loop
	Sched *sched.Scheduler
}

// New creates a Harness. Extra scheduler options are appended after the
// harness defaults, so a test may override the flush cap or attach an
// observer.
func New(t *testing.T, opts ...sched.Option) *Harness {
	t.Helper()

	clock := loop.NewVirtualClock()
	l := loop.New(clock)

	s := sched.New(append([]sched.Option{sched.WithLoop(l)}, opts...)...)
	t.Cleanup(s.Close)

	return &Harness{Clock: clock, Loop: l, Sched: s}
}

// Contains builds a WaitFor predicate asserting the output contains want.
//
//	err := h.Sched.WaitFor(schedtest.Contains(box, "results:"))
func Contains(r Renderer, want string) func() error {
	return func() error {
		if out := r.Output(); !strings.Contains(out, want) {
			return fmt.Errorf("output %q does not contain %q", out, want)
		}
		return nil
	}
}

// ExpectOutput asserts the committed output equals want.
func ExpectOutput(t *testing.T, r Renderer, want string) {
	t.Helper()
	if got := r.Output(); got != want {
		t.Errorf("expected output %q, got %q", want, got)
	}
}

// ExpectContains asserts the committed output contains want.
func ExpectContains(t *testing.T, r Renderer, want string) {
	t.Helper()
	if got := r.Output(); !strings.Contains(got, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, got)
	}
}

// ExpectNotContains asserts the committed output does not contain unwanted.
func ExpectNotContains(t *testing.T, r Renderer, unwanted string) {
	t.Helper()
	if got := r.Output(); strings.Contains(got, unwanted) {
		t.Errorf("expected output to NOT contain %q, got:\n%s", unwanted, got)
	}
}
