package sched

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/tempo-ui/tempo/pkg/loop"
)

func newTestScheduler(t *testing.T) (*Scheduler, *loop.VirtualClock) {
	t.Helper()
	clock := loop.NewVirtualClock()
	s := New(
		WithLoop(loop.New(clock)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	t.Cleanup(s.Close)
	return s, clock
}

func TestMountRendersImmediately(t *testing.T) {
	s, _ := newTestScheduler(t)

	effectRan := false
	c := s.Mount(func(ctx *Ctx) string {
		v, _ := UseState(ctx, "hello")
		UseEffect(ctx, func() Cleanup {
			effectRan = true
			return nil
		}, Once())
		return v
	})

	if c.Output() != "hello" {
		t.Errorf("expected initial output committed at mount, got %q", c.Output())
	}
	if !effectRan {
		t.Error("mount effect did not run before Mount returned")
	}
}

func TestSetterIsStaleUntilFlush(t *testing.T) {
	s, _ := newTestScheduler(t)

	var set *Setter[int]
	c := s.Mount(func(ctx *Ctx) string {
		n, setter := UseState(ctx, 0)
		set = setter
		return fmt.Sprintf("%d", n)
	})

	// A setter call outside any flush is recorded but produces no
	// observable output change.
	set.Set(5)
	if c.Output() != "0" {
		t.Errorf("expected stale output 0 before flush, got %q", c.Output())
	}

	if err := s.FlushSync(nil); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if c.Output() != "5" {
		t.Errorf("expected 5 after flush, got %q", c.Output())
	}
}

func TestSameFrameSettersCoalesce(t *testing.T) {
	s, _ := newTestScheduler(t)

	renders := 0
	var set *Setter[int]
	c := s.Mount(func(ctx *Ctx) string {
		renders++
		n, setter := UseState(ctx, 0)
		set = setter
		return fmt.Sprintf("%d", n)
	})

	before := renders
	err := s.FlushSync(func() {
		// Updater functions see the latest pending value, so the
		// increments stack instead of clobbering each other.
		set.Update(func(n int) int { return n + 1 })
		set.Update(func(n int) int { return n + 1 })
		set.Set(10)
		set.Update(func(n int) int { return n + 1 })
	})
	if err != nil {
		t.Fatalf("flush: %v", err)
	}

	if got := renders - before; got != 1 {
		t.Errorf("expected exactly 1 render pass for same-frame setters, got %d", got)
	}
	if c.Output() != "11" {
		t.Errorf("expected coalesced value 11, got %q", c.Output())
	}
}

func TestEqualValueDoesNotSchedule(t *testing.T) {
	s, _ := newTestScheduler(t)

	renders := 0
	var set *Setter[int]
	s.Mount(func(ctx *Ctx) string {
		renders++
		n, setter := UseState(ctx, 7)
		set = setter
		return fmt.Sprintf("%d", n)
	})

	before := renders
	if err := s.FlushSync(func() { set.Set(7) }); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if renders != before {
		t.Errorf("setting an equal value rendered %d extra times", renders-before)
	}
}

func TestTwoComponentsRenderInMountOrder(t *testing.T) {
	s, _ := newTestScheduler(t)

	var order []string
	var setA, setB *Setter[int]

	s.Mount(func(ctx *Ctx) string {
		n, setter := UseState(ctx, 0)
		setA = setter
		if n > 0 {
			order = append(order, "a")
		}
		return "a"
	})
	s.Mount(func(ctx *Ctx) string {
		n, setter := UseState(ctx, 0)
		setB = setter
		if n > 0 {
			order = append(order, "b")
		}
		return "b"
	})

	// Enqueue in reverse; the render pass still visits mount order.
	err := s.FlushSync(func() {
		setB.Set(1)
		setA.Set(1)
	})
	if err != nil {
		t.Fatalf("flush: %v", err)
	}

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("expected mount-order rendering [a b], got %v", order)
	}
}

func TestEffectPolicies(t *testing.T) {
	s, _ := newTestScheduler(t)

	always, once, onChange := 0, 0, 0
	var setN, setOther *Setter[int]

	s.Mount(func(ctx *Ctx) string {
		n, sn := UseState(ctx, 0)
		_, so := UseState(ctx, 0)
		setN, setOther = sn, so

		UseEffect(ctx, func() Cleanup { always++; return nil }, Always())
		UseEffect(ctx, func() Cleanup { once++; return nil }, Once())
		UseEffect(ctx, func() Cleanup { onChange++; return nil }, OnChange(n))
		return "x"
	})

	// Mount: every policy runs its first time.
	if always != 1 || once != 1 || onChange != 1 {
		t.Fatalf("after mount: always=%d once=%d onChange=%d", always, once, onChange)
	}

	// A render that leaves n unchanged re-runs only Always.
	if err := s.FlushSync(func() { setOther.Set(1) }); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if always != 2 || once != 1 || onChange != 1 {
		t.Errorf("after unrelated change: always=%d once=%d onChange=%d", always, once, onChange)
	}

	// Changing n re-runs Always and OnChange, never Once.
	if err := s.FlushSync(func() { setN.Set(5) }); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if always != 3 || once != 1 || onChange != 2 {
		t.Errorf("after dep change: always=%d once=%d onChange=%d", always, once, onChange)
	}
}

func TestEffectCleanupRunsBeforeRerunAndAtDispose(t *testing.T) {
	s, _ := newTestScheduler(t)

	var log []string
	var set *Setter[int]

	c := s.Mount(func(ctx *Ctx) string {
		n, setter := UseState(ctx, 0)
		set = setter
		UseEffect(ctx, func() Cleanup {
			log = append(log, fmt.Sprintf("run %d", n))
			return func() { log = append(log, fmt.Sprintf("cleanup %d", n)) }
		}, OnChange(n))
		return "x"
	})

	if err := s.FlushSync(func() { set.Set(1) }); err != nil {
		t.Fatalf("flush: %v", err)
	}
	c.Dispose()

	want := []string{"run 0", "cleanup 0", "run 1", "cleanup 1"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], log[i])
		}
	}
}

func TestEffectTriggeredUpdateSettlesInSameFlush(t *testing.T) {
	s, _ := newTestScheduler(t)

	var setN *Setter[int]
	c := s.Mount(func(ctx *Ctx) string {
		n, sn := UseState(ctx, 0)
		double, setDouble := UseState(ctx, 0)
		setN = sn

		// The effect writes state, forcing a second render pass inside
		// the same flush.
		UseEffect(ctx, func() Cleanup {
			setDouble.Set(n * 2)
			return nil
		}, OnChange(n))

		return fmt.Sprintf("n=%d double=%d", n, double)
	})

	if err := s.FlushSync(func() { setN.Set(3) }); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if c.Output() != "n=3 double=6" {
		t.Errorf("expected effect-derived state committed in same flush, got %q", c.Output())
	}
}

func TestFlushOverflowOnEffectCycle(t *testing.T) {
	s, _ := newTestScheduler(t)

	var set *Setter[int]
	s.Mount(func(ctx *Ctx) string {
		n, setN := UseState(ctx, 0)
		set = setN
		// Self-feeding write: once armed, never converges.
		UseEffect(ctx, func() Cleanup {
			if n > 0 {
				setN.Set(n + 1)
			}
			return nil
		}, OnChange(n))
		return "x"
	})

	err := s.FlushSync(func() { set.Set(1) })
	var overflow *ScheduleOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected ScheduleOverflowError, got %v", err)
	}
	if overflow.Passes < DefaultFlushCap {
		t.Errorf("expected at least %d passes, got %d", DefaultFlushCap, overflow.Passes)
	}
}

func TestSetterAfterDisposeIsNoop(t *testing.T) {
	s, _ := newTestScheduler(t)

	var set *Setter[int]
	c := s.Mount(func(ctx *Ctx) string {
		n, setter := UseState(ctx, 0)
		set = setter
		return fmt.Sprintf("%d", n)
	})

	c.Dispose()

	// Must not panic and must not schedule anything.
	set.Set(99)
	if err := s.FlushSync(nil); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if c.Output() != "0" {
		t.Errorf("disposed component output changed to %q", c.Output())
	}
}

func TestHookOrderViolationPanics(t *testing.T) {
	s, _ := newTestScheduler(t)

	grow := false
	var set *Setter[int]
	s.Mount(func(ctx *Ctx) string {
		n, setter := UseState(ctx, 0)
		set = setter
		if grow {
			_, _ = UseState(ctx, "extra")
		}
		return fmt.Sprintf("%d", n)
	})

	grow = true
	defer func() {
		if recover() == nil {
			t.Error("expected panic on hook order change")
		}
	}()
	_ = s.FlushSync(func() { set.Set(1) })
}

func TestCloseDisposesComponents(t *testing.T) {
	clock := loop.NewVirtualClock()
	s := New(WithLoop(loop.New(clock)))

	cleaned := false
	c := s.Mount(func(ctx *Ctx) string {
		UseEffect(ctx, func() Cleanup {
			return func() { cleaned = true }
		}, Once())
		return "x"
	})

	s.Close()
	if !cleaned {
		t.Error("Close did not run effect cleanups")
	}
	if !c.Disposed() {
		t.Error("component not disposed by Close")
	}
	if err := s.FlushSync(nil); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}
