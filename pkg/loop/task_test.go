package loop

import (
	"errors"
	"fmt"
	"testing"
)

func TestTaskCallbacksRunAtMicrotaskBoundary(t *testing.T) {
	l := New(NewVirtualClock())
	task := NewTask(l)

	var got any
	task.Then(func(v any, err error) { got = v })

	// Settling does not run the callback inline.
	task.Resolve("hello")
	if got != nil {
		t.Fatal("callback ran synchronously on Resolve")
	}

	l.DrainMicrotasks()
	if got != "hello" {
		t.Errorf("expected callback to observe %q, got %v", "hello", got)
	}
}

func TestTaskThenAfterSettlementIsStillAsync(t *testing.T) {
	l := New(NewVirtualClock())
	task := Resolved(l, 42)

	var got any
	task.Then(func(v any, err error) { got = v })
	if got != nil {
		t.Fatal("callback on a settled task ran inline")
	}

	l.DrainMicrotasks()
	if got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestTaskChainSettlesInOneDrain(t *testing.T) {
	l := New(NewVirtualClock())

	// No fixed chain-depth limit: a long Then chain settles within a
	// single drain-to-quiescence.
	const depth = 64
	task := NewTask(l)
	hops := 0

	next := task
	for i := 0; i < depth; i++ {
		next = next.Then(func(v any, err error) { hops++ })
	}

	task.Resolve(struct{}{})
	l.DrainMicrotasks()

	if hops != depth {
		t.Errorf("expected %d chain hops, got %d", depth, hops)
	}
	if !next.Settled() {
		t.Error("tail of the chain is not settled")
	}
}

func TestTaskReject(t *testing.T) {
	l := New(NewVirtualClock())
	boom := errors.New("boom")

	var got error
	Failed(l, boom).Then(func(v any, err error) { got = err })
	l.DrainMicrotasks()

	if !errors.Is(got, boom) {
		t.Errorf("expected rejection error, got %v", got)
	}
}

func TestTaskSettlesOnlyOnce(t *testing.T) {
	l := New(NewVirtualClock())
	task := NewTask(l)

	task.Resolve("first")
	task.Resolve("second")
	task.Reject(fmt.Errorf("late rejection"))

	v, err := task.Result()
	if v != "first" || err != nil {
		t.Errorf("expected first settlement to win, got (%v, %v)", v, err)
	}
}

func TestTaskResultBeforeSettlement(t *testing.T) {
	l := New(NewVirtualClock())
	task := NewTask(l)

	if task.Settled() {
		t.Fatal("new task reports settled")
	}
	if v, err := task.Result(); v != nil || err != nil {
		t.Errorf("expected zero results before settlement, got (%v, %v)", v, err)
	}
}
