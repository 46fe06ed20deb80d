package sched

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// RenderFunc produces a component's output from its current state. It is
// called with a render context through which UseState and UseEffect bind to
// the component's declaration-order slots.
type RenderFunc func(*Ctx) string

// Component is a mounted component instance. It owns an ordered sequence of
// state cells and effect registrations, created on first render and bound by
// declaration order thereafter.
type Component struct {
	id    uint64
	sched *Scheduler

	render RenderFunc

	// cells and effects are the declaration-order hook slots. Their order
	// and count are locked after the first render; a render that registers
	// hooks in a different order panics, since slot identity would silently
	// attach state to the wrong declaration.
	cells   []cellSlot
	effects []*effect

	// slotIdx/effectIdx cursor through the slots during a render.
	slotIdx   int
	effectIdx int

	renderCount int

	mu     sync.Mutex
	output string

	dirty    atomic.Bool
	disposed atomic.Bool
}

// Ctx is the render context passed to a RenderFunc. It is only valid for
// the duration of the render call that received it.
type Ctx struct {
	c *Component
}

// Mount creates a component instance, renders it, and runs its mount
// effects to quiescence. The initial output is therefore observable
// immediately. Mount panics if the initial render/effect cycle does not
// converge within the flush cap; that is a programming error on par with a
// hook-order violation.
func (s *Scheduler) Mount(fn RenderFunc) *Component {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		panic("sched: Mount on closed scheduler")
	}
	s.mountSeq++
	c := &Component{
		id:     s.mountSeq,
		sched:  s,
		render: fn,
	}
	s.components = append(s.components, c)
	s.mu.Unlock()

	s.markDirty(c)
	if _, err := s.settle(false); err != nil {
		panic(fmt.Sprintf("sched: mount did not settle: %v", err))
	}

	return c
}

// Output returns the last committed output. State written since the last
// flush is not reflected: uncommitted output is intentionally stale until
// the next FlushSync, FlushAsync, or WaitFor drain.
func (c *Component) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output
}

// Disposed reports whether the component has been torn down.
func (c *Component) Disposed() bool {
	return c.disposed.Load()
}

// Dispose tears the component down: effect cleanups run in reverse
// declaration order and subsequent setter calls become logged no-ops.
// Timers the component scheduled on the loop keep their callbacks; those
// callbacks see the disposed flag and drop their writes.
func (c *Component) Dispose() {
	if c.disposed.Swap(true) {
		return
	}

	for i := len(c.effects) - 1; i >= 0; i-- {
		c.effects[i].disposeCleanup()
	}

	s := c.sched
	s.mu.Lock()
	for i, mounted := range s.components {
		if mounted == c {
			s.components = append(s.components[:i], s.components[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
}

// renderOnce commits pending cell values, re-renders, and queues effects
// whose policy marks them due. Called only from the scheduler's render pass.
func (c *Component) renderOnce() {
	// Commit: all coalesced updates land atomically before the render
	// reads any cell.
	for _, slot := range c.cells {
		slot.commit()
	}

	c.slotIdx = 0
	c.effectIdx = 0

	out := c.render(&Ctx{c: c})

	if c.renderCount == 0 {
		c.renderCount = 1
	} else {
		if c.slotIdx != len(c.cells) {
			panic(fmt.Sprintf("sched: hook order changed: expected %d state cells, got %d", len(c.cells), c.slotIdx))
		}
		if c.effectIdx != len(c.effects) {
			panic(fmt.Sprintf("sched: hook order changed: expected %d effects, got %d", len(c.effects), c.effectIdx))
		}
	}

	c.mu.Lock()
	c.output = out
	c.mu.Unlock()

	// Queue due effects in declaration order. Render passes visit dirty
	// components in mount order, so sibling effects keep mount order too.
	for _, e := range c.effects {
		if e.due() && e.pending.CompareAndSwap(false, true) {
			c.sched.scheduleEffect(e)
		}
	}
}

// cellSlot lets the component commit cells without knowing their value type.
type cellSlot interface {
	commit()
}
