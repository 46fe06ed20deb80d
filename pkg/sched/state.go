package sched

import (
	"fmt"
	"reflect"
	"sync"
)

// cell is a single state slot: a committed value plus at most one pending
// value awaiting the next render pass. Multiple setter calls between flushes
// overwrite the pending value, which is how same-frame updates coalesce into
// one render.
type cell[T any] struct {
	mu         sync.Mutex
	value      T
	pending    T
	hasPending bool

	setter *Setter[T]
}

// commit applies the pending value, if any. Runs at the start of a render
// pass so the render reads the fully applied batch.
func (c *cell[T]) commit() {
	c.mu.Lock()
	if c.hasPending {
		c.value = c.pending
		c.hasPending = false
	}
	c.mu.Unlock()
}

func (c *cell[T]) committed() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Setter updates a state cell. Calling it never renders synchronously; it
// records the new value and enqueues the owning component for the next
// flush.
type Setter[T any] struct {
	comp *Component
	cell *cell[T]
}

// Set records v as the cell's next value. If v equals the latest pending
// value (or the committed value when none is pending), the call is a no-op
// and no render is scheduled.
func (s *Setter[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update records the result of fn applied to the latest pending value — not
// necessarily the last committed one — so several coalesced updates in the
// same frame stack correctly.
func (s *Setter[T]) Update(fn func(T) T) {
	if s.comp.disposed.Load() {
		s.comp.sched.logger.Warn("sched: state write to disposed component dropped",
			"component", s.comp.id)
		return
	}

	s.cell.mu.Lock()
	base := s.cell.value
	if s.cell.hasPending {
		base = s.cell.pending
	}
	next := fn(base)
	if equalValues(base, next) {
		s.cell.mu.Unlock()
		return
	}
	s.cell.pending = next
	s.cell.hasPending = true
	s.cell.mu.Unlock()

	s.comp.sched.markDirty(s.comp)
}

// UseState returns the current committed value of the state cell at the
// current declaration slot, creating the cell with initial on first render.
// Must be called during render, in the same order on every render.
func UseState[T any](ctx *Ctx, initial T) (T, *Setter[T]) {
	c := ctx.c

	idx := c.slotIdx
	c.slotIdx++

	if idx < len(c.cells) {
		slot, ok := c.cells[idx].(*cell[T])
		if !ok {
			panic(fmt.Sprintf("sched: hook order changed: state cell %d has a different type", idx))
		}
		return slot.committed(), slot.setter
	}

	if c.renderCount > 0 {
		panic(fmt.Sprintf("sched: hook order changed: unexpected extra state cell at slot %d", idx))
	}

	slot := &cell[T]{value: initial}
	slot.setter = &Setter[T]{comp: c, cell: slot}
	c.cells = append(c.cells, slot)
	return initial, slot.setter
}

// equalValues reports value equality with == semantics for common scalar
// types and reflect.DeepEqual for everything else.
func equalValues(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case uint64:
		bv, ok := b.(uint64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return reflect.DeepEqual(a, b)
	}
}
