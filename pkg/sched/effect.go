package sched

import (
	"fmt"
	"sync/atomic"
)

// Cleanup is an optional function returned by an effect. It runs before the
// effect re-runs and when the owning component is disposed.
type Cleanup func()

// Policy decides, deterministically on every committed render, whether an
// effect is due. The three policies correspond to the classic dependency
// list shapes: no list (Always), empty list (Once), and a concrete list
// (OnChange).
type Policy struct {
	kind policyKind
	deps []any
}

type policyKind uint8

const (
	policyAlways policyKind = iota
	policyOnce
	policyOnChange
)

// Always re-runs the effect after every committed render of its component.
func Always() Policy {
	return Policy{kind: policyAlways}
}

// Once runs the effect only after the component's first committed render.
func Once() Policy {
	return Policy{kind: policyOnce}
}

// OnChange re-runs the effect when the dependency list is shallow-unequal
// to the list recorded at the effect's previous run. Elements are compared
// with == semantics (reflect.DeepEqual for non-scalars).
func OnChange(deps ...any) Policy {
	return Policy{kind: policyOnChange, deps: deps}
}

// effect is a registered effect slot on a component.
type effect struct {
	owner *Component

	fn      func() Cleanup
	cleanup Cleanup
	policy  Policy

	lastDeps []any
	ran      bool
	pending  atomic.Bool
}

// due reports whether the effect should be queued after the render that
// just committed.
func (e *effect) due() bool {
	switch e.policy.kind {
	case policyOnce:
		return !e.ran
	case policyOnChange:
		return !e.ran || !shallowEqual(e.policy.deps, e.lastDeps)
	default:
		return true
	}
}

// run executes the effect, running the previous cleanup first.
// Panics inside the effect propagate to the flush caller.
func (e *effect) run() {
	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.ran = true
	e.lastDeps = e.policy.deps
	e.cleanup = e.fn()
}

// disposeCleanup runs the outstanding cleanup at component teardown.
func (e *effect) disposeCleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// UseEffect registers an effect at the current declaration slot. The
// callback and policy are re-recorded on every render; whether the callback
// is queued is decided by the policy after the render commits. Must be
// called during render, in the same order on every render.
func UseEffect(ctx *Ctx, fn func() Cleanup, policy Policy) {
	c := ctx.c

	idx := c.effectIdx
	c.effectIdx++

	if idx < len(c.effects) {
		e := c.effects[idx]
		e.fn = fn
		e.policy = policy
		return
	}

	if c.renderCount > 0 {
		panic(fmt.Sprintf("sched: hook order changed: unexpected extra effect at slot %d", idx))
	}

	c.effects = append(c.effects, &effect{owner: c, fn: fn, policy: policy})
}

// shallowEqual compares two dependency lists element by element.
func shallowEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalValues(a[i], b[i]) {
			return false
		}
	}
	return true
}
