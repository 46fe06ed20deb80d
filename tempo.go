// Package tempo provides the public API for the Tempo scheduler.
//
// This is the recommended import for most applications:
//
//	import "github.com/tempo-ui/tempo"
//
// Usage:
//
//	s := tempo.New()
//	comp := s.Mount(func(ctx *tempo.Ctx) string {
//	    count, setCount := tempo.UseState(ctx, 0)
//	    return fmt.Sprintf("%d", count)
//	})
//	s.FlushSync(func() { setCount.Set(1) })
package tempo

import (
	"github.com/tempo-ui/tempo/pkg/loop"
	"github.com/tempo-ui/tempo/pkg/sched"
)

// =============================================================================
// Scheduler (re-export from pkg/sched)
// =============================================================================

// Scheduler coalesces state updates into render passes and runs queued
// effects until quiescent.
type Scheduler = sched.Scheduler

// Ctx is the per-render hook context passed to render functions.
type Ctx = sched.Ctx

// Component is a mounted render function with committed output.
type Component = sched.Component

// RenderFunc produces a component's output from its hook context.
type RenderFunc = sched.RenderFunc

// Setter writes a state cell from outside the render.
type Setter[T any] = sched.Setter[T]

// Cleanup tears an effect down before its next run and at dispose.
type Cleanup = sched.Cleanup

// Policy decides when a registered effect runs.
type Policy = sched.Policy

// Observer receives scheduler lifecycle notifications.
type Observer = sched.Observer

// FlushKind labels the flush barrier an observer notification belongs to.
type FlushKind = sched.FlushKind

// Option configures a Scheduler.
type Option = sched.Option

// WaitOption configures WaitFor polling bounds.
type WaitOption = sched.WaitOption

// New creates a scheduler. Without options it binds a system-clock loop.
func New(opts ...Option) *Scheduler {
	return sched.New(opts...)
}

// UseState declares a state cell in declaration order.
//
// Example:
//
//	count, setCount := tempo.UseState(ctx, 0)
func UseState[T any](ctx *Ctx, initial T) (T, *Setter[T]) {
	return sched.UseState(ctx, initial)
}

// UseEffect registers a post-commit effect under the given policy.
var UseEffect = sched.UseEffect

// Effect policies.
var (
	Always   = sched.Always
	Once     = sched.Once
	OnChange = sched.OnChange
)

// Scheduler options.
var (
	WithLoop     = sched.WithLoop
	WithFlushCap = sched.WithFlushCap
	WithObserver = sched.WithObserver
	WithLogger   = sched.WithLogger
)

// WaitFor options.
var (
	WaitTimeout  = sched.WaitTimeout
	WaitInterval = sched.WaitInterval
)

// Flush and polling defaults.
const (
	DefaultFlushCap     = sched.DefaultFlushCap
	DefaultWaitTimeout  = sched.DefaultWaitTimeout
	DefaultWaitInterval = sched.DefaultWaitInterval
)

// =============================================================================
// Errors (re-export from pkg/sched)
// =============================================================================

// ErrClosed is returned by flush barriers on a closed scheduler.
var ErrClosed = sched.ErrClosed

// ScheduleOverflowError reports a flush that never converged.
type ScheduleOverflowError = sched.ScheduleOverflowError

// TimeoutError reports a WaitFor deadline, carrying the last predicate
// failure.
type TimeoutError = sched.TimeoutError

// =============================================================================
// Loop (re-export from pkg/loop)
// =============================================================================

// Loop is the two-queue event loop schedulers drain against.
type Loop = loop.Loop

// Clock abstracts time for the loop; VirtualClock makes timers deterministic.
type Clock = loop.Clock

// VirtualClock is a manually advanced clock for tests.
type VirtualClock = loop.VirtualClock

// Task is a promise-like value bound to a loop's microtask queue.
type Task = loop.Task

// Timer is a cancelable timer handle.
type Timer = loop.Timer

// NewLoop creates a loop on the given clock; nil means the system clock.
func NewLoop(clock Clock) *Loop {
	return loop.New(clock)
}

// NewVirtualClock creates a virtual clock at a fixed epoch.
var NewVirtualClock = loop.NewVirtualClock

// SystemClock returns the wall clock.
var SystemClock = loop.SystemClock

// NewTask creates an unsettled task bound to l.
func NewTask(l *Loop) *Task { return loop.NewTask(l) }

// Resolved creates an already resolved task.
func Resolved(l *Loop, v any) *Task { return loop.Resolved(l, v) }

// Failed creates an already rejected task.
func Failed(l *Loop, err error) *Task { return loop.Failed(l, err) }
