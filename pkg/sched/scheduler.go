package sched

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/tempo-ui/tempo/pkg/loop"
)

// DefaultFlushCap bounds the number of render passes a single flush may
// execute before failing with ScheduleOverflowError.
const DefaultFlushCap = 25

// Scheduler owns component state, batches state updates into render passes,
// and runs post-render effects. All pending work lives on the Scheduler
// instance itself (no process-wide queues), so tests can run isolated
// schedulers side by side.
//
// A Scheduler is driven cooperatively: nothing renders until a caller
// synchronizes through FlushSync, FlushAsync, or WaitFor. State written
// outside a flush is recorded but not observable in component output until
// the next flush.
type Scheduler struct {
	mu sync.Mutex

	loop     *loop.Loop
	logger   *slog.Logger
	observer Observer
	flushCap int

	// dirty is the pending work queue: components awaiting a render pass,
	// deduplicated via each component's dirty flag.
	dirty []*Component

	// effects is the post-commit effect queue for the current drain.
	effects []*effect

	// components tracks all live components for Close.
	components []*Component

	mountSeq uint64
	closed   bool
	flushing bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLoop attaches an event loop. Schedulers sharing a loop share its
// microtask and timer queues. Defaults to a new loop on the system clock.
func WithLoop(l *loop.Loop) Option {
	return func(s *Scheduler) { s.loop = l }
}

// WithFlushCap overrides the render-pass cap for cycle protection.
func WithFlushCap(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.flushCap = n
		}
	}
}

// WithObserver attaches an Observer for instrumentation.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the logger used for recoverable conditions, such as a
// state write to a disposed component.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger:   slog.Default(),
		observer: nopObserver{},
		flushCap: DefaultFlushCap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.loop == nil {
		s.loop = loop.New(nil)
	}

	return s
}

// Loop returns the event loop driving this scheduler.
func (s *Scheduler) Loop() *loop.Loop {
	return s.loop
}

// Close disposes all mounted components (running their effect cleanups) and
// rejects further flushes. Pending timers on a shared loop are not
// cancelled; tests owning the loop should drain or drop it.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	components := make([]*Component, len(s.components))
	copy(components, s.components)
	s.components = nil
	s.dirty = nil
	s.effects = nil
	s.mu.Unlock()

	// Dispose in reverse mount order, mirroring owner teardown.
	for i := len(components) - 1; i >= 0; i-- {
		components[i].Dispose()
	}
}

// markDirty enqueues a component for the next render pass. Safe to call for
// a component that is already queued (the dirty flag deduplicates) or
// disposed (no-op).
func (s *Scheduler) markDirty(c *Component) {
	if c.disposed.Load() {
		return
	}

	if c.dirty.CompareAndSwap(false, true) {
		s.mu.Lock()
		if !s.closed {
			s.dirty = append(s.dirty, c)
		}
		s.mu.Unlock()
	}
}

// takeDirty drains the pending work queue in mount order.
func (s *Scheduler) takeDirty() []*Component {
	s.mu.Lock()
	dirty := s.dirty
	s.dirty = nil
	s.mu.Unlock()

	sort.Slice(dirty, func(i, j int) bool {
		return dirty[i].id < dirty[j].id
	})
	return dirty
}

// scheduleEffect appends a due effect to the effect queue.
func (s *Scheduler) scheduleEffect(e *effect) {
	s.mu.Lock()
	s.effects = append(s.effects, e)
	s.mu.Unlock()
}

// takeEffects drains the effect queue.
func (s *Scheduler) takeEffects() []*effect {
	s.mu.Lock()
	effects := s.effects
	s.effects = nil
	s.mu.Unlock()
	return effects
}

// renderPass renders every dirty component once, committing its pending
// state updates first, then queues effects that became due. Returns the
// number of components rendered.
//
// From an external observer's viewpoint the pass is atomic: Output never
// exposes a partially applied batch of same-frame setter calls.
func (s *Scheduler) renderPass() int {
	dirty := s.takeDirty()
	rendered := 0

	for _, c := range dirty {
		if !c.dirty.CompareAndSwap(true, false) {
			continue
		}
		if c.disposed.Load() {
			continue
		}
		c.renderOnce()
		rendered++
	}

	if rendered > 0 {
		s.observer.RenderPass(rendered)
	}
	return rendered
}

// runEffects drains the effect queue once. Effects may write state cells,
// enqueueing further render passes. Returns the number of effects run.
func (s *Scheduler) runEffects() int {
	effects := s.takeEffects()
	ran := 0

	for _, e := range effects {
		if e.owner.disposed.Load() {
			continue
		}
		e.run()
		s.observer.EffectRun()
		ran++
	}
	return ran
}

// hasPendingWork reports whether a render pass or effect run is pending.
func (s *Scheduler) hasPendingWork() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty) > 0 || len(s.effects) > 0
}

// settle drains pending work until quiescent. When micro is true, each pass
// first drains the loop's microtask queue, so promise-chained updates of any
// depth are committed. Timer callbacks are never run here.
func (s *Scheduler) settle(micro bool) (passes int, err error) {
	for {
		ranMicro := 0
		if micro {
			ranMicro = s.loop.DrainMicrotasks()
		}

		if !s.hasPendingWork() && ranMicro == 0 {
			return passes, nil
		}

		if passes >= s.flushCap {
			return passes, &ScheduleOverflowError{Passes: passes}
		}

		s.renderPass()
		s.runEffects()
		passes++
	}
}
