package sched

import (
	"time"

	"github.com/tempo-ui/tempo/pkg/loop"
)

// Default WaitFor bounds, matching the conventional polling defaults of
// UI testing harnesses.
const (
	DefaultWaitTimeout  = time.Second
	DefaultWaitInterval = 50 * time.Millisecond
)

// FlushSync runs fn, then synchronously drains pending render passes and
// effects in a loop until quiescent. Effects may enqueue further state
// updates; those trigger additional passes within the same call. Returns a
// *ScheduleOverflowError if the work never converges.
//
// Promise-chained (microtask) and timer-deferred work is untouched: FlushSync
// only settles synchronously produced updates.
func (s *Scheduler) FlushSync(fn func()) error {
	if s.isClosed() {
		return ErrClosed
	}

	start := time.Now()
	s.observer.FlushStart(FlushKindSync)

	if fn != nil {
		fn()
	}
	passes, err := s.settle(false)

	s.observer.FlushDone(FlushKindSync, passes, time.Since(start), err)
	return err
}

// FlushAsync runs fn, then drains microtask-queued work — promise-chained
// state updates of any depth — along with the render passes and effects they
// produce, until no further work is pending at the microtask boundary.
//
// Timer-deferred work is deliberately not settled: a callback scheduled via
// the loop's SetTimeout stays pending after FlushAsync returns. Observing it
// requires advancing the clock or polling with WaitFor. Likewise, a task
// resolved from another goroutine is only observed if it settled before the
// final microtask drain.
func (s *Scheduler) FlushAsync(fn func() *loop.Task) error {
	if s.isClosed() {
		return ErrClosed
	}

	start := time.Now()
	s.observer.FlushStart(FlushKindAsync)

	if fn != nil {
		// The returned task, if any, settles through the microtask
		// queue like every other promise-chained result, so the drain
		// below covers it. fn itself runs synchronously.
		_ = fn()
	}
	passes, err := s.settle(true)

	s.observer.FlushDone(FlushKindAsync, passes, time.Since(start), err)
	return err
}

// waitConfig holds WaitFor bounds.
type waitConfig struct {
	timeout  time.Duration
	interval time.Duration
}

// WaitOption configures WaitFor.
type WaitOption func(*waitConfig)

// WaitTimeout overrides the polling deadline.
func WaitTimeout(d time.Duration) WaitOption {
	return func(c *waitConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WaitInterval overrides the polling interval.
func WaitInterval(d time.Duration) WaitOption {
	return func(c *waitConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WaitFor polls pred until it returns nil or the timeout elapses. Before
// each evaluation it fires due timer callbacks and drains renders, effects,
// and microtasks, so work settled by timers between polls is observed. A
// failing predicate (non-nil error) is treated as "not yet" and retried.
//
// Between polls the loop's clock sleeps one interval; with a VirtualClock
// that advances virtual time, making timer-deferred settlement fully
// deterministic. On timeout the last predicate error is attached to the
// returned *TimeoutError.
func (s *Scheduler) WaitFor(pred func() error, opts ...WaitOption) error {
	if s.isClosed() {
		return ErrClosed
	}

	cfg := waitConfig{
		timeout:  DefaultWaitTimeout,
		interval: DefaultWaitInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	s.observer.FlushStart(FlushKindPoll)

	clock := s.loop.Clock()
	deadline := clock.Now().Add(cfg.timeout)
	totalPasses := 0

	var last error
	for {
		s.loop.RunDue()
		passes, err := s.settle(true)
		totalPasses += passes
		if err != nil {
			s.observer.FlushDone(FlushKindPoll, totalPasses, time.Since(start), err)
			return err
		}

		if last = pred(); last == nil {
			s.observer.FlushDone(FlushKindPoll, totalPasses, time.Since(start), nil)
			return nil
		}

		if !clock.Now().Add(cfg.interval).After(deadline) {
			clock.Sleep(cfg.interval)
			continue
		}

		err = &TimeoutError{Timeout: cfg.timeout, Last: last}
		s.observer.FlushDone(FlushKindPoll, totalPasses, time.Since(start), err)
		return err
	}
}

func (s *Scheduler) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
