// Package sched implements a deterministic render/effect scheduler for
// component UIs.
//
// A Scheduler owns component state, coalesces state updates into render
// passes, and runs post-render effects. Nothing renders eagerly: callers
// synchronize through one of three flush barriers, which is what makes
// asynchronous UI behavior testable.
//
// # Components and State
//
// A component is a render function mounted on a scheduler:
//
//	s := sched.New()
//	c := s.Mount(func(ctx *sched.Ctx) string {
//	    count, setCount := sched.UseState(ctx, 0)
//	    sched.UseEffect(ctx, func() sched.Cleanup {
//	        log.Println("count committed:", count)
//	        return nil
//	    }, sched.OnChange(count))
//	    _ = setCount
//	    return fmt.Sprintf("count: %d", count)
//	})
//
// State cells and effects bind by declaration order; changing the order
// between renders panics, as the slots would silently swap identities.
//
// # Flush Barriers
//
// FlushSync settles synchronously produced updates:
//
//	s.FlushSync(func() { counter.Increment() })
//
// FlushAsync additionally settles promise-chained (microtask) work, but
// never timer-deferred work:
//
//	s.FlushAsync(func() *loop.Task { return list.Load() })
//
// WaitFor polls a predicate, firing due timers and draining between polls:
//
//	err := s.WaitFor(func() error {
//	    if !strings.Contains(c.Output(), "done") {
//	        return errors.New("not rendered yet")
//	    }
//	    return nil
//	})
//
// # Staleness
//
// Component.Output always returns the last committed output. A setter call
// outside a flush is recorded but not observable until the next barrier;
// asserting on output without flushing observes the pre-update value.
package sched
