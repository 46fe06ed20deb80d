package loop

import (
	"container/heap"
	"sync"
	"time"
)

// Loop models a single-threaded event loop as two explicit queues: a
// microtask queue (promise-resolution work) and a timer queue (deferred
// macrotask work), driven by an injectable Clock.
//
// The queues are mutex-guarded so completion callbacks may be enqueued from
// I/O goroutines, but callbacks themselves always run on the goroutine that
// drains the loop. "Concurrency" here is interleaving of scheduled
// callbacks, not parallel execution.
type Loop struct {
	mu sync.Mutex

	clock  Clock
	micro  []func()
	timers timerHeap
	seq    uint64
}

// New creates a Loop driven by the given clock. A nil clock defaults to the
// system clock. When the clock is a *VirtualClock, advancing it fires due
// timers automatically.
func New(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock()
	}

	l := &Loop{clock: clock}

	if vc, ok := clock.(*VirtualClock); ok {
		vc.setOnAdvance(func() { l.RunDue() })
	}

	return l
}

// Clock returns the clock driving this loop.
func (l *Loop) Clock() Clock {
	return l.clock
}

// Enqueue appends fn to the microtask queue. It does not run fn; a
// subsequent DrainMicrotasks (or a scheduler flush) will.
func (l *Loop) Enqueue(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.micro = append(l.micro, fn)
	l.mu.Unlock()
}

// Timer is a handle to a scheduled timer callback.
type Timer struct {
	loop    *Loop
	seq     uint64
	stopped bool
}

// Stop cancels the timer if it has not fired yet.
// Reports whether the timer was still pending.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}

	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true

	for i, e := range t.loop.timers {
		if e.seq == t.seq {
			heap.Remove(&t.loop.timers, i)
			return true
		}
	}
	return false
}

// SetTimeout schedules fn to run once the clock has advanced past now+d.
// Timer callbacks are macrotasks: they run only via RunDue (or a virtual
// clock advance), never as part of a microtask drain.
func (l *Loop) SetTimeout(fn func(), d time.Duration) *Timer {
	if fn == nil {
		return nil
	}

	l.mu.Lock()
	l.seq++
	t := &Timer{loop: l, seq: l.seq}
	heap.Push(&l.timers, timerEntry{
		due: l.clock.Now().Add(d),
		seq: t.seq,
		fn:  fn,
	})
	l.mu.Unlock()

	return t
}

// DrainMicrotasks runs queued microtasks until the queue is empty, including
// microtasks enqueued by the ones being drained (unbounded chain depth).
// Returns the number of microtasks run.
func (l *Loop) DrainMicrotasks() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.micro) == 0 {
			l.mu.Unlock()
			return ran
		}
		fn := l.micro[0]
		l.micro = l.micro[1:]
		l.mu.Unlock()

		fn()
		ran++
	}
}

// RunDue runs timer callbacks whose due time has passed, in due order.
// Callbacks may schedule further microtasks or timers; newly due timers are
// picked up within the same call. Returns the number of timers run.
func (l *Loop) RunDue() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.timers) == 0 || l.timers[0].due.After(l.clock.Now()) {
			l.mu.Unlock()
			return ran
		}
		e := heap.Pop(&l.timers).(timerEntry)
		l.mu.Unlock()

		e.fn()
		ran++
	}
}

// PendingMicrotasks returns the number of queued microtasks.
func (l *Loop) PendingMicrotasks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.micro)
}

// PendingTimers returns the number of scheduled, unfired timers.
func (l *Loop) PendingTimers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// timerEntry is a scheduled timer ordered by due time, then creation order.
type timerEntry struct {
	due time.Time
	seq uint64
	fn  func()
}

type timerHeap []timerEntry

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(timerEntry))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
