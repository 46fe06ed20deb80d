package loop

import "sync"

// Task is a promise-like completion value bound to a Loop. Settling a task
// does not run its callbacks inline: each registered callback is enqueued on
// the loop's microtask queue, so observers only see the result at a
// microtask boundary. Tasks may be settled from other goroutines (an HTTP
// round trip, for example); the callbacks still run on the draining
// goroutine.
type Task struct {
	l *Loop

	mu        sync.Mutex
	settled   bool
	value     any
	err       error
	callbacks []func(any, error)
}

// NewTask creates an unsettled task bound to l.
func NewTask(l *Loop) *Task {
	return &Task{l: l}
}

// Resolved creates a task already resolved with v. Callbacks attached later
// still run asynchronously, at the next microtask drain.
func Resolved(l *Loop, v any) *Task {
	t := NewTask(l)
	t.Resolve(v)
	return t
}

// Failed creates a task already rejected with err.
func Failed(l *Loop, err error) *Task {
	t := NewTask(l)
	t.Reject(err)
	return t
}

// Resolve settles the task with a value. Settling twice is a no-op.
func (t *Task) Resolve(v any) {
	t.settle(v, nil)
}

// Reject settles the task with an error. Settling twice is a no-op.
func (t *Task) Reject(err error) {
	t.settle(nil, err)
}

func (t *Task) settle(v any, err error) {
	t.mu.Lock()
	if t.settled {
		t.mu.Unlock()
		return
	}
	t.settled = true
	t.value = v
	t.err = err
	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, fn := range callbacks {
		t.enqueue(fn, v, err)
	}
}

// Settled reports whether the task has been resolved or rejected.
func (t *Task) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settled
}

// Result returns the settled value and error. Valid only once Settled
// reports true; before that it returns zero values.
func (t *Task) Result() (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.err
}

// Then registers fn to run (as a microtask) once the task settles, and
// returns a derived task that settles with the same result after fn has run.
// Chaining Then calls yields one microtask per link, so a consumer draining
// microtasks to quiescence observes arbitrarily deep chains.
func (t *Task) Then(fn func(v any, err error)) *Task {
	next := NewTask(t.l)

	wrapped := func(v any, err error) {
		fn(v, err)
		// The derived task's own callbacks go through the microtask
		// queue, preserving one hop per chain link.
		next.settle(v, err)
	}

	t.mu.Lock()
	if t.settled {
		v, err := t.value, t.err
		t.mu.Unlock()
		t.enqueue(wrapped, v, err)
		return next
	}
	t.callbacks = append(t.callbacks, wrapped)
	t.mu.Unlock()

	return next
}

func (t *Task) enqueue(fn func(any, error), v any, err error) {
	t.l.Enqueue(func() { fn(v, err) })
}
