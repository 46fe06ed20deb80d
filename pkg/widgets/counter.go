package widgets

import (
	"fmt"
	"strconv"

	"github.com/tempo-ui/tempo/pkg/sched"
)

// Counter is a counter with a label derived from the count by an effect.
// The label demonstrates that effects queued by a flushed render run before
// the flush returns: after one FlushSync around Increment, both the count
// and the label read the new value.
type Counter struct {
	comp      *sched.Component
	increment func()
	reset     func()
}

// NewCounter mounts a counter on s.
func NewCounter(s *sched.Scheduler) *Counter {
	c := &Counter{}

	c.comp = s.Mount(func(ctx *sched.Ctx) string {
		count, setCount := sched.UseState(ctx, 0)
		label, setLabel := sched.UseState(ctx, "0")

		sched.UseEffect(ctx, func() sched.Cleanup {
			setLabel.Set(strconv.Itoa(count))
			return nil
		}, sched.OnChange(count))

		c.increment = func() {
			setCount.Update(func(n int) int { return n + 1 })
		}
		c.reset = func() {
			setCount.Set(0)
		}

		return fmt.Sprintf("count: %d | label: %s", count, label)
	})

	return c
}

// Increment enqueues a +1 update. It does not render; output stays stale
// until the next flush.
func (c *Counter) Increment() { c.increment() }

// Reset enqueues a reset to zero.
func (c *Counter) Reset() { c.reset() }

// Output returns the last committed output.
func (c *Counter) Output() string { return c.comp.Output() }

// Component exposes the underlying instance, mainly for teardown in tests.
func (c *Counter) Component() *sched.Component { return c.comp }
