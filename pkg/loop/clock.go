package loop

import (
	"sync"
	"time"
)

// Clock abstracts time for the event loop. Production code uses the system
// clock; tests inject a VirtualClock so timer callbacks fire deterministically
// without real sleeping.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for the given duration. A VirtualClock advances its
	// virtual time instead of blocking.
	Sleep(d time.Duration)
}

// systemClock delegates to the time package.
type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns a Clock backed by real time.
func SystemClock() Clock {
	return systemClock{}
}

// VirtualClock is a manually advanced clock. Sleep and Advance move virtual
// time forward; they never block. When attached to a Loop, advancing the
// clock fires timers that have come due.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Time

	// onAdvance is set by the Loop so due timers run as time moves.
	onAdvance func()
}

// NewVirtualClock creates a VirtualClock starting at an arbitrary fixed epoch.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Now returns the current virtual time.
func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances virtual time by d. It never blocks.
func (c *VirtualClock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves virtual time forward by d and notifies the attached loop so
// timers that came due can run.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	notify := c.onAdvance
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// setOnAdvance attaches the loop's due-timer callback.
func (c *VirtualClock) setOnAdvance(fn func()) {
	c.mu.Lock()
	c.onAdvance = fn
	c.mu.Unlock()
}
