package sched

import (
	"errors"
	"fmt"
	"time"
)

// ErrClosed is returned by flush operations on a closed Scheduler.
var ErrClosed = errors.New("sched: scheduler is closed")

// ScheduleOverflowError reports that a flush did not converge: render passes
// and effect runs kept producing new pending work past the scheduler's pass
// cap. This almost always means an effect unconditionally writes a state
// cell it also depends on.
type ScheduleOverflowError struct {
	// Passes is the number of render passes executed before giving up.
	Passes int
}

// Error implements the error interface.
func (e *ScheduleOverflowError) Error() string {
	return fmt.Sprintf("sched: flush did not settle after %d render passes (render/effect cycle?)", e.Passes)
}

// TimeoutError reports that WaitFor's predicate never succeeded within the
// timeout. The last predicate failure is attached as the cause.
type TimeoutError struct {
	// Timeout is the bound that elapsed.
	Timeout time.Duration

	// Last is the most recent predicate failure, or nil if the predicate
	// was never evaluated.
	Last error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("sched: condition not met within %s: %s", e.Timeout, e.Last)
	}
	return fmt.Sprintf("sched: condition not met within %s", e.Timeout)
}

// Unwrap returns the last predicate failure for errors.Is/As support.
func (e *TimeoutError) Unwrap() error {
	return e.Last
}
