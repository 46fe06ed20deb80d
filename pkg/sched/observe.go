package sched

import "time"

// FlushKind labels which synchronization primitive drove a drain.
type FlushKind string

const (
	FlushKindSync  FlushKind = "sync"
	FlushKindAsync FlushKind = "async"
	FlushKindPoll  FlushKind = "poll"
)

// Observer receives scheduler lifecycle notifications. Implementations must
// be cheap and must not call back into the scheduler; they are invoked
// inside the flush path.
type Observer interface {
	// FlushStart fires when a flush begins, before the caller's function.
	FlushStart(kind FlushKind)

	// FlushDone fires when a flush returns, with the number of render
	// passes executed, the wall-clock duration, and the flush error.
	FlushDone(kind FlushKind, passes int, d time.Duration, err error)

	// RenderPass fires once per render pass with the number of components
	// rendered in that pass.
	RenderPass(components int)

	// EffectRun fires for every effect executed.
	EffectRun()
}

// nopObserver is the default Observer.
type nopObserver struct{}

func (nopObserver) FlushStart(FlushKind)                           {}
func (nopObserver) FlushDone(FlushKind, int, time.Duration, error) {}
func (nopObserver) RenderPass(int)                                 {}
func (nopObserver) EffectRun()                                     {}
