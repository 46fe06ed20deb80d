// Package widgets contains intentionally small example components.
//
// Each widget exists to exercise one synchronization behavior of the
// scheduler: Counter (synchronous batching plus an effect-derived label),
// NameList (promise-chained loading), TodoList (coalesced updates and a
// derived summary), and SearchBox (timer-debounced work that FlushAsync
// deliberately does not settle).
package widgets
