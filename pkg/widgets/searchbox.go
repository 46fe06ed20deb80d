package widgets

import (
	"strings"
	"time"

	"github.com/tempo-ui/tempo/pkg/sched"
)

// DefaultDebounce is the search debounce used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// SearchFunc resolves a query to results. It runs inside a timer callback on
// the scheduler's loop, so it must be synchronous and fast (a real app would
// chain a fetch task here instead).
type SearchFunc func(query string) []string

// SearchBox debounces queries through the loop's timer queue. Because the
// debounce is a macrotask, FlushAsync after SetQuery never shows results;
// they appear only after the clock advances past the debounce, typically via
// WaitFor.
type SearchBox struct {
	comp     *sched.Component
	setQuery func(q string)
}

// NewSearchBox mounts a search box on s. A non-positive debounce falls back
// to DefaultDebounce.
func NewSearchBox(s *sched.Scheduler, search SearchFunc, debounce time.Duration) *SearchBox {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	b := &SearchBox{}
	l := s.Loop()

	b.comp = s.Mount(func(ctx *sched.Ctx) string {
		query, setQuery := sched.UseState(ctx, "")
		results, setResults := sched.UseState(ctx, []string(nil))

		sched.UseEffect(ctx, func() sched.Cleanup {
			if query == "" {
				setResults.Set(nil)
				return nil
			}
			timer := l.SetTimeout(func() {
				setResults.Set(search(query))
			}, debounce)
			// Re-typing before the debounce fires cancels the stale
			// search.
			return func() { timer.Stop() }
		}, sched.OnChange(query))

		b.setQuery = setQuery.Set

		if query == "" {
			return "type to search"
		}
		if len(results) == 0 {
			return "searching: " + query
		}
		return "results: " + strings.Join(results, ", ")
	})

	return b
}

// SetQuery enqueues a query change.
func (b *SearchBox) SetQuery(q string) { b.setQuery(q) }

// Output returns the last committed output.
func (b *SearchBox) Output() string { return b.comp.Output() }

// Component exposes the underlying instance.
func (b *SearchBox) Component() *sched.Component { return b.comp }
