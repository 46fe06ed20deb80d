package widgets

import (
	"fmt"
	"strings"

	"github.com/tempo-ui/tempo/pkg/loop"
	"github.com/tempo-ui/tempo/pkg/sched"
)

// NameSource produces the list of names asynchronously, typically a closure
// over fetch.GetJSON. Tests substitute a source resolving a canned task.
type NameSource func() *loop.Task

// NameList renders names loaded through a task. Until a load settles (and a
// flush commits it), the output stays empty — which is exactly the staleness
// the async tests assert on.
type NameList struct {
	comp *sched.Component
	load func() *loop.Task
}

// NewNameList mounts a name list on s fed by source.
func NewNameList(s *sched.Scheduler, source NameSource) *NameList {
	n := &NameList{}

	n.comp = s.Mount(func(ctx *sched.Ctx) string {
		names, setNames := sched.UseState(ctx, []string(nil))
		loadErr, setErr := sched.UseState(ctx, "")

		n.load = func() *loop.Task {
			return source().Then(func(v any, err error) {
				if err != nil {
					setErr.Set(err.Error())
					return
				}
				setNames.Set(toStrings(v))
			})
		}

		if loadErr != "" {
			return "error: " + loadErr
		}
		if len(names) == 0 {
			return "no names"
		}

		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		return b.String()
	})

	return n
}

// Load starts a load. The returned task settles when the source and the
// state write chained onto it have run; await it with FlushAsync.
func (n *NameList) Load() *loop.Task { return n.load() }

// Output returns the last committed output.
func (n *NameList) Output() string { return n.comp.Output() }

// Component exposes the underlying instance.
func (n *NameList) Component() *sched.Component { return n.comp }

// toStrings accepts the shapes a source realistically resolves with:
// []string directly, or []any from decoded JSON.
func toStrings(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			out = append(out, fmt.Sprint(e))
		}
		return out
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(v)}
	}
}
