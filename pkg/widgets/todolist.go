package widgets

import (
	"fmt"
	"strings"

	"github.com/tempo-ui/tempo/pkg/sched"
)

// Todo is a single todo item.
type Todo struct {
	Text string
	Done bool
}

// TodoList renders a checklist with a summary line kept in sync by an
// effect. Adding several items in one frame coalesces into a single render
// pass.
type TodoList struct {
	comp   *sched.Component
	add    func(text string)
	toggle func(i int)
}

// NewTodoList mounts an empty todo list on s.
func NewTodoList(s *sched.Scheduler) *TodoList {
	t := &TodoList{}

	t.comp = s.Mount(func(ctx *sched.Ctx) string {
		todos, setTodos := sched.UseState(ctx, []Todo(nil))
		summary, setSummary := sched.UseState(ctx, "0 left")

		remaining := 0
		for _, td := range todos {
			if !td.Done {
				remaining++
			}
		}

		sched.UseEffect(ctx, func() sched.Cleanup {
			setSummary.Set(fmt.Sprintf("%d left", remaining))
			return nil
		}, sched.OnChange(remaining))

		t.add = func(text string) {
			setTodos.Update(func(prev []Todo) []Todo {
				next := make([]Todo, len(prev), len(prev)+1)
				copy(next, prev)
				return append(next, Todo{Text: text})
			})
		}
		t.toggle = func(i int) {
			setTodos.Update(func(prev []Todo) []Todo {
				if i < 0 || i >= len(prev) {
					return prev
				}
				next := make([]Todo, len(prev))
				copy(next, prev)
				next[i].Done = !next[i].Done
				return next
			})
		}

		var b strings.Builder
		for _, td := range todos {
			mark := " "
			if td.Done {
				mark = "x"
			}
			fmt.Fprintf(&b, "[%s] %s\n", mark, td.Text)
		}
		b.WriteString(summary)
		return b.String()
	})

	return t
}

// Add enqueues a new item. Updates in the same frame coalesce.
func (t *TodoList) Add(text string) { t.add(text) }

// Toggle enqueues flipping item i's done flag.
func (t *TodoList) Toggle(i int) { t.toggle(i) }

// Output returns the last committed output.
func (t *TodoList) Output() string { return t.comp.Output() }

// Component exposes the underlying instance.
func (t *TodoList) Component() *sched.Component { return t.comp }
