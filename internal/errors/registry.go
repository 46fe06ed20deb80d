package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (T001-T099)
	// ============================================

	"T001": {
		Category: CategoryRuntime,
		Message:  "Flush did not converge",
		Detail:   "A flush barrier hit the render pass cap. An effect is probably writing state that re-triggers itself; gate it with an OnChange dependency list.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T001",
	},
	"T002": {
		Category: CategoryRuntime,
		Message:  "Hook order changed between renders",
		Detail:   "UseState and UseEffect must be called unconditionally and in the same order on every render.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T002",
	},
	"T003": {
		Category: CategoryRuntime,
		Message:  "State write to disposed component",
		Detail:   "A setter was called after its component was disposed. The write is dropped; cancel the work that holds the setter in the effect cleanup.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T003",
	},
	"T004": {
		Category: CategoryRuntime,
		Message:  "WaitFor timed out",
		Detail:   "The predicate never passed within the timeout. The last predicate failure is attached to the error.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T004",
	},
	"T005": {
		Category: CategoryRuntime,
		Message:  "Scheduler is closed",
		Detail:   "A flush barrier was entered on a closed scheduler.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T005",
	},

	// ============================================
	// Config Errors (T100-T149)
	// ============================================

	"T100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No tempo.json was found in the project directory.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T100",
	},
	"T101": {
		Category: CategoryConfig,
		Message:  "Configuration file is invalid",
		Detail:   "tempo.json exists but could not be parsed as JSON.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T101",
	},
	"T102": {
		Category: CategoryConfig,
		Message:  "Configuration value out of range",
		Detail:   "A tempo.json field holds a value outside its allowed range.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T102",
	},

	// ============================================
	// CLI Errors (T150-T199)
	// ============================================

	"T150": {
		Category: CategoryCLI,
		Message:  "Server failed to start",
		Detail:   "The listen address is invalid or already in use.",
		DocURL:   "https://tempo-ui.dev/docs/errors/T150",
	},
}
