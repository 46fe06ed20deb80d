// Package errors provides structured, actionable error messages for Tempo.
//
// Each error has a unique code (e.g., "T001") that maps to a short message,
// a detailed explanation, and a documentation URL. Errors print with a fix
// suggestion when one is attached.
//
// # Error Categories
//
//   - runtime: scheduler execution errors (flush overflow, hook order)
//   - config: tempo.json problems
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("T101").
//	    Wrap(parseErr).
//	    WithSuggestion("Check tempo.json for trailing commas")
//
//	fmt.Println(err.Format())
package errors
