// Package logging provides the slog setup used by ccprops.
//
// Loggers are created once at the CLI edge and injected into the store,
// the diagnostics engine and the watcher. [Handler] renders compact
// colorized lines on a terminal; [MultiHandler] adds a JSON log file next
// to it. Tests use [ForTest] so output is attached to the failing test:
//
//	st := store.New(store.Options{Logger: logging.ForTest(t)})
package logging
