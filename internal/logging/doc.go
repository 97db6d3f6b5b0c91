// Package logging assembles the structured slog loggers used across
// mendline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers plus standardized field keys so
// the repair engine, the ledger, and the CLI all tag log lines the same
// way. Log output is routed to stderr (and optionally a log file) so that
// repair summaries on stdout remain clean. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape and routing as the rest of the system.
package logging
