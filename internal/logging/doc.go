// Package logging assembles the structured slog loggers used by resolveprobe.
//
// It owns the console and JSON handlers, level parsing, and output routing.
// Diagnostic output (the report) goes to stdout; logs default to stderr so the
// two never interleave in pipelines. Every logger built from a run carries the
// run_id attribute, and stage code tags records with the stage key.
//
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
