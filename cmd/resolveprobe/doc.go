// Package main hosts the resolveprobe CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the scripting
// entry point (the Python bridge, or a TOML fixture with --fixture), runs
// the diagnostic stage sequence and renders the report. Supporting commands
// print the environment preflight, the declared stage plan, and the
// resolved configuration.
//
// Keep this package lean: probing logic lives in internal/diagnose and
// rendering in internal/report.
package main
