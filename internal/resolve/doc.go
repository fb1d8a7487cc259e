// Package resolve declares the capability interfaces resolveprobe uses to walk
// the DaVinci Resolve scripting object graph.
//
// Each node kind of the scripting API (application, project manager, project,
// timeline, media pool, folder) is a Go interface whose methods return the next
// node or a scalar summary. Navigation is therefore checked at compile time:
// a timeline query can only be issued against a Timeline value.
//
// Implementations:
//   - bridge: the real entry point, driving the Resolve Python scripting module
//   - fixture: an in-memory graph used by tests and the --fixture CLI mode
//
// Methods that look up an optional node (CurrentProject, CurrentTimeline)
// return a nil interface and a nil error when the node does not exist. Every
// other nil result is treated by callers as a failed query.
package resolve
