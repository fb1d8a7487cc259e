// Package diagnose defines the DaVinci Resolve probe sequence.
//
// Run walks the scripting object graph one edge per stage: it attaches to
// the application, then descends through the project manager into the
// current project and fans out into the timeline, media pool and track
// branches. Every stage records exactly one outcome on the supplied chain.
// A stage whose dependency is absent is skipped with a Warning; a stage
// whose query fails leaves its own dependents skipped but does not affect
// sibling branches. Only a failed connection halts the run.
//
// Plan returns the same sequence as data so callers can list it without
// touching the application.
package diagnose
