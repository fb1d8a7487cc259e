// Package probe implements the staged, dependency-ordered probing engine.
//
// A Probe is one named query that turns a dependency value into the next
// value. Handles carry those values between stages and record which stage
// produced them; an absent handle means the producing stage did not succeed.
// Step runs a single probe against its dependency handle and guarantees:
//
//   - an absent dependency is never dereferenced: the query is skipped and the
//     stage reports a Warning
//   - query errors and panics are converted to a Failure outcome and never
//     escape to the caller
//   - exactly one Outcome is emitted per stage through the chain's Recorder
//
// A Fatal result halts the chain; later Steps become no-ops.
package probe
