// Package report accumulates stage outcomes and renders the diagnostic
// verdict.
//
// Reporter satisfies probe.Recorder so a chain can feed it directly. The
// verdict is the most severe outcome recorded; since only the connection
// stage can be Fatal, a Fatal verdict always means the run was blocked
// before any other stage ran. Renderers write plain text status lines,
// a go-pretty table, or JSON.
package report
