// Package fixture provides an in-memory resolve.Entry backed by a declarative
// object graph.
//
// Graphs are written in TOML (or built directly in Go) and describe the
// application, the open project, its timelines and media pool. Faults can be
// injected per method ("Project.MediaPool" = "message") to simulate a
// scripting call that raises, and nil_results lists methods that return
// nothing. The backend never mutates its graph, so repeated runs observe the
// same state.
package fixture
