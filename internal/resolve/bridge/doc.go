// Package bridge implements resolve.Entry against a running DaVinci Resolve.
//
// Resolve only exposes its scripting API to Python and Lua through the
// fusionscript library. The bridge runs a small embedded helper under the
// configured Python interpreter for every query: the helper imports
// DaVinciResolveScript, calls scriptapp, walks a navigation path and prints
// one JSON response. Handles on the Go side are those navigation paths, so a
// Project value is "GetProjectManager → GetCurrentProject" replayed from the
// application root. All calls are read-only queries.
//
// The child process environment (RESOLVE_SCRIPT_API, RESOLVE_SCRIPT_LIB,
// PYTHONPATH) is built from Config; the parent environment is never modified.
package bridge
