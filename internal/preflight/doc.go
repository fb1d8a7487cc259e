// Package preflight checks the local scripting environment before a probe
// run: the script API directory, the fusionscript library, the Python
// module directory and the interpreter that hosts the bridge.
//
// These checks run in two contexts:
//   - "resolveprobe env" prints every result as a status line.
//   - "resolveprobe run" logs failed checks at warn level before probing so
//     a Fatal connection outcome can be traced to a missing path.
//
// Checks never fail the run themselves; the probe chain decides the verdict.
package preflight
