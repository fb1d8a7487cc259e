// Package deps checks that the external executables resolveprobe shells out
// to can be found on PATH.
package deps
