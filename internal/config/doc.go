// Package config loads, normalizes, and validates resolveprobe configuration.
//
// It supplies per-platform defaults for the DaVinci Resolve scripting paths,
// expands user paths (including tilde shortcuts), reads TOML files, and honours
// the environment variables Resolve's own documentation asks users to export
// (RESOLVE_SCRIPT_API, RESOLVE_SCRIPT_LIB). The resulting Config is handed to
// the scripting bridge once; nothing in resolveprobe mutates the process
// environment.
package config
