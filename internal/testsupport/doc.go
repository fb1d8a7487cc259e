// Package testsupport provides helpers shared by package tests: a config
// pointing at a throwaway Resolve install layout, stub interpreters, and
// environment isolation for config discovery.
package testsupport
