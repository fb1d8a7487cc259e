package resolve

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModuleNotFound marks a scripting module that could not be imported.
	ErrModuleNotFound = errors.New("scripting module not found")
	// ErrAppUnreachable marks an application that did not answer the entry call.
	ErrAppUnreachable = errors.New("application unreachable")
	// ErrCallFailed marks a scripting call that raised or returned an error.
	ErrCallFailed = errors.New("scripting call failed")
	// ErrNoResult marks a scripting call that returned nothing where a value
	// was required.
	ErrNoResult = errors.New("no result")
)

// Wrap builds an error tagged with marker and annotated with the node and
// operation that produced it. The marker should be one of the sentinels above.
func Wrap(marker error, node, operation string, err error) error {
	if marker == nil {
		marker = ErrCallFailed
	}
	detail := buildDetail(node, operation)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(node, operation string) string {
	parts := make([]string, 0, 2)
	if node = strings.TrimSpace(node); node != "" {
		parts = append(parts, node)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "scripting call"
	}
	return strings.Join(parts, ".")
}
