package textutil

import "fmt"

// Plural formats a count with its noun, adding "s" unless count is one.
func Plural(count int, noun string) string {
	return fmt.Sprintf("%d %s", count, Ternary(count == 1, noun, noun+"s"))
}
