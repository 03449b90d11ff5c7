// Package loc counts meaningful lines of source code
package loc

import "strings"

// commentPrefixes are the markers that disqualify a line. The set is
// deliberately language-agnostic: it covers C-style and hash comments
// without lexing, which means a line starting with `*` inside a string
// literal is miscounted. That approximation is part of the contract.
var commentPrefixes = []string{"//", "#", "/*", "*", "*/"}

// Count returns the number of lines in code that are non-blank and do
// not open with a known comment prefix.
func Count(code string) int {
	count := 0
	for _, line := range strings.Split(code, "\n") {
		if Meaningful(line) {
			count++
		}
	}
	return count
}

// Meaningful reports whether a single line counts toward the total.
func Meaningful(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return false
		}
	}
	return true
}
