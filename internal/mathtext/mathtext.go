// Package mathtext cleans up math-bearing strings before they are persisted:
// collapsed whitespace and consistent spacing around binary operators, so
// stems and options render the same regardless of how they were authored.
package mathtext

import (
	"regexp"
	"strings"
)

var (
	spaceRun = regexp.MustCompile(`\s+`)
	// binary operators between two values, e.g. "3+4" or "x =y". Unary minus
	// ("-3") is left alone by requiring a value on both sides, and "/" is
	// excluded so fractions stay tight.
	binaryOp = regexp.MustCompile(`([0-9a-zA-Z)\]])\s*([+\-=<>*±×÷])\s*([0-9a-zA-Z(\[])`)
)

// Normalize returns s with whitespace runs collapsed to single spaces,
// single spaces around binary operators, and leading/trailing space trimmed.
// Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = spaceRun.ReplaceAllString(s, " ")
	// Two passes: the match consumes the right-hand character, so adjacent
	// operators ("a+b+c") need a second sweep.
	for i := 0; i < 2; i++ {
		s = binaryOp.ReplaceAllString(s, "$1 $2 $3")
	}
	return strings.TrimSpace(s)
}

// NormalizeMap applies Normalize to every value of a string map, returning a
// new map. A nil input stays nil.
func NormalizeMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = Normalize(v)
	}
	return out
}
