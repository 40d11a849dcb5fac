// Package strings normalizes string slices read from storage and config.
package strings

import (
	"strings"
)

// Dedupe keeps the first occurrence of each value, preserving order. Values
// are compared exactly. An empty input yields nil.
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// FieldNames trims and lower-cases each value, drops blanks and removes
// duplicates, preserving first-seen order. An input with no usable names
// yields nil.
//
//	FieldNames([]string{" Lang ", "port43", "LANG", ""})
//	// []string{"lang", "port43"}
func FieldNames(values []string) []string {
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name := strings.ToLower(strings.TrimSpace(v)); name != "" {
			names = append(names, name)
		}
	}
	return Dedupe(names)
}
