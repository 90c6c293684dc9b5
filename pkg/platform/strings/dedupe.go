// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrimUpper removes duplicates and empty strings from a slice,
// trimming and upper-casing each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrimUpper([]string{" email ", "PHONE", "Email", ""})
//	// Returns: []string{"EMAIL", "PHONE"}
func DedupeAndTrimUpper(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		normalized := strings.ToUpper(strings.TrimSpace(v))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; !ok {
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
	}

	return result
}
