// Package text holds small string-matching helpers shared by the
// catalog filter, the pantry search, and the ingredient picker.
package text

import "strings"

// ContainsFold reports whether substr is contained in s, ignoring
// case. An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// EqualFold reports case-insensitive string equality.
func EqualFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// FilterFold returns the items containing substr, ignoring case.
// Input order is preserved; the input slice is never mutated.
func FilterFold(items []string, substr string) []string {
	if substr == "" {
		return items
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if ContainsFold(item, substr) {
			out = append(out, item)
		}
	}
	return out
}
