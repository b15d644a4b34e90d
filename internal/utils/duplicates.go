package utils

import "github.com/samber/lo"

// SeenFilter keeps the first occurrence of every string in a stream
type SeenFilter struct {
	seen map[string]struct{}
}

// NewSeenFilter creates an empty filter
func NewSeenFilter() *SeenFilter {
	return &SeenFilter{seen: make(map[string]struct{})}
}

// ShouldInclude reports whether s has not been seen before, and marks it seen.
func (f *SeenFilter) ShouldInclude(s string) bool {
	if _, ok := f.seen[s]; ok {
		return false
	}
	f.seen[s] = struct{}{}
	return true
}

// WithoutDuplicates keeps the first instance of every word and retains the
// original order.
func WithoutDuplicates(words []string) []string {
	if len(words) == 0 {
		return []string{}
	}
	return lo.Uniq(words)
}
