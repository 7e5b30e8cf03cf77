package query

import (
	"sort"
	"strings"
)

// MatchesAny reports whether value belongs to the allowed set. Membership
// within one filter dimension is an OR; an empty set means the dimension is
// unfiltered. Filters across dimensions combine with AND at the call site.
func MatchesAny(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

// MatchesSearch reports whether the needle occurs in any of the fields,
// case-insensitively, using plain substring containment. An empty needle
// matches everything.
func MatchesSearch(needle string, fields ...string) bool {
	needle = strings.TrimSpace(strings.ToLower(needle))
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Options normalizes raw values into a filter dropdown list: trimmed, empties
// dropped, deduplicated and sorted lexicographically. It must be fed the
// post-access, pre-text-filter dataset so the options stay consistent with
// what is actually queryable.
func Options(values []string) []string {
	seen := map[string]struct{}{}
	options := []string{}
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		options = append(options, trimmed)
	}
	sort.Strings(options)
	return options
}
