// Package rules collects the ignore/include pattern sources of a project and
// reduces them to the effective exclusion RuleSet.
//
// Three sources contribute: built-in defaults, the repository ignore file
// and the re-include file. The effective set is (defaults ∪ ignored) − included
// where subtraction is by exact pattern text. A re-include line only takes
// effect when it reproduces an exclusion pattern verbatim; it never un-ignores
// paths by matching them.
package rules

// RuleSet is a deduplicated, insertion-ordered set of gitignore-style patterns.
// The zero value is an empty set.
type RuleSet struct {
	patterns []string
	index    map[string]struct{}
}

// New builds a RuleSet from patterns, keeping the first occurrence of each.
func New(patterns ...string) RuleSet {
	var rs RuleSet
	for _, p := range patterns {
		rs.add(p)
	}
	return rs
}

func (rs *RuleSet) add(p string) {
	if rs.index == nil {
		rs.index = make(map[string]struct{})
	}
	if _, ok := rs.index[p]; ok {
		return
	}
	rs.index[p] = struct{}{}
	rs.patterns = append(rs.patterns, p)
}

// Patterns returns a copy of the patterns in insertion order.
func (rs RuleSet) Patterns() []string {
	out := make([]string, len(rs.patterns))
	copy(out, rs.patterns)
	return out
}

// Len returns the number of patterns.
func (rs RuleSet) Len() int {
	return len(rs.patterns)
}

// Contains reports whether p is in the set by exact string.
func (rs RuleSet) Contains(p string) bool {
	_, ok := rs.index[p]
	return ok
}

// Union returns rs followed by the patterns of other not already present.
func (rs RuleSet) Union(other RuleSet) RuleSet {
	out := New(rs.patterns...)
	for _, p := range other.patterns {
		out.add(p)
	}
	return out
}

// Subtract returns rs without any pattern present in other.
func (rs RuleSet) Subtract(other RuleSet) RuleSet {
	var out RuleSet
	for _, p := range rs.patterns {
		if !other.Contains(p) {
			out.add(p)
		}
	}
	return out
}
