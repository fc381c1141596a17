// File: sets.go
// Role: small deterministic set helpers shared by the graph-analysis queries.
//
// Determinism:
//   - SortedKeys is the single place that converts a map[string]bool into an
//     iteration order; every exported function routes through it before
//     looping, so output order never depends on map internals.
package dag

import "sort"

// ToSet builds a membership set from a name slice.
func ToSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// SortedKeys returns the members of s in ascending lexicographic order.
func SortedKeys(s map[string]bool) []string {
	out := make([]string, 0, len(s))
	for k, v := range s {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Disjoint reports whether a and b share no member (spec §4.2 disjoint(a,b)).
func Disjoint(a, b map[string]bool) bool {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	for k := range small {
		if large[k] {
			return false
		}
	}
	return true
}

// union returns a new set containing every member of sets.
func union(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, s := range sets {
		for k, v := range s {
			if v {
				out[k] = true
			}
		}
	}
	return out
}

// minus returns a \ b as a new set.
func minus(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a))
	for k, v := range a {
		if v && !b[k] {
			out[k] = true
		}
	}
	return out
}
