// File: deconfound.go
// Role: deconfounding-set search (spec §4.2): given disjoint X, Y, find sets
// Z ⊆ V \ (X ∪ Y ∪ Descendants(X)) that block every backdoor path from X to
// Y. Subsets of the candidate pool are enumerated in nondecreasing size;
// under DeconfoundOptions.MinimalSets, any candidate that is a superset of
// an already-accepted set is skipped (no proper subset also blocks), and
// results are reported minimal-by-inclusion only.
//
// Worst-case exponential in pool size; acceptable because the pool excludes
// the query variables and X's descendants from a deliberately small graph.
package dag

import "sort"

// DeconfoundOptions configures DeconfoundingSets.
type DeconfoundOptions struct {
	// MinimalSets restricts the result to sets that are minimal by set
	// inclusion (no proper subset in the result also blocks).
	MinimalSets bool
}

// DeconfoundingSets returns every (or, under MinimalSets, every minimal)
// subset of the admissible candidate pool that blocks all backdoor paths
// from x to y. Results are ordered by size then lexicographically by the
// sorted member tuple, for reproducibility.
func DeconfoundingSets(g Graph, x, y map[string]bool, opts DeconfoundOptions) []map[string]bool {
	pool := candidatePool(g, x, y)
	sort.Strings(pool)

	var results []map[string]bool
	for size := 0; size <= len(pool); size++ {
		for _, combo := range combinations(pool, size) {
			z := ToSet(combo)
			if opts.MinimalSets && supersetOfAny(z, results) {
				continue // a proper subset already blocks; superset is non-minimal
			}
			if len(BackdoorPaths(g, x, y, z)) == 0 {
				results = append(results, z)
			}
		}
	}
	return results
}

// candidatePool returns V \ (X ∪ Y ∪ descendants(X)).
func candidatePool(g Graph, x, y map[string]bool) []string {
	descX := DescendantsOf(g, x)
	exclude := union(x, y, descX)
	var pool []string
	for _, v := range g.Variables() {
		if !exclude[v] {
			pool = append(pool, v)
		}
	}
	return pool
}

// supersetOfAny reports whether z is a (non-strict) superset of any set
// already present in accepted.
func supersetOfAny(z map[string]bool, accepted []map[string]bool) bool {
	for _, a := range accepted {
		if isSubset(a, z) {
			return true
		}
	}
	return false
}

func isSubset(a, b map[string]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// combinations returns every size-k subset of sorted pool, each itself
// sorted, in lexicographic order of member tuples.
func combinations(pool []string, k int) [][]string {
	if k == 0 {
		return [][]string{{}}
	}
	if k > len(pool) {
		return nil
	}
	var out [][]string
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]string, k)
		for i, ix := range idx {
			combo[i] = pool[ix]
		}
		out = append(out, combo)

		// Advance to next combination (standard revolving-door style).
		i := k - 1
		for i >= 0 && idx[i] == i+len(pool)-k {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}
