// File: backdoor.go
// Role: backdoor-path enumeration and blocking (spec §4.2).
//
// A backdoor path from X to Y is a simple path in the skeleton whose first
// edge is directed INTO some x ∈ X (i.e. the path "enters X from behind").
// BackdoorPaths returns the subset of such paths that remain unblocked under
// the given conditioning set z; an empty blockers set still filters out
// paths blocked by colliders, since an un-conditioned collider always
// blocks.
package dag

import "sort"

// BackdoorPaths enumerates every backdoor path from x to y that is NOT
// blocked by z, as ordered vertex sequences (endpoints inclusive). An empty
// result means all backdoor paths are blocked.
//
// Complexity: worst-case exponential in path count, acceptable for the small
// graphs this engine targets (spec §4.2).
func BackdoorPaths(g Graph, x, y, z map[string]bool) []Path {
	var out []Path
	for _, xi := range SortedKeys(x) {
		for _, yi := range SortedKeys(y) {
			if xi == yi {
				continue
			}
			for _, p := range allSimplePaths(g, xi, yi) {
				if len(p) < 2 {
					continue
				}
				// First edge must point INTO xi: p[1] is a parent of xi.
				if !edgeInto(g, p[1], xi) {
					continue
				}
				if !blocked(g, p, z) {
					out = append(out, p)
				}
			}
		}
	}
	sortPaths(out)
	return out
}

// sortPaths orders paths deterministically by their comma-joined vertex
// signature, for reproducible output regardless of set-iteration order.
func sortPaths(paths []Path) {
	sort.Slice(paths, func(i, j int) bool {
		return joinSig(paths[i]) < joinSig(paths[j])
	})
}

func joinSig(p Path) string {
	s := ""
	for i, v := range p {
		if i > 0 {
			s += ","
		}
		s += v
	}
	return s
}
