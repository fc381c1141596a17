// File: dsep.go
// Role: d-separation (spec §4.2): X ⊥ Y | Z iff every path between some
// x ∈ X and some y ∈ Y is blocked by Z.
package dag

// DSeparated reports whether X and Y are d-separated given Z in g.
func DSeparated(g Graph, x, y, z map[string]bool) bool {
	for _, xi := range SortedKeys(x) {
		for _, yi := range SortedKeys(y) {
			if xi == yi {
				return false
			}
			for _, p := range allSimplePaths(g, xi, yi) {
				if !blocked(g, p, z) {
					return false
				}
			}
		}
	}
	return true
}
