// File: paths.go
// Role: the undirected "skeleton" walk shared by d-separation and backdoor
// analysis — simple-path enumeration with per-vertex role classification
// (chain, fork, collider), and the blocking test spec §4.2 defines in terms
// of that role plus a conditioning set Z.
//
// Path memory (a visited-set threaded through the recursion) keeps every
// emitted path simple, the same discipline the dfs three-color idiom uses
// to avoid revisiting vertices during traversal.
package dag

import "sort"

// Path is an ordered vertex sequence, endpoints inclusive.
type Path []string

// edgeInto reports whether a is a parent of b, i.e. the model has a directed
// edge a -> b.
func edgeInto(g Graph, a, b string) bool {
	for _, p := range g.Parents(b) {
		if p == a {
			return true
		}
	}
	return false
}

// skeletonNeighbors returns every vertex adjacent to v in the undirected
// skeleton (parents ∪ children), sorted for deterministic traversal order.
func skeletonNeighbors(g Graph, v string) []string {
	ps := g.Parents(v)
	cs := g.Children(v)
	seen := make(map[string]bool, len(ps)+len(cs))
	out := make([]string, 0, len(ps)+len(cs))
	for _, n := range append(append([]string(nil), ps...), cs...) {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// allSimplePaths enumerates every simple path from src to dst in the
// undirected skeleton of m via DFS with path memory. Order is deterministic:
// neighbors are visited in lexicographic order.
func allSimplePaths(g Graph, src, dst string) []Path {
	var out []Path
	onPath := map[string]bool{src: true}
	var walk func(cur string, path Path)
	walk = func(cur string, path Path) {
		if cur == dst {
			cp := append(Path(nil), path...)
			out = append(out, cp)
			return
		}
		for _, next := range skeletonNeighbors(g, cur) {
			if onPath[next] {
				continue
			}
			onPath[next] = true
			walk(next, append(path, next))
			delete(onPath, next)
		}
	}
	walk(src, Path{src})
	return out
}

// role classifies the middle vertex v of a path segment u - v - w by the
// direction of its two incident path edges.
type role int

const (
	roleChain role = iota
	roleFork
	roleCollider
)

func classify(g Graph, u, v, w string) role {
	uIntoV := edgeInto(g, u, v)
	wIntoV := edgeInto(g, w, v)
	switch {
	case uIntoV && wIntoV:
		return roleCollider
	case !uIntoV && !wIntoV:
		return roleFork
	default:
		return roleChain
	}
}

// blocked reports whether path is blocked by conditioning set z, per spec
// §4.2: blocked at v iff (v is a chain/fork and v ∈ Z) or (v is a collider
// and neither v nor any descendant of v is in Z).
func blocked(g Graph, path Path, z map[string]bool) bool {
	for i := 1; i < len(path)-1; i++ {
		u, v, w := path[i-1], path[i], path[i+1]
		switch classify(g, u, v, w) {
		case roleChain, roleFork:
			if z[v] {
				return true
			}
		case roleCollider:
			if !colliderActive(g, v, z) {
				return true
			}
		}
	}
	return false
}

// colliderActive reports whether a collider v (or one of its descendants)
// is in z, i.e. conditioning on it (or a descendant) opens the path.
func colliderActive(g Graph, v string, z map[string]bool) bool {
	if z[v] {
		return true
	}
	for d := range Descendants(g, v) {
		if z[d] {
			return true
		}
	}
	return false
}
