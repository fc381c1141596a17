// File: views.go
// Role: edge-severed views of a Graph — G_X̄ (X's incoming edges removed)
// and G_X̄W̲ (X's incoming and W's outgoing edges removed) — the two graphs
// do-calculus Rules 1–3 test d-separation against (spec §4.5). A View never
// mutates its base Graph; it is a thin read-only filter, the same
// non-mutating-view discipline the parent lineage's induced-subgraph helpers
// use.
package dag

// View is a Graph whose Parents/Children answers are filtered to simulate
// edge removal, without copying or mutating the underlying Graph.
type View struct {
	base       Graph
	noIncoming map[string]bool // vertices whose incoming edges are severed
	noOutgoing map[string]bool // vertices whose outgoing edges are severed
}

// WithoutIncoming returns G_X̄: the view of g with every edge into a member
// of x removed.
func WithoutIncoming(g Graph, x map[string]bool) *View {
	return &View{base: g, noIncoming: x}
}

// WithoutIncomingAndOutgoing returns G_X̄W̲: G_X̄ with every edge out of a
// member of w additionally removed.
func WithoutIncomingAndOutgoing(g Graph, x, w map[string]bool) *View {
	return &View{base: g, noIncoming: x, noOutgoing: w}
}

// Variables delegates to the base Graph; severing edges never removes a
// vertex.
func (v *View) Variables() []string { return v.base.Variables() }

// Parents returns name's parents with any severed-outgoing vertex excluded
// as a parent of anyone, and name itself reporting no parents if its
// incoming edges are severed.
func (v *View) Parents(name string) []string {
	if v.noIncoming[name] {
		return nil
	}
	ps := v.base.Parents(name)
	if len(v.noOutgoing) == 0 {
		return ps
	}
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if !v.noOutgoing[p] {
			out = append(out, p)
		}
	}
	return out
}

// Children returns name's children with any severed-incoming vertex
// excluded as a child of anyone, and name itself reporting no children if its outgoing edges are
// severed.
func (v *View) Children(name string) []string {
	if v.noOutgoing[name] {
		return nil
	}
	cs := v.base.Children(name)
	if len(v.noIncoming) == 0 {
		return cs
	}
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		if !v.noIncoming[c] {
			out = append(out, c)
		}
	}
	return out
}

// AncestralClosure returns names ∪ AncestorsOf(g, names) — the set and
// everything above it, used by Rule 3's w̄(z) = W \ ancestors(Z) in G_X̄.
func AncestralClosure(g Graph, names map[string]bool) map[string]bool {
	return union(names, AncestorsOf(g, names))
}
