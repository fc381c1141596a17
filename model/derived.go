// File: derived.go
// Role: lazily computed, cached derived artifacts over the immutable parent
// relation: roots, latents, a topological order, and the children adjacency.
//
// Concurrency:
//   - Guarded by muDerived. The common path takes an RLock; the first caller
//     to find the cache empty upgrades to a write lock and populates it once.
package model

import "sort"

// topologicalSort computes a deterministic topological order of m's
// variables via Kahn's algorithm, always breaking ties by lexicographically
// smallest available name (spec §8, property S6: the returned order is the
// lexicographically smallest one consistent with the DAG edges).
//
// Returns ErrCyclicGraph if the parent relation is not acyclic.
func topologicalSort(m *Model) ([]string, error) {
	children := make(map[string][]string, len(m.order))
	indegree := make(map[string]int, len(m.order))
	for _, n := range m.order {
		indegree[n] = 0
	}
	for _, n := range m.order {
		v := m.vars[n]
		for _, p := range v.Parents {
			children[p] = append(children[p], n)
			indegree[n]++
		}
	}

	// Ready set ordered as a min-heap-by-name via a sorted slice; small graphs
	// (spec's stated scale) make a linear scan-and-sort simpler and just as
	// deterministic as a real heap.
	var ready []string
	for _, n := range m.order {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(m.order))
	for len(ready) > 0 {
		// Pop lexicographically smallest.
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		var newlyReady []string
		for _, c := range children[next] {
			indegree[c]--
			if indegree[c] == 0 {
				newlyReady = append(newlyReady, c)
			}
		}
		if len(newlyReady) > 0 {
			ready = append(ready, newlyReady...)
			sort.Strings(ready)
		}
	}

	if len(order) != len(m.order) {
		return nil, ErrCyclicGraph
	}
	return order, nil
}

// ensureDerived populates roots/latents/topo/children exactly once.
func (m *Model) ensureDerived() {
	m.muDerived.RLock()
	if m.derived {
		m.muDerived.RUnlock()
		return
	}
	m.muDerived.RUnlock()

	m.muDerived.Lock()
	defer m.muDerived.Unlock()
	if m.derived {
		return // another goroutine won the race
	}

	topo, err := topologicalSort(m)
	if err != nil {
		// NewModel already validated acyclicity; this would indicate the
		// Model was mutated after construction, which the package forbids.
		panic("model: topologicalSort failed on an already-validated Model: " + err.Error())
	}

	roots := make(map[string]bool)
	latents := make(map[string]bool)
	children := make(map[string][]string, len(m.order))
	for _, n := range m.order {
		v := m.vars[n]
		if len(v.Parents) == 0 {
			roots[n] = true
		}
		if v.IsLatent() {
			latents[n] = true
		}
		for _, p := range v.Parents {
			children[p] = append(children[p], n)
		}
	}
	for n := range children {
		sort.Strings(children[n])
	}

	m.topo = topo
	m.roots = roots
	m.latents = latents
	m.children = children
	m.derived = true
}

// TopologicalOrder returns a deterministic topological order of the model's
// variables (spec §6 topological_order()).
func (m *Model) TopologicalOrder() []string {
	m.ensureDerived()
	out := make([]string, len(m.topo))
	copy(out, m.topo)
	return out
}

// Roots returns the set of variables with no parents.
func (m *Model) Roots() map[string]bool {
	m.ensureDerived()
	return m.roots
}

// Latents returns the set of variables with no CPT.
func (m *Model) Latents() map[string]bool {
	m.ensureDerived()
	return m.latents
}

// Children returns the direct children of name, in sorted order.
func (m *Model) Children(name string) []string {
	m.ensureDerived()
	out := make([]string, len(m.children[name]))
	copy(out, m.children[name])
	return out
}

// Parents returns the declared parent list of name (nil if name is unknown),
// preserving the observable-then-latent ordering invariant.
func (m *Model) Parents(name string) []string {
	v, ok := m.vars[name]
	if !ok {
		return nil
	}
	out := make([]string, len(v.Parents))
	copy(out, v.Parents)
	return out
}

// IsLatent reports whether name is a latent variable. Panics-free: unknown
// names report false.
func (m *Model) IsLatent(name string) bool {
	v, ok := m.vars[name]
	return ok && v.IsLatent()
}

// Outcomes returns the declared outcome labels of name.
func (m *Model) Outcomes(name string) []string {
	v, ok := m.vars[name]
	if !ok {
		return nil
	}
	out := make([]string, len(v.Outcomes))
	copy(out, v.Outcomes)
	return out
}

// Probability reads P(name = ownOutcome | parents = parentAssignment)
// directly from name's CPT. ok is false if name is latent, the outcome is
// unknown, or no matching row exists.
func (m *Model) Probability(name, ownOutcome string, parentAssignment []string) (p float64, ok bool) {
	v, exists := m.vars[name]
	if !exists || v.Table == nil {
		return 0, false
	}
	return v.Table.Probability(ownOutcome, parentAssignment)
}
