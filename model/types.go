// File: types.go
// Role: core data types — Variable, CPTRow, CPT, Model — and the sentinel
// shape of a model built by NewModel.
//
// Concurrency:
//   - A *Model is immutable after NewModel returns, except for the lazily
//     computed derived caches (see derived.go), which are guarded by muDerived.
package model

import "sync"

// DefaultTolerance is the default slack allowed when checking that a CPT row
// group's probabilities sum to 1.0.
const DefaultTolerance = 1e-5

// Variable is a single discrete random variable in the causal network.
//
// Outcomes is the ordered list of distinct labels this variable may take.
// Parents is the ordered list of parent variable names; observable parents
// appear first, latent parents (parents with no CPT of their own) last.
// Table is nil iff the variable itself is latent (unobserved, no CPT).
type Variable struct {
	// Name uniquely identifies this variable within its Model.
	Name string

	// Outcomes is the ordered, pairwise-distinct set of labels this variable
	// may take.
	Outcomes []string

	// Parents is the ordered list of parent variable names. Observable
	// parents precede latent parents.
	Parents []string

	// Table holds the conditional probability table for this variable, or
	// nil if the variable is latent.
	Table *CPT
}

// IsLatent reports whether v carries no CPT (i.e., is unobserved).
func (v *Variable) IsLatent() bool { return v.Table == nil }

// outcomeIndex returns the position of outcome within v.Outcomes, or -1.
func (v *Variable) outcomeIndex(outcome string) int {
	for i, o := range v.Outcomes {
		if o == outcome {
			return i
		}
	}
	return -1
}

// CPTRow is one row of a conditional probability table: the probability that
// the owning variable takes Outcome given ParentOutcomes (ordered identically
// to the variable's Parents list).
type CPTRow struct {
	Outcome        string
	ParentOutcomes []string
	Probability    float64
}

// CPT is a total function from (own-outcome, parent-outcome-tuple) to a
// probability in [0, 1], stored as an explicit row list plus an index for
// O(1) lookup by parent assignment.
//
// Invariant (enforced at construction, see build.go): for each fixed
// parent-outcome tuple, the probabilities across all of the variable's
// outcomes sum to 1 within DefaultTolerance (or a caller-supplied tolerance),
// and the table contains exactly one row per (outcome × full parent-outcome
// cross product).
type CPT struct {
	Rows []CPTRow

	// index maps a canonical parent-assignment key (see cptKey) to the
	// per-outcome probability for fast lookup.
	index map[string]map[string]float64
}

// Probability returns the probability of ownOutcome given parentAssignment
// (ordered as the variable's Parents). The second return is false if no such
// row exists in the table.
func (c *CPT) Probability(ownOutcome string, parentAssignment []string) (float64, bool) {
	byOutcome, ok := c.index[cptKey(parentAssignment)]
	if !ok {
		return 0, false
	}
	p, ok := byOutcome[ownOutcome]
	return p, ok
}

// Model is an immutable mapping from variable name to *Variable, plus an
// optional human-readable name. Derived artifacts (roots, latents,
// topological order, children adjacency) are computed lazily and cached.
type Model struct {
	// Name is an optional, human-readable label for the model.
	Name string

	vars map[string]*Variable

	// order is the deterministic declaration order of variable names,
	// preserved for reproducible iteration where the spec does not demand
	// sorted output.
	order []string

	muDerived sync.RWMutex
	roots     map[string]bool
	latents   map[string]bool
	topo      []string
	children  map[string][]string
	derived   bool // true once roots/latents/topo/children are populated
}

// Variables returns the model's variable names in declaration order.
func (m *Model) Variables() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Variable returns the named variable, or (nil, false) if absent.
func (m *Model) Variable(name string) (*Variable, bool) {
	v, ok := m.vars[name]
	return v, ok
}
