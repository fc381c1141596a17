// File: build.go
// Role: Model construction and validation (spec §4.1).
//
// NewModel performs, in order:
//  1. Interning of variable names (rejecting duplicates).
//  2. Parent resolution (every parent name must resolve; latent parents
//     must be ordered last in any child's parent list).
//  3. CPT completeness and normalization (ErrMalformedTable), within a
//     configurable tolerance.
//  4. Acyclicity verification via topological sort (ErrCyclicGraph).
//
// Validation is strict and up-front: once NewModel returns a *Model, every
// other package in this module may assume the invariants hold without
// re-checking them.
package model

import (
	"fmt"
	"sort"
)

// VarSpec is the parsed, pre-validation description of one variable, shaped
// to mirror the external file schema (spec §6): outcomes, optional parents,
// optional table. A nil Table marks the variable latent.
type VarSpec struct {
	Outcomes []string
	Parents  []string
	Table    []CPTRow
}

// Option configures NewModel's validation behavior.
type Option func(*buildConfig)

type buildConfig struct {
	tolerance float64
}

// WithTolerance overrides the default CPT row-sum tolerance (DefaultTolerance).
func WithTolerance(tol float64) Option {
	return func(c *buildConfig) { c.tolerance = tol }
}

// NewModel validates specs and constructs an immutable *Model.
//
// Complexity: O(V + E + R) where V is variable count, E is total parent
// edges, and R is total CPT row count across all variables.
func NewModel(name string, specs map[string]VarSpec, opts ...Option) (*Model, error) {
	cfg := buildConfig{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Stage 1: intern variable names in a deterministic (sorted) declaration
	// order so Model.Variables() is reproducible regardless of map iteration.
	names := make([]string, 0, len(specs))
	for n := range specs {
		if n == "" {
			return nil, ErrEmptyVariableName
		}
		names = append(names, n)
	}
	sort.Strings(names)

	m := &Model{
		Name:  name,
		vars:  make(map[string]*Variable, len(names)),
		order: names,
	}

	for _, n := range names {
		spec := specs[n]
		if len(distinct(spec.Outcomes)) != len(spec.Outcomes) {
			return nil, fmt.Errorf("%s: duplicate outcome label: %w", n, ErrMalformedTable)
		}
		v := &Variable{Name: n, Outcomes: append([]string(nil), spec.Outcomes...), Parents: append([]string(nil), spec.Parents...)}
		m.vars[n] = v
	}

	// Stage 2: resolve parents and enforce latent-last ordering.
	for _, n := range names {
		v := m.vars[n]
		seenLatent := false
		for _, p := range v.Parents {
			if _, ok := m.vars[p]; !ok {
				return nil, fmt.Errorf("%s: parent %q: %w", n, p, ErrUnknownParent)
			}
			if specs[p].Table == nil {
				seenLatent = true
			} else if seenLatent {
				return nil, fmt.Errorf("%s: parent %q: %w", n, p, ErrLatentOrder)
			}
		}
	}

	// Variables gain their CPT only after parent ordering is resolved, since
	// row validation needs the (already-ordered) parent list.
	for _, n := range names {
		spec := specs[n]
		if spec.Table == nil {
			continue // latent: no CPT
		}
		v := m.vars[n]
		cpt, err := buildCPT(v, spec.Table, cfg.tolerance, m.vars)
		if err != nil {
			return nil, err
		}
		v.Table = cpt
	}

	// Stage 4: acyclicity, via topological sort over the parent relation.
	if _, err := topologicalSort(m); err != nil {
		return nil, err
	}

	return m, nil
}

// buildCPT validates completeness and row-group normalization, then builds
// the lookup index. vars supplies every variable's Outcomes (including v's
// parents) so the full parent-outcome cross product can be enumerated.
func buildCPT(v *Variable, rows []CPTRow, tolerance float64, vars map[string]*Variable) (*CPT, error) {
	index := make(map[string]map[string]float64)
	for _, r := range rows {
		if v.outcomeIndex(r.Outcome) == -1 {
			return nil, fmt.Errorf("%s: row outcome %q: %w", v.Name, r.Outcome, ErrMalformedTable)
		}
		if len(r.ParentOutcomes) != len(v.Parents) {
			return nil, fmt.Errorf("%s: row for %q: parent-outcome arity mismatch: %w", v.Name, r.Outcome, ErrMalformedTable)
		}
		if r.Probability < 0 || r.Probability > 1 {
			return nil, fmt.Errorf("%s: row for %q: probability %v out of [0,1]: %w", v.Name, r.Outcome, r.Probability, ErrMalformedTable)
		}
		key := cptKey(r.ParentOutcomes)
		byOutcome, ok := index[key]
		if !ok {
			byOutcome = make(map[string]float64, len(v.Outcomes))
			index[key] = byOutcome
		}
		if _, dup := byOutcome[r.Outcome]; dup {
			return nil, fmt.Errorf("%s: duplicate row for outcome %q, parents %v: %w", v.Name, r.Outcome, r.ParentOutcomes, ErrMalformedTable)
		}
		byOutcome[r.Outcome] = r.Probability
	}

	// Completeness + normalization: every parent-assignment group must carry
	// exactly one row per outcome, summing to 1 within tolerance.
	for key, byOutcome := range index {
		if len(byOutcome) != len(v.Outcomes) {
			return nil, fmt.Errorf("%s: parent assignment %q has %d/%d outcome rows: %w", v.Name, key, len(byOutcome), len(v.Outcomes), ErrMalformedTable)
		}
		var sum float64
		for _, p := range byOutcome {
			sum += p
		}
		if diff := sum - 1.0; diff > tolerance || diff < -tolerance {
			return nil, fmt.Errorf("%s: parent assignment %q sums to %v (tolerance %v): %w", v.Name, key, sum, tolerance, ErrMalformedTable)
		}
	}

	// Every combination in the full parent-outcome cross product must appear,
	// not just the ones the supplied rows happened to cover: a row group
	// present above only confirms the groups it found are complete, not that
	// no group is missing entirely.
	for _, combo := range parentCombos(v.Parents, vars) {
		key := cptKey(combo)
		if _, ok := index[key]; !ok {
			return nil, fmt.Errorf("%s: missing CPT rows for parent assignment %v: %w", v.Name, combo, ErrMalformedTable)
		}
	}

	return &CPT{Rows: append([]CPTRow(nil), rows...), index: index}, nil
}

// parentCombos enumerates the full cross product of parents' outcomes, in
// the same combination order modelgen.Random uses to build a complete table.
func parentCombos(parents []string, vars map[string]*Variable) [][]string {
	combos := [][]string{{}}
	for _, p := range parents {
		outs := vars[p].Outcomes
		next := make([][]string, 0, len(combos)*len(outs))
		for _, c := range combos {
			for _, o := range outs {
				next = append(next, append(append([]string(nil), c...), o))
			}
		}
		combos = next
	}
	return combos
}

// distinct returns the unique elements of ss (order-preserving for the
// first occurrence); used only for duplicate detection.
func distinct(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// cptKey canonicalizes a parent-outcome tuple into a hashable, collision-safe
// string key. Parent order is already fixed by the variable's Parents list,
// so no sorting is needed here — only an unambiguous separator.
func cptKey(parentOutcomes []string) string {
	if len(parentOutcomes) == 0 {
		return ""
	}
	key := parentOutcomes[0]
	for _, p := range parentOutcomes[1:] {
		key += "\x1f" + p
	}
	return key
}
