// Package model defines the in-memory representation of a discrete causal
// Bayesian network: Variable, CPT (conditional probability table), Model,
// and the Observation/Intervention assertions used to build a Query.
//
// A Model is built once — from a parsed file or an in-memory description —
// and is immutable afterward. Construction validates the full set of
// structural invariants up front (duplicate names, unresolved parents,
// latent-parent ordering, acyclicity, CPT completeness and normalization)
// so that every other layer (graph analysis, evaluation, do-calculus) can
// treat a *Model as trustworthy without re-checking it.
//
// Derived artifacts — the root set, the latent set, a topological order,
// and the children adjacency — are computed lazily on first use and cached
// for the Model's lifetime, guarded by a read/write mutex so a Model may be
// shared across goroutines for read-only queries.
//
//	go get github.com/gocausal/docalc/model
package model
