// Package dag implements the pure graph-analysis queries the do-calculus
// engine relies on: topological facts, ancestor/descendant reachability,
// d-separation (Bayes-Ball blocking), backdoor-path enumeration, and
// minimal deconfounding-set search.
//
// Every function here is a pure function of an immutable *model.Model (plus,
// where noted, an edge-severed View of it); none of them mutate the model
// or hold long-lived state. Iteration order is always deterministic: vertex
// sets are converted to lexicographically sorted slices before traversal,
// so results are reproducible across runs.
package dag
