// Package modelgen generates random discrete Bayesian networks for tests
// and benchmarks, in the spirit of the teacher repository's stochastic
// graph constructors (builder.RandomSparse et al.): deterministic vertex
// order, an injected RNG, and only sentinel errors — never a panic at
// runtime.
package modelgen
