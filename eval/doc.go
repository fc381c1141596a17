// Package eval implements the probability evaluator (spec §4.3): it answers
// interventionless queries P(Head | Body) over a *model.Model by recursively
// rewriting Head and marginalizing over unobserved parents, with a
// per-instance memoization cache keyed on the canonicalized (Head, Body)
// pair.
//
// The evaluator never sees do(·); the do-calculus layer is responsible for
// stripping every intervention before handing a Prob leaf here (spec §4.6).
package eval
