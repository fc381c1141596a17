// Package calculus implements the do-calculus inference engine (spec §4.4,
// §4.5): a symbolic expression algebra (Prob/Product/Sum/Literal) plus
// Pearl's three rewrite rules and the marginalization rule, driven by an
// iterative-deepening search that eliminates every do(·) from a query's
// symbolic form. The resulting do-free expression is handed to the eval
// package for numeric evaluation (spec §4.6).
package calculus
