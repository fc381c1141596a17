// File: errors.go
// Role: sentinel errors for the calculus package.
package calculus

import "errors"

// ErrDoCalculusFailed indicates the iterative-deepening search exhausted its
// depth bound or step budget without eliminating every do(·).
var ErrDoCalculusFailed = errors.New("calculus: search exhausted without a do-free expression")

// ErrInconsistentDeconfounding indicates the "all" deconfounding-set policy
// observed divergent numeric answers across admissible sets.
var ErrInconsistentDeconfounding = errors.New("calculus: deconfounding sets disagree beyond tolerance")
