// File: errors.go
// Role: sentinel errors for the eval package. Never wrapped with formatted
// strings at definition site; call sites attach context with fmt.Errorf.
package eval

import "errors"

// ErrZeroProbability indicates a Bayes-rule rewrite (§4.3 rule 6) divided by
// a denominator that evaluated to (within tolerance) zero.
var ErrZeroProbability = errors.New("eval: division by zero evaluating Bayes rewrite")

// ErrNumericDrift indicates an evaluated probability fell outside
// [0-ε, 1+ε].
var ErrNumericDrift = errors.New("eval: evaluated probability outside tolerance")
