// File: errors.go
// Role: sentinel errors for the model package.
//
// Error policy (explicit and strict):
//   - Only sentinel variables (package-level) are exposed.
//   - Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are never wrapped with formatted strings at definition site;
//     call sites attach context with fmt.Errorf("...: %w", ErrX).
package model

import "errors"

// ErrEmptyVariableName indicates a variable was declared with an empty name.
var ErrEmptyVariableName = errors.New("model: variable name is empty")

// ErrDuplicateVariable indicates the same variable name was declared twice.
var ErrDuplicateVariable = errors.New("model: duplicate variable name")

// ErrUnknownParent indicates a parent name does not resolve to a declared variable.
var ErrUnknownParent = errors.New("model: unknown parent variable")

// ErrLatentOrder indicates a latent (table-less) parent appears before an
// observable parent in a variable's parent list.
var ErrLatentOrder = errors.New("model: latent parents must be ordered last")

// ErrCyclicGraph indicates the parent relation induces a cycle; no topological
// order exists.
var ErrCyclicGraph = errors.New("model: cyclic parent graph")

// ErrMalformedTable indicates a CPT is incomplete, has extraneous rows, or a
// parent-outcome slice fails to sum to 1 within tolerance.
var ErrMalformedTable = errors.New("model: malformed conditional probability table")

// ErrUnknownVariable indicates a query or API call referenced a variable name
// absent from the model.
var ErrUnknownVariable = errors.New("model: unknown variable")

// ErrUnknownOutcome indicates a query referenced an outcome label not declared
// for the given variable.
var ErrUnknownOutcome = errors.New("model: unknown outcome")

// ErrQueryShape indicates a Query's Head and Body assert the same variable
// more than once across Head ∪ Body.
var ErrQueryShape = errors.New("model: head and body overlap on a variable")
