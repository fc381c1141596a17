// File: errors.go
// Role: sentinel errors for the modelgen package.
package modelgen

import "errors"

// ErrTooFewVariables indicates Config.Variables is below the minimum of 1.
var ErrTooFewVariables = errors.New("modelgen: too few variables")

// ErrNeedRandSource indicates Config.Rand is nil.
var ErrNeedRandSource = errors.New("modelgen: rng is required")

// ErrInvalidFraction indicates Config.LatentFraction is outside [0, 1].
var ErrInvalidFraction = errors.New("modelgen: fraction not in [0,1]")
