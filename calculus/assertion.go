// File: assertion.go
// Role: the symbolic counterpart of model.Assertion. Outcome may be empty,
// meaning "this reference is to a Sum's bound variable, not yet substituted
// with a concrete outcome" (spec §3, "Symbolic expression", well-formedness
// invariant). Once every enclosing Sum has substituted a concrete outcome,
// an AssertionSet converts losslessly to a model.AssertionSet for
// evaluation.
package calculus

import (
	"fmt"

	"github.com/gocausal/docalc/model"
)

// Assertion is a (variable, outcome) pair tagged Observed or Intervened,
// where Outcome == "" marks a still-unbound reference to an enclosing Sum's
// variable.
type Assertion struct {
	Variable string
	Outcome  string
	Flavor   model.Flavor
}

// AssertionSet is an ordered collection of Assertions.
type AssertionSet []Assertion

// Variables returns the distinct variable names asserted in s, in first-seen
// order.
func (s AssertionSet) Variables() []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, a := range s {
		if _, ok := seen[a.Variable]; ok {
			continue
		}
		seen[a.Variable] = struct{}{}
		out = append(out, a.Variable)
	}
	return out
}

// Interventions returns the subset of s tagged Intervened.
func (s AssertionSet) Interventions() AssertionSet {
	var out AssertionSet
	for _, a := range s {
		if a.Flavor == model.Intervened {
			out = append(out, a)
		}
	}
	return out
}

// Observations returns the subset of s tagged Observed.
func (s AssertionSet) Observations() AssertionSet {
	var out AssertionSet
	for _, a := range s {
		if a.Flavor == model.Observed {
			out = append(out, a)
		}
	}
	return out
}

// without returns a copy of s with the first assertion on variable removed.
func (s AssertionSet) without(variable string) AssertionSet {
	out := make(AssertionSet, 0, len(s))
	removed := false
	for _, a := range s {
		if !removed && a.Variable == variable {
			removed = true
			continue
		}
		out = append(out, a)
	}
	return out
}

// withFlavor returns a copy of s with variable's assertion re-tagged to
// flavor.
func (s AssertionSet) withFlavor(variable string, flavor model.Flavor) AssertionSet {
	out := make(AssertionSet, len(s))
	copy(out, s)
	for i, a := range out {
		if a.Variable == variable {
			out[i] = Assertion{Variable: a.Variable, Outcome: a.Outcome, Flavor: flavor}
		}
	}
	return out
}

// fromModel converts a model.AssertionSet (always fully concrete) to the
// symbolic AssertionSet shape.
func fromModel(s model.AssertionSet) AssertionSet {
	out := make(AssertionSet, len(s))
	for i, a := range s {
		out[i] = Assertion{Variable: a.Variable, Outcome: a.Outcome, Flavor: a.Flavor}
	}
	return out
}

// toModel converts a fully-substituted symbolic AssertionSet back to
// model.AssertionSet. Panics if any assertion is still unbound: reaching
// evaluation with a free Sum variable would mean a Sum failed to substitute
// before recursing, which the calculus package's own Evaluate never does.
func toModel(s AssertionSet) model.AssertionSet {
	out := make(model.AssertionSet, len(s))
	for i, a := range s {
		if a.Outcome == "" {
			panic(fmt.Sprintf("calculus: unbound variable %q reached evaluation", a.Variable))
		}
		if a.Flavor == model.Intervened {
			out[i] = model.Do(a.Variable, a.Outcome)
		} else {
			out[i] = model.Obs(a.Variable, a.Outcome)
		}
	}
	return out
}
