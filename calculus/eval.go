// File: eval.go
// Role: numeric evaluation of a do-free symbolic expression (spec §4.6,
// step 2): Prob leaves are handed to the eval package, Products multiply,
// Sums expand by enumerating the bound variable's outcomes and substituting
// before recursing.
package calculus

import (
	"fmt"

	"github.com/gocausal/docalc/eval"
	"github.com/gocausal/docalc/model"
)

// Evaluate computes the numeric value of a do-free expression e against m,
// using ev for every Prob leaf. e must contain no do(·) assertion (the
// search guarantees this for its return value).
func Evaluate(e Expr, ev *eval.Evaluator, m *model.Model) (float64, error) {
	switch v := e.(type) {
	case Literal:
		return v.Value, nil
	case Prob:
		p, err := ev.Probability(toModel(v.Head), toModel(v.Body))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", v, err)
		}
		return p, nil
	case Product:
		total := 1.0
		for _, f := range v.Factors {
			p, err := Evaluate(f, ev, m)
			if err != nil {
				return 0, err
			}
			total *= p
		}
		return total, nil
	case Sum:
		outcomes := m.Outcomes(v.OriginVar)
		total := 0.0
		for _, o := range outcomes {
			inner := substitute(v.Inner, v.BoundName, v.OriginVar, o)
			p, err := Evaluate(inner, ev, m)
			if err != nil {
				return 0, err
			}
			total += p
		}
		return total, nil
	default:
		return 0, fmt.Errorf("calculus: unknown expression node %T", e)
	}
}
