// File: evaluator.go
// Role: the recursive rewrite engine (spec §4.3) that answers P(Head | Body)
// for an interventionless query, applied in order:
//
//  1. empty head                     -> 1.0
//  2. contradiction in Head ∪ Body   -> 0.0
//  3. Head ⊆ Body                    -> 1.0
//  4. |Head| > 1: decompose by chain rule, peeling the head variable that
//     sits latest in topological order (most likely a descendant of the
//     others, minimizing marginalization work)
//  5. single head X=x: read the CPT directly if Body already asserts every
//     parent of X, otherwise marginalize over X's unasserted parents
//  6. Jeffrey/Bayes fallback when Body asserts a descendant of X, so rule 5's
//     parent-marginalization no longer captures the dependency
//
// Every recursive step funnels back through Probability, so memoization
// (when enabled) covers every rewrite, not just top-level calls — the same
// discipline a memoized dynamic-programming table uses to avoid recomputing
// overlapping subproblems.
package eval

import (
	"fmt"
	"math"
	"sync"

	"github.com/gocausal/docalc/dag"
	"github.com/gocausal/docalc/model"
)

// numericEpsilon is the tolerance a final probability may drift outside
// [0, 1] before ErrNumericDrift fires (spec §4.3, "Numeric semantics").
const numericEpsilon = 1e-6

// zeroThreshold is the tolerance below which a Bayes-rule denominator is
// treated as zero.
const zeroThreshold = 1e-12

// Evaluator answers interventionless probability queries against a single
// *model.Model, memoizing by canonicalized (Head, Body).
type Evaluator struct {
	m       *model.Model
	memoize bool

	mu    sync.Mutex
	cache map[string]float64
}

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	memoize bool
}

// WithMemoization enables or disables the (Head, Body) result cache.
// Disabling it must never change a query's numeric result (spec §8,
// property 7); it exists for profiling and pathological-cache-growth cases.
func WithMemoization(enabled bool) Option {
	return func(c *config) { c.memoize = enabled }
}

// New builds an Evaluator bound to m, with memoization enabled by default.
func New(m *model.Model, opts ...Option) *Evaluator {
	cfg := config{memoize: true}
	for _, o := range opts {
		o(&cfg)
	}
	return &Evaluator{m: m, memoize: cfg.memoize, cache: make(map[string]float64)}
}

// Probability computes P(head | body). head and body must reference only
// variables and outcomes known to the bound model (the caller, typically
// model.Query.Validate or the do-calculus layer, is responsible for that
// check); every assertion is treated as an observation regardless of its
// Flavor, since this layer never sees a do(·) that survived do-calculus
// rewriting.
func (e *Evaluator) Probability(head, body model.AssertionSet) (float64, error) {
	key := canonicalKey(head, body)
	if e.memoize {
		e.mu.Lock()
		if v, ok := e.cache[key]; ok {
			e.mu.Unlock()
			return v, nil
		}
		e.mu.Unlock()
	}

	p, err := e.compute(head, body)
	if err != nil {
		return 0, err
	}
	if p < -numericEpsilon || p > 1+numericEpsilon {
		return 0, fmt.Errorf("p=%g: %w", p, ErrNumericDrift)
	}

	if e.memoize {
		e.mu.Lock()
		e.cache[key] = p
		e.mu.Unlock()
	}
	return p, nil
}

func (e *Evaluator) compute(head, body model.AssertionSet) (float64, error) {
	if len(head) == 0 {
		return 1.0, nil
	}
	if conflicting(head, body) {
		return 0.0, nil
	}
	if subsumes(body, head) {
		return 1.0, nil
	}
	if len(head) > 1 {
		return e.decompose(head, body)
	}
	h := head[0]
	return e.singleHead(h.Variable, h.Outcome, body)
}

// conflicting reports whether head ∪ body assigns two different outcomes to
// the same variable.
func conflicting(head, body model.AssertionSet) bool {
	seen := make(map[string]string, len(head)+len(body))
	for _, a := range append(append(model.AssertionSet(nil), head...), body...) {
		if prev, ok := seen[a.Variable]; ok {
			if prev != a.Outcome {
				return true
			}
			continue
		}
		seen[a.Variable] = a.Outcome
	}
	return false
}

// subsumes reports whether every assertion in head also appears (same
// variable, same outcome) in body.
func subsumes(body, head model.AssertionSet) bool {
	for _, h := range head {
		if !body.Has(h.Variable, h.Outcome, h.Flavor) &&
			!body.Has(h.Variable, h.Outcome, otherFlavor(h.Flavor)) {
			return false
		}
	}
	return true
}

func otherFlavor(f model.Flavor) model.Flavor {
	if f == model.Observed {
		return model.Intervened
	}
	return model.Observed
}

// decompose applies the chain rule to a multi-variable head, peeling off the
// head variable latest in topological order: P(H1, Hrest|B) = P(H1|Hrest,B)
// · P(Hrest|B).
func (e *Evaluator) decompose(head, body model.AssertionSet) (float64, error) {
	pos := topoPositions(e.m)
	h1idx := 0
	for i, a := range head {
		if pos[a.Variable] > pos[head[h1idx].Variable] {
			h1idx = i
		}
	}
	h1 := head[h1idx]
	hrest := make(model.AssertionSet, 0, len(head)-1)
	for i, a := range head {
		if i != h1idx {
			hrest = append(hrest, a)
		}
	}

	condBody := make(model.AssertionSet, 0, len(hrest)+len(body))
	condBody = append(condBody, hrest...)
	condBody = append(condBody, body...)

	p1, err := e.Probability(model.AssertionSet{h1}, condBody)
	if err != nil {
		return 0, fmt.Errorf("decompose %s: %w", h1.Variable, err)
	}
	p2, err := e.Probability(hrest, body)
	if err != nil {
		return 0, fmt.Errorf("decompose remainder: %w", err)
	}
	return p1 * p2, nil
}

func topoPositions(m *model.Model) map[string]int {
	order := m.TopologicalOrder()
	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	return pos
}

// singleHead evaluates P(X=x | body). Per the local Markov property, the
// direct-CPT-read path (rule 5 bullet 1) is only valid when body asserts no
// descendant of X: X is independent of its non-descendants given its
// parents, but never independent of its descendants.
func (e *Evaluator) singleHead(x, outcome string, body model.AssertionSet) (float64, error) {
	parents := e.m.Parents(x)
	bodyVars := dag.ToSet(body.Variables())
	descendantAsserted := e.bodyAssertsDescendant(x, body)

	if !descendantAsserted && subsetOf(parents, bodyVars) {
		assignment := parentAssignment(parents, body)
		if p, ok := e.m.Probability(x, outcome, assignment); ok {
			return p, nil
		}
	}

	if descendantAsserted {
		return e.bayesFallback(x, outcome, body)
	}

	return e.marginalizeMissingParents(x, outcome, parents, bodyVars, body)
}

func subsetOf(names []string, set map[string]bool) bool {
	for _, n := range names {
		if !set[n] {
			return false
		}
	}
	return true
}

// parentAssignment builds the ordered outcome vector for parents from body's
// assertions, in the same order as parents.
func parentAssignment(parents []string, body model.AssertionSet) []string {
	out := make([]string, len(parents))
	for i, p := range parents {
		for _, a := range body {
			if a.Variable == p {
				out[i] = a.Outcome
				break
			}
		}
	}
	return out
}

func (e *Evaluator) bodyAssertsDescendant(x string, body model.AssertionSet) bool {
	desc := dag.Descendants(e.m, x)
	for _, a := range body {
		if desc[a.Variable] {
			return true
		}
	}
	return false
}

// marginalizeMissingParents implements rule 5's second bullet: sum over
// every joint assignment m to M = parents(X) \ asserted(body) of
// P(X=x|m,body) · P(m|body).
func (e *Evaluator) marginalizeMissingParents(x, outcome string, parents []string, bodyVars map[string]bool, body model.AssertionSet) (float64, error) {
	var missing []string
	for _, p := range parents {
		if !bodyVars[p] {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		// parents ⊆ body but the CPT lookup still failed: the model's
		// completeness invariant guarantees a row exists for every
		// outcome combination, so this indicates an invalid outcome label.
		return 0, fmt.Errorf("eval: no CPT row for %s=%s given asserted parents", x, outcome)
	}

	assignments := CartesianOutcomes(e.m, missing)
	total := 0.0
	for _, combo := range assignments {
		bodyPrime := make(model.AssertionSet, 0, len(body)+len(missing))
		bodyPrime = append(bodyPrime, body...)
		mHead := make(model.AssertionSet, len(missing))
		for i, p := range missing {
			bodyPrime = append(bodyPrime, model.Obs(p, combo[i]))
			mHead[i] = model.Obs(p, combo[i])
		}

		pFirst, err := e.Probability(model.AssertionSet{model.Obs(x, outcome)}, bodyPrime)
		if err != nil {
			return 0, err
		}
		pSecond, err := e.Probability(mHead, body)
		if err != nil {
			return 0, err
		}
		total += pFirst * pSecond
	}
	return total, nil
}

// CartesianOutcomes enumerates every joint outcome assignment to vars, in
// the deterministic order each variable's Outcomes are declared.
func CartesianOutcomes(m *model.Model, vars []string) [][]string {
	combos := [][]string{{}}
	for _, v := range vars {
		outcomes := m.Outcomes(v)
		next := make([][]string, 0, len(combos)*len(outcomes))
		for _, c := range combos {
			for _, o := range outcomes {
				row := append(append([]string(nil), c...), o)
				next = append(next, row)
			}
		}
		combos = next
	}
	return combos
}

// bayesFallback implements rule 6: P(X|B) = P(B|X)·P(X) / P(B).
func (e *Evaluator) bayesFallback(x, outcome string, body model.AssertionSet) (float64, error) {
	bodyHead := make(model.AssertionSet, len(body))
	for i, a := range body {
		bodyHead[i] = model.Obs(a.Variable, a.Outcome)
	}
	xAssertion := model.AssertionSet{model.Obs(x, outcome)}

	pBGivenX, err := e.Probability(bodyHead, xAssertion)
	if err != nil {
		return 0, fmt.Errorf("bayes numerator P(B|X): %w", err)
	}
	pX, err := e.Probability(xAssertion, nil)
	if err != nil {
		return 0, fmt.Errorf("bayes numerator P(X): %w", err)
	}
	pB, err := e.Probability(bodyHead, nil)
	if err != nil {
		return 0, fmt.Errorf("bayes denominator P(B): %w", err)
	}
	if math.Abs(pB) < zeroThreshold {
		return 0, fmt.Errorf("P(B)=%g: %w", pB, ErrZeroProbability)
	}
	return pBGivenX * pX / pB, nil
}
