// File: engine.go
// Role: the high-level query dispatch (spec §4.6) and the backdoor
// shortcut + deconfounding-set selection policy (spec §4.5, "Alternative
// backdoor shortcut", "Deconfounding-set selection policy").
package calculus

import (
	"fmt"
	"math/rand"

	"github.com/gocausal/docalc/dag"
	"github.com/gocausal/docalc/eval"
	"github.com/gocausal/docalc/model"
)

// Policy selects among multiple admissible deconfounding sets when the
// backdoor shortcut applies.
type Policy int

const (
	// PolicyAsk defers the choice to an external collaborator via Config.Ask.
	PolicyAsk Policy = iota
	// PolicyRandom draws uniformly from the reported sets using Config.Rand.
	PolicyRandom
	// PolicyAll evaluates every reported set and requires their numeric
	// results to agree within Config.Tolerance.
	PolicyAll
)

// Config configures an Engine.
type Config struct {
	// MaxDepth bounds the iterative-deepening search's rewrite depth.
	MaxDepth int
	// StepBudget bounds the total successor expansions per depth iteration;
	// 0 means unbounded.
	StepBudget int
	// MinimalSets restricts the backdoor shortcut to minimal deconfounding
	// sets (spec §4.2).
	MinimalSets bool
	// Tolerance bounds how far PolicyAll's per-set numeric results may
	// diverge before ErrInconsistentDeconfounding fires.
	Tolerance float64
	// DeconfoundingPolicy selects among multiple admissible sets.
	DeconfoundingPolicy Policy
	// Rand supplies randomness for PolicyRandom. Required when that policy
	// is selected.
	Rand *rand.Rand
	// Ask supplies the external collaborator's choice for PolicyAsk.
	// Required when that policy is selected.
	Ask func(candidates []map[string]bool) (map[string]bool, error)
}

// Engine answers Query calls by routing interventionless queries straight to
// the Evaluator and interventional ones through the backdoor shortcut or, if
// that does not apply, the do-calculus search (spec §4.6).
type Engine struct {
	m   *model.Model
	ev  *eval.Evaluator
	cfg Config
}

// New builds an Engine bound to m and ev, configured by cfg.
func New(m *model.Model, ev *eval.Evaluator, cfg Config) *Engine {
	return &Engine{m: m, ev: ev, cfg: cfg}
}

// Query answers P(Head | Body) for a validated model.Query, dispatching per
// spec §4.6. The second return value reports whether the backdoor shortcut
// answered the query directly; it is always false when Body carries no
// intervention, since the shortcut/rule-search distinction doesn't apply.
func (e *Engine) Query(q model.Query) (float64, bool, error) {
	if err := q.Validate(e.m); err != nil {
		return 0, false, err
	}
	if len(q.Body.Interventions()) == 0 {
		p, err := e.ev.Probability(q.Head, q.Body)
		return p, false, err
	}
	if p, ok, err := e.backdoorShortcut(q.Head, q.Body); err != nil {
		return 0, false, err
	} else if ok {
		return p, true, nil
	}

	namer := NewFreshNamer()
	eng := &idEngine{m: e.m, namer: namer, stepBudget: e.cfg.StepBudget}
	root := Prob{Head: fromModel(q.Head), Body: fromModel(q.Body)}
	expr, _, err := eng.search(root, e.cfg.MaxDepth)
	if err != nil {
		return 0, false, err
	}
	p, err := Evaluate(expr, e.ev, e.m)
	return p, false, err
}

// backdoorShortcut implements spec §4.5's "Alternative backdoor shortcut":
// when Body carries exactly one intervened variable and an admissible
// deconfounding set exists, answer directly without invoking the rule
// search.
func (e *Engine) backdoorShortcut(head, body model.AssertionSet) (float64, bool, error) {
	interventions := body.Interventions()
	if len(interventions) != 1 {
		return 0, false, nil
	}
	x := interventions[0]
	ySet := dag.ToSet(head.Variables())
	xSet := dag.ToSet([]string{x.Variable})

	sets := observableOnly(e.m, dag.DeconfoundingSets(e.m, xSet, ySet, dag.DeconfoundOptions{MinimalSets: e.cfg.MinimalSets}))
	if len(sets) == 0 {
		return 0, false, nil
	}

	p, err := e.applyPolicy(head, body, x, sets)
	if err != nil {
		return 0, false, err
	}
	return p, true, nil
}

// observableOnly drops any candidate set that conditions on a latent
// variable: dag.DeconfoundingSets reasons purely over graph structure and
// has no notion of latency, but a set the engine can never actually
// observe is not a usable blocker (spec's Latent variable glossary entry:
// "not directly observed or numerically specified").
func observableOnly(m *model.Model, sets []map[string]bool) []map[string]bool {
	latents := m.Latents()
	out := make([]map[string]bool, 0, len(sets))
	for _, z := range sets {
		usable := true
		for v := range z {
			if latents[v] {
				usable = false
				break
			}
		}
		if usable {
			out = append(out, z)
		}
	}
	return out
}

func (e *Engine) applyPolicy(head, body model.AssertionSet, x model.Assertion, sets []map[string]bool) (float64, error) {
	switch e.cfg.DeconfoundingPolicy {
	case PolicyAsk:
		if e.cfg.Ask == nil {
			return 0, fmt.Errorf("calculus: PolicyAsk requires Config.Ask")
		}
		chosen, err := e.cfg.Ask(sets)
		if err != nil {
			return 0, err
		}
		return e.sumOverZ(head, body, x, chosen)

	case PolicyRandom:
		if e.cfg.Rand == nil {
			return 0, fmt.Errorf("calculus: PolicyRandom requires Config.Rand")
		}
		idx := e.cfg.Rand.Intn(len(sets))
		return e.sumOverZ(head, body, x, sets[idx])

	case PolicyAll:
		first, err := e.sumOverZ(head, body, x, sets[0])
		if err != nil {
			return 0, err
		}
		for _, z := range sets[1:] {
			p, err := e.sumOverZ(head, body, x, z)
			if err != nil {
				return 0, err
			}
			if diff := p - first; diff > e.cfg.Tolerance || diff < -e.cfg.Tolerance {
				return 0, fmt.Errorf("%g vs %g: %w", first, p, ErrInconsistentDeconfounding)
			}
		}
		return first, nil

	default:
		return 0, fmt.Errorf("calculus: unknown deconfounding policy %d", e.cfg.DeconfoundingPolicy)
	}
}

// sumOverZ computes Σ_z P(Y|X=x,Z=z) · P(Z=z), the backdoor-adjustment
// formula, for one deconfounding set z.
func (e *Engine) sumOverZ(head, body model.AssertionSet, x model.Assertion, z map[string]bool) (float64, error) {
	otherObs := body.Observations()
	zVars := dag.SortedKeys(z)
	combos := eval.CartesianOutcomes(e.m, zVars)

	total := 0.0
	for _, combo := range combos {
		zAssertions := make(model.AssertionSet, len(zVars))
		for i, v := range zVars {
			zAssertions[i] = model.Obs(v, combo[i])
		}
		condBody := make(model.AssertionSet, 0, 1+len(otherObs)+len(zAssertions))
		condBody = append(condBody, model.Obs(x.Variable, x.Outcome))
		condBody = append(condBody, otherObs...)
		condBody = append(condBody, zAssertions...)

		pYgivenXZ, err := e.ev.Probability(head, condBody)
		if err != nil {
			return 0, err
		}
		pZ, err := e.ev.Probability(zAssertions, nil)
		if err != nil {
			return 0, err
		}
		total += pYgivenXZ * pZ
	}
	return total, nil
}
