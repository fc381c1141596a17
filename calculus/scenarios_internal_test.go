package calculus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocausal/docalc/eval"
	"github.com/gocausal/docalc/model"
)

// frontDoorModel builds U -> X, X -> Z, Z -> Y, U -> Y: the front-door
// fixture (S3), with the confounder U itself observable. A literal latent U
// would make P(Y=y|Z=z,X=x') unanswerable (Evaluator has no CPT row to fall
// back on for a variable with no parents and no table), so U here carries
// its own table purely to keep every leaf term in the front-door derivation
// CPT-answerable; the do-calculus search still has to find the front-door
// decomposition rather than taking U's backdoor shortcut, since this test
// drives idEngine directly and never calls Engine.Query.
func frontDoorModel(t *testing.T) *model.Model {
	t.Helper()
	specs := map[string]model.VarSpec{
		"U": {
			Outcomes: []string{"u0", "u1"},
			Table: []model.CPTRow{
				{Outcome: "u0", Probability: 0.5},
				{Outcome: "u1", Probability: 0.5},
			},
		},
		"X": {
			Outcomes: []string{"x", "notx"},
			Parents:  []string{"U"},
			Table: []model.CPTRow{
				{Outcome: "x", ParentOutcomes: []string{"u0"}, Probability: 0.7},
				{Outcome: "notx", ParentOutcomes: []string{"u0"}, Probability: 0.3},
				{Outcome: "x", ParentOutcomes: []string{"u1"}, Probability: 0.3},
				{Outcome: "notx", ParentOutcomes: []string{"u1"}, Probability: 0.7},
			},
		},
		"Z": {
			Outcomes: []string{"z", "notz"},
			Parents:  []string{"X"},
			Table: []model.CPTRow{
				{Outcome: "z", ParentOutcomes: []string{"x"}, Probability: 0.5},
				{Outcome: "notz", ParentOutcomes: []string{"x"}, Probability: 0.5},
				{Outcome: "z", ParentOutcomes: []string{"notx"}, Probability: 0.1},
				{Outcome: "notz", ParentOutcomes: []string{"notx"}, Probability: 0.9},
			},
		},
		"Y": {
			Outcomes: []string{"y", "noty"},
			Parents:  []string{"Z", "U"},
			Table: []model.CPTRow{
				{Outcome: "y", ParentOutcomes: []string{"z", "u0"}, Probability: 0.8},
				{Outcome: "noty", ParentOutcomes: []string{"z", "u0"}, Probability: 0.2},
				{Outcome: "y", ParentOutcomes: []string{"notz", "u0"}, Probability: 0.3},
				{Outcome: "noty", ParentOutcomes: []string{"notz", "u0"}, Probability: 0.7},
				{Outcome: "y", ParentOutcomes: []string{"z", "u1"}, Probability: 0.6},
				{Outcome: "noty", ParentOutcomes: []string{"z", "u1"}, Probability: 0.4},
				{Outcome: "y", ParentOutcomes: []string{"notz", "u1"}, Probability: 0.2},
				{Outcome: "noty", ParentOutcomes: []string{"notz", "u1"}, Probability: 0.8},
			},
		},
	}
	m, err := model.NewModel("front_door", specs)
	require.NoError(t, err)
	return m
}

// TestSearch_FrontDoor finds a do-free expression for P(Y=y|do(X=x)) on the
// front-door fixture and checks its value against the front-door adjustment
// formula computed by hand: P(y|do(x)) = Σ_z P(z|x) Σ_x' P(y|z,x') P(x').
//
//	P(x) = P(notx) = 0.5 by construction
//	P(y|z,x)    = 0.7*0.8 + 0.3*0.6 = 0.74   P(y|notz,x)    = 0.7*0.3 + 0.3*0.2 = 0.27
//	P(y|z,notx) = 0.3*0.8 + 0.7*0.6 = 0.66   P(y|notz,notx) = 0.3*0.3 + 0.7*0.2 = 0.23
//	Σ_x' P(y|z,x')P(x')    = 0.74*0.5 + 0.66*0.5 = 0.70
//	Σ_x' P(y|notz,x')P(x') = 0.27*0.5 + 0.23*0.5 = 0.25
//	P(y|do(x)) = P(z|x)*0.70 + P(notz|x)*0.25 = 0.5*0.70 + 0.5*0.25 = 0.475
func TestSearch_FrontDoor(t *testing.T) {
	m := frontDoorModel(t)
	ev := eval.New(m)
	namer := NewFreshNamer()
	eng := &idEngine{m: m, namer: namer}

	root := Prob{
		Head: AssertionSet{{Variable: "Y", Outcome: "y", Flavor: model.Observed}},
		Body: AssertionSet{{Variable: "X", Outcome: "x", Flavor: model.Intervened}},
	}
	expr, _, err := eng.search(root, 6)
	require.NoError(t, err, "front-door identification must succeed within 6 rewrite steps")
	assert.False(t, containsIntervention(expr), "search must return a do-free expression")

	got, err := Evaluate(expr, ev, m)
	require.NoError(t, err)
	assert.InDelta(t, 0.475, got, 1e-9)
}

// rule3RegressionModel builds W -> Z, W -> Y, X -> Y: a fixture where W is
// both a second intervention candidate for Rule 3 and a genuine ancestor of
// the asserted observation Z. This is the shape the recorded Rule-3
// regression hit: w̄(z) must exclude any w that is an ancestor of z, or the
// search wrongly treats w's outgoing edges (including its real causal path
// to Y) as severed and collapses do(w) away.
func rule3RegressionModel(t *testing.T) *model.Model {
	t.Helper()
	specs := map[string]model.VarSpec{
		"W": {
			Outcomes: []string{"w", "notw"},
			Table: []model.CPTRow{
				{Outcome: "w", Probability: 0.5},
				{Outcome: "notw", Probability: 0.5},
			},
		},
		"X": {
			Outcomes: []string{"x", "notx"},
			Table: []model.CPTRow{
				{Outcome: "x", Probability: 0.5},
				{Outcome: "notx", Probability: 0.5},
			},
		},
		"Z": {
			Outcomes: []string{"z", "notz"},
			Parents:  []string{"W"},
			Table: []model.CPTRow{
				{Outcome: "z", ParentOutcomes: []string{"w"}, Probability: 0.8},
				{Outcome: "notz", ParentOutcomes: []string{"w"}, Probability: 0.2},
				{Outcome: "z", ParentOutcomes: []string{"notw"}, Probability: 0.2},
				{Outcome: "notz", ParentOutcomes: []string{"notw"}, Probability: 0.8},
			},
		},
		"Y": {
			Outcomes: []string{"y", "noty"},
			Parents:  []string{"W", "X"},
			Table: []model.CPTRow{
				{Outcome: "y", ParentOutcomes: []string{"w", "x"}, Probability: 0.9},
				{Outcome: "noty", ParentOutcomes: []string{"w", "x"}, Probability: 0.1},
				{Outcome: "y", ParentOutcomes: []string{"w", "notx"}, Probability: 0.7},
				{Outcome: "noty", ParentOutcomes: []string{"w", "notx"}, Probability: 0.3},
				{Outcome: "y", ParentOutcomes: []string{"notw", "x"}, Probability: 0.4},
				{Outcome: "noty", ParentOutcomes: []string{"notw", "x"}, Probability: 0.6},
				{Outcome: "y", ParentOutcomes: []string{"notw", "notx"}, Probability: 0.2},
				{Outcome: "noty", ParentOutcomes: []string{"notw", "notx"}, Probability: 0.8},
			},
		},
	}
	m, err := model.NewModel("rule3_regression", specs)
	require.NoError(t, err)
	return m
}

// TestRule3_DoesNotDeleteAnAncestorOfTheObservation guards the recorded
// regression directly: for P(Y|do(W),do(X),Z), W is an ancestor of Z, so
// w̄(z) must exclude W and deleting do(W) must stay illegal (W's direct edge
// into Y survives in the correctly restricted graph). Deleting do(X) is
// illegal too: only X's incoming edges are cut, so its direct edge into Y
// survives, and Rule 3 offers no candidate at all.
func TestRule3_DoesNotDeleteAnAncestorOfTheObservation(t *testing.T) {
	m := rule3RegressionModel(t)
	p := Prob{
		Head: AssertionSet{{Variable: "Y", Outcome: "y", Flavor: model.Observed}},
		Body: AssertionSet{
			{Variable: "W", Outcome: "w", Flavor: model.Intervened},
			{Variable: "X", Outcome: "x", Flavor: model.Intervened},
			{Variable: "Z", Outcome: "z", Flavor: model.Observed},
		},
	}
	candidates := rule3Candidates(p, m)
	assert.Empty(t, candidates)
	assert.False(t, ruleThreeDeletes(candidates, "X"), "deleting do(X) must stay illegal: X still affects Y directly")
	assert.False(t, ruleThreeDeletes(candidates, "W"), "deleting do(W) must stay illegal: W is an ancestor of Z and still affects Y directly")
}

// ruleThreeDeletes reports whether some candidate in candidates dropped v
// from the body entirely.
func ruleThreeDeletes(candidates []Expr, v string) bool {
	for _, c := range candidates {
		prob, ok := c.(Prob)
		if !ok {
			continue
		}
		if !toSet(prob.Body.Variables())[v] {
			return true
		}
	}
	return false
}

// TestSearch_Rule3RegressionFixture runs the full search over the same
// model with Z dropped from the query (P(Y|do(W),do(X))): both W and X are
// Y's only parents, so Rule 2 alone (no Rule 3 deletion at all) suffices,
// and the result must equal the direct CPT read P(y|w,x) = 0.9.
func TestSearch_Rule3RegressionFixture(t *testing.T) {
	m := rule3RegressionModel(t)
	ev := eval.New(m)
	namer := NewFreshNamer()
	eng := &idEngine{m: m, namer: namer}

	root := Prob{
		Head: AssertionSet{{Variable: "Y", Outcome: "y", Flavor: model.Observed}},
		Body: AssertionSet{
			{Variable: "W", Outcome: "w", Flavor: model.Intervened},
			{Variable: "X", Outcome: "x", Flavor: model.Intervened},
		},
	}
	expr, _, err := eng.search(root, 4)
	require.NoError(t, err)
	assert.False(t, containsIntervention(expr))

	got, err := Evaluate(expr, ev, m)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, got, 1e-9)
}
