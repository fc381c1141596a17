package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocausal/docalc/eval"
	"github.com/gocausal/docalc/model"
)

// chainModel builds spec scenario S1: Y -> X, P(Y=y)=0.7, P(X=x|Y=y)=0.9,
// P(X=x|Y=~y)=0.75.
func chainModel(t *testing.T) *model.Model {
	t.Helper()
	specs := map[string]model.VarSpec{
		"Y": {
			Outcomes: []string{"y", "~y"},
			Table: []model.CPTRow{
				{Outcome: "y", Probability: 0.7},
				{Outcome: "~y", Probability: 0.3},
			},
		},
		"X": {
			Outcomes: []string{"x", "~x"},
			Parents:  []string{"Y"},
			Table: []model.CPTRow{
				{Outcome: "x", ParentOutcomes: []string{"y"}, Probability: 0.9},
				{Outcome: "~x", ParentOutcomes: []string{"y"}, Probability: 0.1},
				{Outcome: "x", ParentOutcomes: []string{"~y"}, Probability: 0.75},
				{Outcome: "~x", ParentOutcomes: []string{"~y"}, Probability: 0.25},
			},
		},
	}
	m, err := model.NewModel("chain", specs)
	require.NoError(t, err)
	return m
}

func TestEvaluator_S1_SimpleChain(t *testing.T) {
	m := chainModel(t)
	ev := eval.New(m)

	px, err := ev.Probability(model.AssertionSet{model.Obs("X", "x")}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.855, px, 1e-9)

	pxGivenY, err := ev.Probability(model.AssertionSet{model.Obs("X", "x")}, model.AssertionSet{model.Obs("Y", "y")})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, pxGivenY, 1e-9)

	joint, err := ev.Probability(model.AssertionSet{model.Obs("X", "x"), model.Obs("Y", "y")}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.63, joint, 1e-9)
}

func TestEvaluator_S5_ContradictionAndTrivialHead(t *testing.T) {
	m := chainModel(t)
	ev := eval.New(m)

	contradiction, err := ev.Probability(model.AssertionSet{model.Obs("X", "x")}, model.AssertionSet{model.Obs("X", "~x")})
	require.NoError(t, err)
	assert.Equal(t, 0.0, contradiction)

	trivial, err := ev.Probability(nil, model.AssertionSet{model.Obs("Y", "y")})
	require.NoError(t, err)
	assert.Equal(t, 1.0, trivial)

	redundant, err := ev.Probability(model.AssertionSet{model.Obs("X", "x")}, model.AssertionSet{model.Obs("X", "x")})
	require.NoError(t, err)
	assert.Equal(t, 1.0, redundant)
}

func TestEvaluator_NormalizationInvariant(t *testing.T) {
	m := chainModel(t)
	ev := eval.New(m)

	px, err := ev.Probability(model.AssertionSet{model.Obs("X", "x")}, model.AssertionSet{model.Obs("Y", "~y")})
	require.NoError(t, err)
	pNotX, err := ev.Probability(model.AssertionSet{model.Obs("X", "~x")}, model.AssertionSet{model.Obs("Y", "~y")})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, px+pNotX, 1e-9)
}

func TestEvaluator_MemoizationTransparency(t *testing.T) {
	m := chainModel(t)
	memoized := eval.New(m)
	bare := eval.New(m, eval.WithMemoization(false))

	a, err := memoized.Probability(model.AssertionSet{model.Obs("X", "x")}, nil)
	require.NoError(t, err)
	b, err := bare.Probability(model.AssertionSet{model.Obs("X", "x")}, nil)
	require.NoError(t, err)
	assert.InDelta(t, a, b, 1e-9)
}

func TestEvaluator_BayesFallbackOnDescendantEvidence(t *testing.T) {
	m := chainModel(t)
	ev := eval.New(m)

	// Y has no parents, so P(Y|X) forces the Bayes fallback (X is a
	// descendant of Y, never a parent).
	pYGivenX, err := ev.Probability(model.AssertionSet{model.Obs("Y", "y")}, model.AssertionSet{model.Obs("X", "x")})
	require.NoError(t, err)
	// P(Y=y|X=x) = P(X=x|Y=y)*P(Y=y) / P(X=x) = 0.9*0.7/0.855
	assert.InDelta(t, 0.9*0.7/0.855, pYGivenX, 1e-9)
}
