// File: rules.go
// Role: Pearl's three do-calculus rules plus Rule 4 marginalization (spec
// §4.5), each expressed as a function from one Prob rewrite site to its set
// of legal successor expressions.
package calculus

import (
	"github.com/gocausal/docalc/dag"
	"github.com/gocausal/docalc/model"
)

// ruleRewrites returns every successor expression obtained by applying a
// legal do-calculus rule to the single Prob node p.
func ruleRewrites(p Prob, m *model.Model, namer *FreshNamer) []Expr {
	var out []Expr
	out = append(out, rule1Candidates(p, m)...)
	out = append(out, rule2Candidates(p, m)...)
	out = append(out, rule3Candidates(p, m)...)
	out = append(out, rule4Candidates(p, m, namer)...)
	return out
}

// rule1Candidates: insertion/deletion of observations. P(Y|do(X),Z,W) =
// P(Y|do(X),Z) if (Y ⊥ W | X,Z) in G_X̄.
func rule1Candidates(p Prob, m *model.Model) []Expr {
	y := toSet(p.Head.Variables())
	xSet := toSet(p.Body.Interventions().Variables())
	z := p.Body.Observations()

	gxbar := dag.WithoutIncoming(m, xSet)

	var out []Expr
	for _, w := range z {
		rest := z.without(w.Variable)
		zSet := toSet(rest.Variables())
		cond := unionSets(xSet, zSet)
		if dag.DSeparated(gxbar, y, toSet([]string{w.Variable}), cond) {
			newBody := p.Body.without(w.Variable)
			out = append(out, Prob{Head: p.Head, Body: newBody})
		}
	}
	return out
}

// rule2Candidates: action/observation exchange. P(Y|do(X),do(W),Z) =
// P(Y|do(X),W,Z) if (Y ⊥ W | X,Z) in G_X̄W̲.
func rule2Candidates(p Prob, m *model.Model) []Expr {
	y := toSet(p.Head.Variables())
	doSet := p.Body.Interventions()
	zSet := toSet(p.Body.Observations().Variables())

	var out []Expr
	for _, w := range doSet {
		xRest := doSet.without(w.Variable)
		xSet := toSet(xRest.Variables())
		wSet := toSet([]string{w.Variable})

		view := dag.WithoutIncomingAndOutgoing(m, xSet, wSet)
		cond := unionSets(xSet, zSet)
		if dag.DSeparated(view, y, wSet, cond) {
			newBody := p.Body.withFlavor(w.Variable, model.Observed)
			out = append(out, Prob{Head: p.Head, Body: newBody})
		}
	}
	return out
}

// rule3Candidates: insertion/deletion of actions. P(Y|do(X),do(W),Z) =
// P(Y|do(X),Z) if (Y ⊥ W | X,Z) in G_X̄W̄(z), where W̄(z) = W \
// ancestors(Z) in G_X̄.
func rule3Candidates(p Prob, m *model.Model) []Expr {
	y := toSet(p.Head.Variables())
	doSet := p.Body.Interventions()
	z := p.Body.Observations()
	zSet := toSet(z.Variables())

	var out []Expr
	for _, w := range doSet {
		xRest := doSet.without(w.Variable)
		xSet := toSet(xRest.Variables())

		gxbar := dag.WithoutIncoming(m, xSet)
		ancestorsZ := dag.AncestralClosure(gxbar, zSet)
		wbar := map[string]bool{}
		if !ancestorsZ[w.Variable] {
			wbar[w.Variable] = true
		}

		view := dag.WithoutIncoming(m, unionSets(xSet, wbar))
		cond := unionSets(xSet, zSet)
		if dag.DSeparated(view, y, toSet([]string{w.Variable}), cond) {
			newBody := p.Body.without(w.Variable)
			out = append(out, Prob{Head: p.Head, Body: newBody})
		}
	}
	return out
}

// rule4Candidates: marginalization. P(Y|B) = Σ_V P(Y|V,B) · P(V|B) for V in
// the ancestor closure of (Y ∪ B) not already asserted. V ranges only over
// non-latent variables: a latent carries no CPT, so the Evaluator could
// never answer P(V|B) for it, and do-calculus's entire purpose is producing
// an expression evaluable from the given CPTs.
func rule4Candidates(p Prob, m *model.Model, namer *FreshNamer) []Expr {
	asserted := toSet(append(append([]string(nil), p.Head.Variables()...), p.Body.Variables()...))
	closure := dag.AncestorsOf(m, asserted)

	var out []Expr
	for _, v := range dag.SortedKeys(closure) {
		if asserted[v] || m.IsLatent(v) {
			continue
		}
		bound := namer.Next(v)
		boundAssertion := Assertion{Variable: bound, Outcome: "", Flavor: model.Observed}

		yGivenVB := Prob{
			Head: p.Head,
			Body: append(append(AssertionSet(nil), p.Body...), boundAssertion),
		}
		vGivenB := Prob{
			Head: AssertionSet{boundAssertion},
			Body: p.Body,
		}
		out = append(out, Sum{
			BoundName: bound,
			OriginVar: v,
			Inner:     Product{Factors: []Expr{yGivenVB, vGivenB}},
		})
	}
	return out
}

func toSet(names []string) map[string]bool { return dag.ToSet(names) }

func unionSets(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, s := range sets {
		for k, v := range s {
			if v {
				out[k] = true
			}
		}
	}
	return out
}
