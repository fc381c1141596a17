// File: expr.go
// Role: the symbolic expression algebra (spec §4.4): a tagged sum type
// (Prob/Product/Sum/Literal) with structural equality via a canonical
// string form, substitution, pretty-printing, and a normalize pass that
// flattens nested Products, collapses Sums whose inner expression reduces to
// Literal(0), and folds Literal factors — no other algebraic simplification
// is performed; the search (search.go) is responsible for semantic
// rewrites.
package calculus

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Expr is a node in the symbolic expression tree.
type Expr interface {
	// canonical returns a deterministic string uniquely identifying the
	// expression's structure, used for dedup (the search's visited set) and
	// as the final tie-break when the search ranks equally-sized candidates.
	canonical() string
	// String renders a human-readable form.
	String() string
}

// Prob is an atomic conditional probability term P(Head | Body).
type Prob struct {
	Head AssertionSet
	Body AssertionSet
}

// Product is a product of sub-expressions.
type Product struct {
	Factors []Expr
}

// Sum is Σ over every outcome of OriginVar of Inner, with BoundName
// substituted for OriginVar at each step (spec §4.4, "Naming discipline").
type Sum struct {
	BoundName string
	OriginVar string
	Inner     Expr
}

// Literal is a fixed numeric factor.
type Literal struct {
	Value float64
}

func assertionCanon(s AssertionSet) string {
	cp := append(AssertionSet(nil), s...)
	sort.Slice(cp, func(i, j int) bool {
		if cp[i].Variable != cp[j].Variable {
			return cp[i].Variable < cp[j].Variable
		}
		if cp[i].Flavor != cp[j].Flavor {
			return cp[i].Flavor < cp[j].Flavor
		}
		return cp[i].Outcome < cp[j].Outcome
	})
	var b strings.Builder
	for i, a := range cp {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.Variable)
		b.WriteByte('=')
		b.WriteString(a.Outcome)
		b.WriteByte(':')
		b.WriteString(a.Flavor.String())
	}
	return b.String()
}

func (p Prob) canonical() string {
	return "P(" + assertionCanon(p.Head) + "|" + assertionCanon(p.Body) + ")"
}

func (p Prob) String() string {
	return fmt.Sprintf("P(%s|%s)", assertionString(p.Head), assertionString(p.Body))
}

func assertionString(s AssertionSet) string {
	parts := make([]string, len(s))
	for i, a := range s {
		if a.Flavor.String() == "do" {
			parts[i] = fmt.Sprintf("do(%s=%s)", a.Variable, a.Outcome)
		} else {
			parts[i] = fmt.Sprintf("%s=%s", a.Variable, a.Outcome)
		}
	}
	return strings.Join(parts, ",")
}

func (p Product) canonical() string {
	parts := make([]string, len(p.Factors))
	for i, f := range p.Factors {
		parts[i] = f.canonical()
	}
	sort.Strings(parts)
	return "Prod[" + strings.Join(parts, ";") + "]"
}

func (p Product) String() string {
	parts := make([]string, len(p.Factors))
	for i, f := range p.Factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, " * ")
}

func (s Sum) canonical() string {
	return fmt.Sprintf("Sum[%s/%s](%s)", s.BoundName, s.OriginVar, s.Inner.canonical())
}

func (s Sum) String() string {
	return fmt.Sprintf("Σ_%s %s", s.BoundName, s.Inner.String())
}

func (l Literal) canonical() string {
	return "Lit(" + strconv.FormatFloat(l.Value, 'g', -1, 64) + ")"
}

func (l Literal) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64)
}

// size counts the nodes in e, used as the search's primary tie-break
// (smaller expression wins).
func size(e Expr) int {
	switch v := e.(type) {
	case Product:
		n := 1
		for _, f := range v.Factors {
			n += size(f)
		}
		return n
	case Sum:
		return 1 + size(v.Inner)
	default:
		return 1
	}
}

// normalize flattens nested Products, folds Literal factors together, and
// collapses a Sum whose inner expression is Literal(0) to Literal(0).
func normalize(e Expr) Expr {
	switch v := e.(type) {
	case Product:
		var flat []Expr
		litProduct := 1.0
		for _, f := range v.Factors {
			nf := normalize(f)
			if inner, ok := nf.(Product); ok {
				flat = append(flat, inner.Factors...)
				continue
			}
			if lit, ok := nf.(Literal); ok {
				litProduct *= lit.Value
				continue
			}
			flat = append(flat, nf)
		}
		if litProduct == 0 {
			return Literal{Value: 0}
		}
		if litProduct != 1 || len(flat) == 0 {
			flat = append([]Expr{Literal{Value: litProduct}}, flat...)
		}
		if len(flat) == 1 {
			return flat[0]
		}
		return Product{Factors: flat}
	case Sum:
		inner := normalize(v.Inner)
		if lit, ok := inner.(Literal); ok && lit.Value == 0 {
			return Literal{Value: 0}
		}
		return Sum{BoundName: v.BoundName, OriginVar: v.OriginVar, Inner: inner}
	default:
		return e
	}
}

// substitute replaces every assertion referencing boundName with
// originVar=outcome throughout e, recursing into Product factors and Sum
// bodies (never into a nested Sum's own BoundName, which a fresh name never
// collides with).
func substitute(e Expr, boundName, originVar, outcome string) Expr {
	switch v := e.(type) {
	case Prob:
		return Prob{
			Head: substAssertions(v.Head, boundName, originVar, outcome),
			Body: substAssertions(v.Body, boundName, originVar, outcome),
		}
	case Product:
		nf := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			nf[i] = substitute(f, boundName, originVar, outcome)
		}
		return Product{Factors: nf}
	case Sum:
		return Sum{BoundName: v.BoundName, OriginVar: v.OriginVar, Inner: substitute(v.Inner, boundName, originVar, outcome)}
	default:
		return e
	}
}

func substAssertions(s AssertionSet, boundName, originVar, outcome string) AssertionSet {
	out := make(AssertionSet, len(s))
	for i, a := range s {
		if a.Variable == boundName {
			out[i] = Assertion{Variable: originVar, Outcome: outcome, Flavor: a.Flavor}
		} else {
			out[i] = a
		}
	}
	return out
}

// containsIntervention reports whether e has any Prob node whose Body
// carries a do(·) assertion.
func containsIntervention(e Expr) bool {
	return interventionCount(e) > 0
}

// interventionCount totals the do(·) assertions remaining across every Prob
// node in e, the search's progress metric for partial-result reporting.
func interventionCount(e Expr) int {
	switch v := e.(type) {
	case Prob:
		return len(v.Body.Interventions())
	case Product:
		n := 0
		for _, f := range v.Factors {
			n += interventionCount(f)
		}
		return n
	case Sum:
		return interventionCount(v.Inner)
	default:
		return 0
	}
}
