// File: search.go
// Role: the iterative-deepening rule-application search (spec §4.5,
// "Search"). Modeled on the branch-and-bound engine idiom this codebase
// uses elsewhere: a dedicated engine struct holding all search state
// (instead of closures), deterministic branching order, a sparse step-budget
// check, and a visited set that prevents revisiting a canonical expression
// form within one search.
//
// Complexity: worst-case exponential in depth bound; acceptable because the
// bound is small and callers control it explicitly (spec §5, "Cancellation
// / timeout").
package calculus

import (
	"fmt"
	"sort"

	"github.com/gocausal/docalc/model"
)

// idEngine holds all do-calculus search state for one query.
type idEngine struct {
	m          *model.Model
	namer      *FreshNamer
	stepBudget int // 0 means unbounded

	steps   int
	visited map[string]bool

	bestPartial      Expr
	bestPartialCount int
}

// search runs iterative deepening from root up to maxDepth rewrite steps. At
// the first depth where any do-free expression is reachable, every such
// expression found during that depth's traversal is collected and the
// depth-minimal result is chosen by total expression size, breaking ties by
// lexicographic canonical form (spec §4.5, "Search", tie-break rule).
// On failure, best holds the fewest-remaining-intervention expression seen
// across the whole search, for a caller that wants to report partial
// progress (spec §5, "Cancellation / timeout").
func (e *idEngine) search(root Expr, maxDepth int) (Expr, Expr, error) {
	e.bestPartial = root
	e.bestPartialCount = interventionCount(root)
	for depth := 0; depth <= maxDepth; depth++ {
		e.visited = make(map[string]bool)
		e.steps = 0
		var found []Expr
		e.dfs(root, depth, &found)
		if len(found) > 0 {
			return normalize(bestOf(found)), nil, nil
		}
	}
	return nil, e.bestPartial, fmt.Errorf("depth=%d: %w", maxDepth, ErrDoCalculusFailed)
}

// bestOf picks the search's preferred result among several do-free
// expressions found at the same depth: smallest size() wins, ties broken by
// lexicographic canonical() (spec §4.5, "Search", tie-break rule).
func bestOf(candidates []Expr) Expr {
	best := candidates[0]
	bestSize := size(best)
	bestCanon := best.canonical()
	for _, c := range candidates[1:] {
		cs := size(c)
		cc := c.canonical()
		if cs < bestSize || (cs == bestSize && cc < bestCanon) {
			best, bestSize, bestCanon = c, cs, cc
		}
	}
	return best
}

// dfs explores successors of cur up to budget remaining rewrite steps,
// appending every do-free expression it reaches to found.
func (e *idEngine) dfs(cur Expr, budget int, found *[]Expr) {
	if !containsIntervention(cur) {
		*found = append(*found, cur)
		return
	}
	if n := interventionCount(cur); n < e.bestPartialCount {
		e.bestPartialCount = n
		e.bestPartial = cur
	}
	if budget == 0 {
		return
	}
	key := cur.canonical()
	if e.visited[key] {
		return
	}
	e.visited[key] = true

	e.steps++
	if e.stepBudget > 0 && e.steps > e.stepBudget {
		return
	}

	for _, succ := range e.orderedSuccessors(cur) {
		e.dfs(succ, budget-1, found)
		if e.stepBudget > 0 && e.steps > e.stepBudget {
			return
		}
	}
}

// orderedSuccessors enumerates every successor of cur (one rewrite applied
// at one site) in a deterministic order: canonical-form lexicographic, so
// identical inputs always explore branches in the same sequence (spec §5,
// "Ordering guarantees").
func (e *idEngine) orderedSuccessors(cur Expr) []Expr {
	succs := allSuccessors(cur, e.m, e.namer)
	sort.Slice(succs, func(i, j int) bool {
		return succs[i].canonical() < succs[j].canonical()
	})
	return succs
}

// allSuccessors considers every Prob node in e as a rewrite site (spec
// §4.5, "Search"), returning the whole-tree successor for each (site, rule
// candidate) pair with the rest of the tree held fixed.
func allSuccessors(e Expr, m *model.Model, namer *FreshNamer) []Expr {
	switch v := e.(type) {
	case Prob:
		if len(v.Body.Interventions()) == 0 {
			return nil
		}
		return ruleRewrites(v, m, namer)
	case Product:
		var out []Expr
		for i, f := range v.Factors {
			for _, r := range allSuccessors(f, m, namer) {
				nf := append([]Expr(nil), v.Factors...)
				nf[i] = r
				out = append(out, Product{Factors: nf})
			}
		}
		return out
	case Sum:
		var out []Expr
		for _, r := range allSuccessors(v.Inner, m, namer) {
			out = append(out, Sum{BoundName: v.BoundName, OriginVar: v.OriginVar, Inner: r})
		}
		return out
	default:
		return nil
	}
}
