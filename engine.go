// File: engine.go
// Role: the root facade (spec §6 Query API), wiring model + dag + eval +
// calculus + obslog behind a single Engine, logging backdoor-shortcut
// hits, rule-search fallbacks, and terminal errors per query.
package docalc

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/gocausal/docalc/calculus"
	"github.com/gocausal/docalc/config"
	"github.com/gocausal/docalc/dag"
	"github.com/gocausal/docalc/eval"
	"github.com/gocausal/docalc/model"
	"github.com/gocausal/docalc/obslog"
)

// Engine answers the spec §6 Query API against one immutable *model.Model.
type Engine struct {
	m       *model.Model
	ev      *eval.Evaluator
	calc    *calculus.Engine
	log     *obslog.Logger
	minimal bool
}

// New builds an Engine bound to m, configured by cfg.
func New(m *model.Model, cfg config.Config) *Engine {
	ev := eval.New(m)
	calc := calculus.New(m, ev, cfg.Calculus)
	return &Engine{m: m, ev: ev, calc: calc, log: cfg.Logger, minimal: cfg.Calculus.MinimalSets}
}

// P answers P(head | body), routing through the Evaluator or the do-calculus
// engine per spec §4.6, logging the outcome with a per-call correlation ID.
func (e *Engine) P(ctx context.Context, head, body model.AssertionSet) (float64, error) {
	_, log := obslog.WithQueryID(ctx, e.log)

	hasIntervention := len(body.Interventions()) > 0
	p, usedShortcut, err := e.calc.Query(model.Query{Head: head, Body: body})
	if err != nil {
		switch {
		case errors.Is(err, calculus.ErrDoCalculusFailed):
			log.Error("do-calculus search exhausted its depth bound", zap.Error(err))
		case errors.Is(err, calculus.ErrInconsistentDeconfounding):
			log.Error("deconfounding sets disagreed under policy all", zap.Error(err))
		default:
			log.Error("query failed", zap.Error(err))
		}
		return 0, err
	}
	if hasIntervention {
		if usedShortcut {
			log.Info("answered interventional query via backdoor shortcut", zap.Float64("p", p))
		} else {
			log.Warn("backdoor shortcut inapplicable, fell through to do-calculus rule search", zap.Float64("p", p))
		}
	}
	return p, nil
}

// BackdoorPaths returns every backdoor path from src to dst not blocked by
// blockers (spec §6).
func (e *Engine) BackdoorPaths(src, dst, blockers map[string]bool) [][]string {
	paths := dag.BackdoorPaths(e.m, src, dst, blockers)
	out := make([][]string, len(paths))
	for i, p := range paths {
		out[i] = []string(p)
	}
	return out
}

// DeconfoundingSets returns every admissible deconfounding set for (src,
// dst), restricted to minimal sets when the Engine was configured with
// config.WithMinimalSets(true) (spec §6).
func (e *Engine) DeconfoundingSets(src, dst map[string]bool) []map[string]bool {
	return dag.DeconfoundingSets(e.m, src, dst, dag.DeconfoundOptions{MinimalSets: e.minimal})
}

// TopologicalOrder returns the model's deterministic topological order
// (spec §6).
func (e *Engine) TopologicalOrder() []string {
	return e.m.TopologicalOrder()
}

// JointRow is one assignment-probability pair from JointDistributionTable.
type JointRow struct {
	Assignment  model.AssertionSet
	Probability float64
}

// JointDistributionTable enumerates the full outcome product of every
// non-latent variable and its probability (spec §6).
func (e *Engine) JointDistributionTable() ([]JointRow, error) {
	latents := e.m.Latents()
	var vars []string
	for _, v := range e.m.Variables() {
		if !latents[v] {
			vars = append(vars, v)
		}
	}

	combos := eval.CartesianOutcomes(e.m, vars)
	rows := make([]JointRow, 0, len(combos))
	for _, combo := range combos {
		assignment := make(model.AssertionSet, len(vars))
		for i, v := range vars {
			assignment[i] = model.Obs(v, combo[i])
		}
		p, err := e.ev.Probability(assignment, nil)
		if err != nil {
			return nil, err
		}
		rows = append(rows, JointRow{Assignment: assignment, Probability: p})
	}
	return rows, nil
}
