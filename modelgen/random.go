// File: random.go
// Role: Random builds a random discrete Bayesian network: acyclic by
// construction (every parent has a strictly lower index than its child,
// the same trick the teacher's stochastic builders use for DAG-shaped
// output), a configurable fraction of non-root variables marked latent, and
// CPT rows drawn from the injected RNG and renormalized to sum to 1.
package modelgen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/gocausal/docalc/model"
)

// Config parameterizes Random.
type Config struct {
	// Variables is the number of variables to generate. Must be >= 1.
	Variables int
	// OutcomesPerVariable is the outcome count per variable. Defaults to 2
	// when 0.
	OutcomesPerVariable int
	// MaxParents caps how many earlier variables a node may depend on.
	// Defaults to 2 when 0.
	MaxParents int
	// LatentFraction is the probability (in [0,1]) that any given non-root
	// variable is marked latent (no CPT).
	LatentFraction float64
	// Rand supplies all randomness. Required.
	Rand *rand.Rand
}

// Random builds a *model.Model per cfg.
func Random(cfg Config) (*model.Model, error) {
	if cfg.Variables < 1 {
		return nil, fmt.Errorf("variables=%d: %w", cfg.Variables, ErrTooFewVariables)
	}
	if cfg.Rand == nil {
		return nil, ErrNeedRandSource
	}
	if cfg.LatentFraction < 0 || cfg.LatentFraction > 1 {
		return nil, fmt.Errorf("latentFraction=%g: %w", cfg.LatentFraction, ErrInvalidFraction)
	}
	outcomesPer := cfg.OutcomesPerVariable
	if outcomesPer == 0 {
		outcomesPer = 2
	}
	maxParents := cfg.MaxParents
	if maxParents == 0 {
		maxParents = 2
	}

	names := make([]string, cfg.Variables)
	for i := range names {
		names[i] = fmt.Sprintf("V%d", i)
	}

	outcomes := make(map[string][]string, len(names))
	for _, n := range names {
		outs := make([]string, outcomesPer)
		for j := range outs {
			outs[j] = fmt.Sprintf("o%d", j)
		}
		outcomes[n] = outs
	}

	parents := make(map[string][]string, len(names))
	for i, n := range names {
		if i == 0 {
			continue // first variable is always a root
		}
		k := cfg.Rand.Intn(minInt(maxParents, i) + 1)
		pool := append([]string(nil), names[:i]...)
		cfg.Rand.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
		chosen := append([]string(nil), pool[:k]...)
		sort.Strings(chosen)
		parents[n] = chosen
	}

	latent := make(map[string]bool, len(names))
	for _, n := range names {
		if len(parents[n]) == 0 {
			continue // roots stay observable so every CPT chain has a base case
		}
		if cfg.Rand.Float64() < cfg.LatentFraction {
			latent[n] = true
		}
	}

	// Latent parents must be ordered last in any child's parent list
	// (spec §3); non-latent parents otherwise keep their sorted order.
	for n := range parents {
		ps := parents[n]
		sort.SliceStable(ps, func(i, j int) bool {
			return !latent[ps[i]] && latent[ps[j]]
		})
		parents[n] = ps
	}

	specs := make(map[string]model.VarSpec, len(names))
	for _, n := range names {
		spec := model.VarSpec{Outcomes: outcomes[n], Parents: parents[n]}
		if !latent[n] {
			spec.Table = randomTable(cfg.Rand, outcomes[n], parents[n], outcomes)
		}
		specs[n] = spec
	}

	return model.NewModel("random", specs)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// randomTable builds a complete, normalized CPT over ownOutcomes for every
// joint parent-outcome assignment.
func randomTable(r *rand.Rand, ownOutcomes, parents []string, outcomesByVar map[string][]string) []model.CPTRow {
	combos := [][]string{{}}
	for _, p := range parents {
		outs := outcomesByVar[p]
		next := make([][]string, 0, len(combos)*len(outs))
		for _, c := range combos {
			for _, o := range outs {
				next = append(next, append(append([]string(nil), c...), o))
			}
		}
		combos = next
	}

	var rows []model.CPTRow
	for _, combo := range combos {
		weights := make([]float64, len(ownOutcomes))
		total := 0.0
		for i := range weights {
			weights[i] = r.Float64() + 0.01 // avoid an all-zero row
			total += weights[i]
		}
		for i, o := range ownOutcomes {
			rows = append(rows, model.CPTRow{
				Outcome:        o,
				ParentOutcomes: append([]string(nil), combo...),
				Probability:    weights[i] / total,
			})
		}
	}
	return rows
}
