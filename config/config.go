// File: config.go
// Role: functional options over calculus.Config plus the logger a
// docalc.Engine should use, mirroring the teacher's builder.BuilderOption
// pattern (see builder/options.go in the lvlath repository this module
// grew out of).
package config

import (
	"math/rand"

	"github.com/gocausal/docalc/calculus"
	"github.com/gocausal/docalc/obslog"
)

// Config bundles everything a docalc.Engine needs beyond the model itself.
type Config struct {
	Calculus calculus.Config
	Logger   *obslog.Logger
}

// Option customizes a Config before it is built.
type Option func(*Config)

// New assembles a Config from opts, defaulting to a depth bound of 6, no
// step budget, minimal-sets disabled, PolicyAsk, and a no-op logger.
func New(opts ...Option) Config {
	cfg := Config{
		Calculus: calculus.Config{
			MaxDepth:            6,
			Tolerance:           1e-6,
			DeconfoundingPolicy: calculus.PolicyAsk,
		},
		Logger: obslog.Noop(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithDepthBound sets the do-calculus search's maximum rewrite depth.
// Panics on a non-positive bound: a search that can never deepen can never
// succeed, which is a programmer error, not a runtime condition.
func WithDepthBound(n int) Option {
	if n <= 0 {
		panic("config: WithDepthBound requires n > 0")
	}
	return func(c *Config) { c.Calculus.MaxDepth = n }
}

// WithStepBudget caps successor expansions per depth iteration. 0 (the
// default) means unbounded.
func WithStepBudget(n int) Option {
	if n < 0 {
		panic("config: WithStepBudget requires n >= 0")
	}
	return func(c *Config) { c.Calculus.StepBudget = n }
}

// WithMinimalSets restricts the backdoor shortcut to minimal deconfounding
// sets.
func WithMinimalSets(enabled bool) Option {
	return func(c *Config) { c.Calculus.MinimalSets = enabled }
}

// WithTolerance overrides the numeric tolerance PolicyAll uses to detect
// divergent deconfounding-set results.
func WithTolerance(tol float64) Option {
	if tol < 0 {
		panic("config: WithTolerance requires tol >= 0")
	}
	return func(c *Config) { c.Calculus.Tolerance = tol }
}

// WithDeconfoundingPolicy selects among ask/random/all.
func WithDeconfoundingPolicy(p calculus.Policy) Option {
	return func(c *Config) { c.Calculus.DeconfoundingPolicy = p }
}

// WithSeed builds a deterministic *rand.Rand from seed, for PolicyRandom.
// Prefer this over WithRand for reproducible test runs.
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Calculus.Rand = rand.New(rand.NewSource(int64(seed))) }
}

// WithRand provides an explicit RNG. Panics on nil to surface the
// programmer error immediately rather than deferring to a later nil-deref.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("config: WithRand(nil)")
	}
	return func(c *Config) { c.Calculus.Rand = r }
}

// WithAsk supplies the external collaborator callback PolicyAsk requires.
func WithAsk(fn func(candidates []map[string]bool) (map[string]bool, error)) Option {
	if fn == nil {
		panic("config: WithAsk(nil)")
	}
	return func(c *Config) { c.Calculus.Ask = fn }
}

// WithLogger overrides the default no-op logger.
func WithLogger(l *obslog.Logger) Option {
	if l == nil {
		panic("config: WithLogger(nil)")
	}
	return func(c *Config) { c.Logger = l }
}
