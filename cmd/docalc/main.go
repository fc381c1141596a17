// Command docalc is the CLI surface documented (but left external) by
// spec §6: subcommands p, backdoors, deconfound, jdt, topology,
// switch-file, sharing the flags --graph-file, --seed, --minimal-sets,
// --deconfounding-policy, and --depth-bound. Exit codes: 0 success, 1
// malformed model, 2 query parse error, 3 do-calculus failure, 4 I/O error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gocausal/docalc"
	"github.com/gocausal/docalc/calculus"
	"github.com/gocausal/docalc/config"
	"github.com/gocausal/docalc/model"
	"github.com/gocausal/docalc/modelio"
)

const (
	exitSuccess           = 0
	exitMalformedModel    = 1
	exitQueryParse        = 2
	exitDoCalculusFailure = 3
	exitIOError           = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: docalc <p|backdoors|deconfound|jdt|topology|switch-file> [flags]")
		return exitQueryParse
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	graphFile := fs.String("graph-file", "", "path to a .json/.yml/.yaml model file")
	seed := fs.Uint64("seed", 1, "RNG seed for policy random")
	minimalSets := fs.Bool("minimal-sets", false, "restrict the backdoor shortcut to minimal deconfounding sets")
	policyName := fs.String("deconfounding-policy", "ask", "ask|random|all")
	depthBound := fs.Int("depth-bound", 6, "maximum do-calculus rewrite depth")
	head := fs.String("head", "", "comma-separated Head assertions, e.g. Y=y")
	body := fs.String("body", "", "comma-separated Body assertions, e.g. X=x,do:Z=z")
	src := fs.String("src", "", "comma-separated source variable names")
	dst := fs.String("dst", "", "comma-separated destination variable names")
	blockers := fs.String("blockers", "", "comma-separated blocker variable names")
	if err := fs.Parse(rest); err != nil {
		return exitQueryParse
	}
	if *graphFile == "" {
		fmt.Fprintln(os.Stderr, "docalc: --graph-file is required")
		return exitIOError
	}

	m, err := modelio.Load(*graphFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "docalc:", err)
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return exitIOError
		}
		return exitMalformedModel
	}

	policy, err := parsePolicy(*policyName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "docalc:", err)
		return exitQueryParse
	}
	cfg := config.New(
		config.WithDepthBound(*depthBound),
		config.WithMinimalSets(*minimalSets),
		config.WithDeconfoundingPolicy(policy),
		config.WithSeed(*seed),
		config.WithAsk(func(candidates []map[string]bool) (map[string]bool, error) {
			// No interactive collaborator is wired up for the CLI; fall
			// back to the first candidate (smallest set, ties broken
			// lexicographically) deterministically.
			return candidates[0], nil
		}),
	)
	engine := docalc.New(m, cfg)

	switch sub {
	case "p":
		return runP(engine, *head, *body)
	case "backdoors":
		return runBackdoors(engine, *src, *dst, *blockers)
	case "deconfound":
		return runDeconfound(engine, *src, *dst)
	case "jdt":
		return runJDT(engine)
	case "topology":
		fmt.Println(strings.Join(engine.TopologicalOrder(), ", "))
		return exitSuccess
	case "switch-file":
		// The core is stateless across invocations (spec §6, "Persisted
		// state: None"); nothing to do beyond having already loaded m above.
		return exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "docalc: unknown subcommand %q\n", sub)
		return exitQueryParse
	}
}

func parsePolicy(name string) (calculus.Policy, error) {
	switch name {
	case "ask":
		return calculus.PolicyAsk, nil
	case "random":
		return calculus.PolicyRandom, nil
	case "all":
		return calculus.PolicyAll, nil
	default:
		return 0, fmt.Errorf("unknown deconfounding policy %q", name)
	}
}

func runP(e *docalc.Engine, headFlag, bodyFlag string) int {
	head, err := parseAssertions(headFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "docalc:", err)
		return exitQueryParse
	}
	body, err := parseAssertions(bodyFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "docalc:", err)
		return exitQueryParse
	}

	p, err := e.P(context.Background(), head, body)
	if err != nil {
		fmt.Fprintln(os.Stderr, "docalc:", err)
		if errors.Is(err, calculus.ErrDoCalculusFailed) || errors.Is(err, calculus.ErrInconsistentDeconfounding) {
			return exitDoCalculusFailure
		}
		return exitQueryParse
	}
	fmt.Printf("%.6f\n", p)
	return exitSuccess
}

func runBackdoors(e *docalc.Engine, srcFlag, dstFlag, blockersFlag string) int {
	paths := e.BackdoorPaths(parseNames(srcFlag), parseNames(dstFlag), parseNames(blockersFlag))
	for _, p := range paths {
		fmt.Println(strings.Join(p, " -> "))
	}
	return exitSuccess
}

func runDeconfound(e *docalc.Engine, srcFlag, dstFlag string) int {
	sets := e.DeconfoundingSets(parseNames(srcFlag), parseNames(dstFlag))
	for _, z := range sets {
		names := make([]string, 0, len(z))
		for n := range z {
			names = append(names, n)
		}
		fmt.Println("{" + strings.Join(names, ", ") + "}")
	}
	return exitSuccess
}

func runJDT(e *docalc.Engine) int {
	rows, err := e.JointDistributionTable()
	if err != nil {
		fmt.Fprintln(os.Stderr, "docalc:", err)
		return exitQueryParse
	}
	for _, r := range rows {
		parts := make([]string, len(r.Assignment))
		for i, a := range r.Assignment {
			parts[i] = a.Variable + "=" + a.Outcome
		}
		fmt.Printf("%s: %.6f\n", strings.Join(parts, ", "), r.Probability)
	}
	return exitSuccess
}

// parseNames splits a comma-separated list into a membership set, "" -> nil.
func parseNames(s string) map[string]bool {
	if s == "" {
		return nil
	}
	out := make(map[string]bool)
	for _, n := range strings.Split(s, ",") {
		out[strings.TrimSpace(n)] = true
	}
	return out
}

// parseAssertions parses "X=x,do:Z=z" into an AssertionSet: a "do:" prefix
// marks an intervention, otherwise the assertion is an observation.
func parseAssertions(s string) (model.AssertionSet, error) {
	if s == "" {
		return nil, nil
	}
	var out model.AssertionSet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		flavor := model.Observed
		if strings.HasPrefix(part, "do:") {
			flavor = model.Intervened
			part = strings.TrimPrefix(part, "do:")
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed assertion %q: expected VAR=outcome", part)
		}
		out = append(out, model.Assertion{Variable: kv[0], Outcome: kv[1], Flavor: flavor})
	}
	return out, nil
}
