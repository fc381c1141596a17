// File: fresh.go
// Role: fresh bound-variable names for Sum nodes (spec §4.4, "Naming
// discipline"): X, X′, X″, X‴, then a numbered fallback. One counter per
// search call guarantees global freshness within that call.
package calculus

import (
	"fmt"
	"sync"
)

var primeMarks = []string{"′", "″", "‴"}

// FreshNamer hands out unique bound-variable names derived from an original
// model variable name.
type FreshNamer struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewFreshNamer returns a namer with an empty per-variable counter.
func NewFreshNamer() *FreshNamer {
	return &FreshNamer{counts: make(map[string]int)}
}

// Next returns the next fresh name derived from origVar, e.g. "X" -> "X′" ->
// "X″" -> "X‴" -> "X^4" -> ...
func (f *FreshNamer) Next(origVar string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.counts[origVar]
	f.counts[origVar] = n + 1
	if n < len(primeMarks) {
		return origVar + primeMarks[n]
	}
	return fmt.Sprintf("%s^%d", origVar, n+1)
}
