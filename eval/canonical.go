// File: canonical.go
// Role: canonical memoization keys for (Head, Body) pairs (spec §4.3,
// "Memoization"). Canonicalization sorts by variable name, breaking ties by
// flavor then outcome, so insertion order never affects the key.
package eval

import (
	"sort"
	"strings"

	"github.com/gocausal/docalc/model"
)

// canonicalKey returns a hashable string uniquely identifying the
// (head, body) pair up to assertion order.
func canonicalKey(head, body model.AssertionSet) string {
	var b strings.Builder
	b.WriteString("H{")
	writeSorted(&b, head)
	b.WriteString("}B{")
	writeSorted(&b, body)
	b.WriteByte('}')
	return b.String()
}

func writeSorted(b *strings.Builder, s model.AssertionSet) {
	cp := append(model.AssertionSet(nil), s...)
	sort.Slice(cp, func(i, j int) bool {
		if cp[i].Variable != cp[j].Variable {
			return cp[i].Variable < cp[j].Variable
		}
		if cp[i].Flavor != cp[j].Flavor {
			return cp[i].Flavor < cp[j].Flavor
		}
		return cp[i].Outcome < cp[j].Outcome
	})
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
}
