// Package lookup searches a built string table the same way the generated
// C++ lookups do. It backs the lookup command and pins the table contract
// in tests.
package lookup

import (
	"sort"
	"strings"

	"github.com/teranos/enumgen/table"
)

// linearLimit is the row count up to which exact lookup scans linearly.
const linearLimit = 16

// Hash is the string-key hash used by FromStringKey tables.
func Hash(s string) uint32 { return table.Hash(s) }

// Exact finds the row whose stored string equals the folded probe. On a
// miss it returns the default row (nil when there is none) and false.
func Exact(t *table.Table, probe string) (*table.Row, bool) {
	if t.Def.StringKey() {
		return Key(t, Hash(probe))
	}
	probe = t.Def.Fold(probe)

	if t.Order() != table.OrderLexical || len(t.Rows) <= linearLimit {
		for i := range t.Rows {
			if t.Rows[i].Key == probe {
				return &t.Rows[i], true
			}
		}
		return t.Default(), false
	}

	i := sort.Search(len(t.Rows), func(i int) bool { return t.Rows[i].Key >= probe })
	if i < len(t.Rows) && t.Rows[i].Key == probe {
		return &t.Rows[i], true
	}
	return t.Default(), false
}

// Key finds the row with the given hashed key.
func Key(t *table.Table, key uint32) (*table.Row, bool) {
	if t.Order() != table.OrderHash {
		for i := range t.Rows {
			if t.Rows[i].Hash == key {
				return &t.Rows[i], true
			}
		}
		return t.Default(), false
	}
	i := sort.Search(len(t.Rows), func(i int) bool { return t.Rows[i].Hash >= key })
	if i < len(t.Rows) && t.Rows[i].Hash == key {
		return &t.Rows[i], true
	}
	return t.Default(), false
}

// LongestPrefix finds the row with the longest stored string that starts
// the folded probe, and returns the rest of the original probe after it.
// On a miss the rest is the whole probe.
func LongestPrefix(t *table.Table, probe string) (*table.Row, string, bool) {
	folded := t.Def.Fold(probe)
	if r := longest(t, func(k string) bool { return strings.HasPrefix(folded, k) }); r != nil {
		return r, probe[len(r.Key):], true
	}
	return t.Default(), probe, false
}

// LongestSuffix mirrors LongestPrefix for the end of the probe; the rest is
// the part of the original probe before the match.
func LongestSuffix(t *table.Table, probe string) (*table.Row, string, bool) {
	folded := t.Def.Fold(probe)
	if r := longest(t, func(k string) bool { return strings.HasSuffix(folded, k) }); r != nil {
		return r, probe[:len(probe)-len(r.Key)], true
	}
	return t.Default(), probe, false
}

func longest(t *table.Table, match func(string) bool) *table.Row {
	var best *table.Row
	for i := range t.Rows {
		r := &t.Rows[i]
		if !match(r.Key) {
			continue
		}
		// longest-first tables can stop at the first hit
		if t.Order() == table.OrderLongestFirst {
			return r
		}
		if best == nil || len(r.Key) > len(best.Key) {
			best = r
		}
	}
	return best
}
