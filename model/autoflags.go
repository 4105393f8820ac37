package model

import (
	"math/bits"
	"strconv"
	"strings"
)

// Bit is the derived flag value of one autoflags entry. Known is false when
// the entry's enumerator comes from an expression that cannot be evaluated
// here; the flag is still emitted, only its value is left to the compiler.
type Bit struct {
	Entry *Entry
	Value uint64
	Known bool
}

// DeriveBits numbers autoflags entries: the forced-zero None is 0, every
// other entry is 1 << its enumerator. The second result is fLastFlag, one
// bit past the last enumerator, or 0 when that enumerator is not known; ok
// is false when fLastFlag is not emitted or the definition is not autoflags.
func DeriveBits(d *Definition) (out []Bit, lastFlag uint64, ok bool) {
	if d.Usage != UsageAutoFlags {
		return nil, 0, false
	}
	enums, count := d.enumerators()
	out = make([]Bit, 0, len(d.Entries))
	for i, e := range d.Entries {
		if e.ForcedZero {
			out = append(out, Bit{Entry: e, Known: true})
			continue
		}
		b := Bit{Entry: e, Known: enums[i].known}
		if b.Known {
			b.Value = BitFromEnumerator(int(enums[i].value))
		}
		out = append(out, b)
	}
	if !d.HasCountSentinel() {
		return out, 0, false
	}
	if count.known {
		lastFlag = BitFromEnumerator(int(count.value))
	}
	return out, lastFlag, true
}

type enumerator struct {
	value uint64
	known bool
}

// enumerators numbers the Enum list the way the compiler does: implicit
// entries follow their predecessor, explicit ones take their value. count
// is the enumerator after the last entry.
func (d *Definition) enumerators() (out []enumerator, count enumerator) {
	out = make([]enumerator, len(d.Entries))
	next := enumerator{known: true}
	for i, e := range d.Entries {
		cur := next
		switch {
		case e.ForcedZero:
			cur = enumerator{known: true}
		case e.Explicit:
			cur = d.evalEnumerator(e.Value, out[:i])
		}
		out[i] = cur
		next = enumerator{value: cur.value + 1, known: cur.known}
	}
	return out, next
}

// evalEnumerator understands integer literals and the name of an earlier
// entry. Anything else is unknown.
func (d *Definition) evalEnumerator(x Expr, earlier []enumerator) enumerator {
	text := strings.TrimSpace(x.String())
	if v, err := strconv.ParseUint(strings.TrimRight(text, "uUlL"), 0, 64); err == nil {
		return enumerator{value: v, known: true}
	}
	if ref := d.Lookup(text); ref != nil && ref.Ordinal < len(earlier) {
		return earlier[ref.Ordinal]
	}
	return enumerator{}
}

// BitFromEnumerator is 1 << ordinal.
func BitFromEnumerator(ordinal int) uint64 {
	return 1 << uint(ordinal)
}

// EnumeratorFromBit inverts BitFromEnumerator for single-bit values.
// Multi-bit input has no meaningful result.
func EnumeratorFromBit(bit uint64) int {
	return bits.OnesCount64(bit - 1)
}
