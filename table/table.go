// Package table builds the value tuples and the sorted string table of a
// definition. The emitter renders it; the lookup package searches it.
package table

import (
	"sort"

	"github.com/spaolacci/murmur3"

	"github.com/teranos/enumgen/model"
)

// Row is one string-table entry.
type Row struct {
	Entry *model.Entry
	// Key is the stored string: the display string after the string modifier.
	Key string
	// Hash is Hash(Key); only meaningful under string-key.
	Hash uint32
	// Value is the tuple literal, one rendered element per field.
	Value []string
}

// Table is the built table of one definition.
type Table struct {
	Def *model.Definition
	// Rows is in physical table order. Empty when the string table is off.
	Rows []Row

	values  map[*model.Entry][]string
	def     int
	ordered Order
}

// Order is the physical sort policy of a table.
type Order int

const (
	// OrderLexical sorts ascending by stored string.
	OrderLexical Order = iota
	// OrderLongestFirst sorts by descending length, then lexically.
	OrderLongestFirst
	// OrderHash sorts ascending by hashed key, ties lexically.
	OrderHash
)

// Hash is the string-key hash: murmur3 x86 32-bit, seed 0.
func Hash(s string) uint32 {
	return murmur3.Sum32([]byte(s))
}

// Build computes every entry's value tuple and, when the string table is
// on, the sorted rows.
func Build(d *model.Definition) *Table {
	t := &Table{
		Def:     d,
		values:  make(map[*model.Entry][]string, len(d.Entries)),
		def:     -1,
		ordered: OrderFor(d),
	}
	for _, e := range d.Entries {
		t.values[e] = tuple(d, e)
	}
	if !d.StringTable() {
		return t
	}

	t.Rows = make([]Row, 0, len(d.Entries))
	for _, e := range d.Entries {
		key := d.StoredString(e)
		t.Rows = append(t.Rows, Row{Entry: e, Key: key, Hash: Hash(key), Value: t.values[e]})
	}
	sortRows(t.Rows, t.ordered)
	for i := range t.Rows {
		if d.IsDefault(t.Rows[i].Entry) {
			t.def = i
		}
	}
	return t
}

// OrderFor picks the sort policy of d's string table.
func OrderFor(d *model.Definition) Order {
	switch {
	case d.LongestMatch():
		return OrderLongestFirst
	case d.StringKey():
		return OrderHash
	default:
		return OrderLexical
	}
}

// Order reports the policy Rows are sorted by.
func (t *Table) Order() Order { return t.ordered }

// ValueOf returns the tuple literal of e; the ToValue switch and the table
// share it.
func (t *Table) ValueOf(e *model.Entry) []string {
	return t.values[e]
}

// Default returns the row of the default entry, or nil.
func (t *Table) Default() *Row {
	if t.def < 0 {
		return nil
	}
	return &t.Rows[t.def]
}

func tuple(d *model.Definition, e *model.Entry) []string {
	out := make([]string, 0, len(d.Fields))
	if d.StringTable() {
		out = append(out, model.Quote(d.StoredString(e)))
	}
	for i, f := range d.UserFields() {
		if i < len(e.Literals) {
			out = append(out, f.Literal(e.Literals[i]))
		} else {
			out = append(out, f.ZeroLiteral())
		}
	}
	return out
}

func sortRows(rows []Row, o Order) {
	var less func(a, b Row) bool
	switch o {
	case OrderLongestFirst:
		less = func(a, b Row) bool {
			if len(a.Key) != len(b.Key) {
				return len(a.Key) > len(b.Key)
			}
			return a.Key < b.Key
		}
	case OrderHash:
		less = func(a, b Row) bool {
			if a.Hash != b.Hash {
				return a.Hash < b.Hash
			}
			return a.Key < b.Key
		}
	default:
		less = func(a, b Row) bool { return a.Key < b.Key }
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}
