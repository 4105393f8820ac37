// Package model normalizes schema records into definitions ready for emission.
package model

import "strings"

// Definition is one enum, flag set or const group, fully normalized.
// It is built once by Build and only read afterwards.
type Definition struct {
	Name      string
	Namespace string
	Usage     Usage
	Width     Width
	Options   Options

	StringModifier Modifier
	SearchModifier Modifier

	// Fields is the value tuple layout: the string (or key) slot first when
	// the string table is on, then the user associations.
	Fields       []Field
	Declarations []string
	Comment      string
	DefaultName  string
	Includes     []string

	Entries []*Entry
	// Default is the synthesized or named default entry; nil when there is none.
	Default *Entry

	byName map[string]*Entry
}

// String slot types
const (
	StringSlotType = "std::string_view"
	KeySlotType    = "enums::Key"
)

// HasEnum reports whether an Enum type is emitted.
func (d *Definition) HasEnum() bool { return d.Usage == UsageEnum || d.Usage == UsageAutoFlags }

// HasFlags reports whether a Bit type is emitted.
func (d *Definition) HasFlags() bool { return d.Usage == UsageFlags || d.Usage == UsageAutoFlags }

// HasConsts reports whether a Const type is emitted.
func (d *Definition) HasConsts() bool { return d.Usage == UsageConst }

// PrimaryForm is the form lookups and ToValue are keyed by.
func (d *Definition) PrimaryForm() Form {
	switch {
	case d.HasEnum():
		return FormEnum
	case d.HasFlags():
		return FormFlag
	default:
		return FormConst
	}
}

// StringTable reports whether a string table and its lookups are emitted.
func (d *Definition) StringTable() bool { return d.Options.Has(OptStringTable) }

// StringKey reports whether the string table is keyed by hashed enums::Key.
func (d *Definition) StringKey() bool { return d.Options.Has(OptStringKey) }

// LongestMatch reports whether prefix or suffix lookups replace FromString.
func (d *Definition) LongestMatch() bool {
	return d.Options.Has(OptPrefixMatch) || d.Options.Has(OptSuffixMatch)
}

// HasCountSentinel reports whether kCount / fLastFlag are emitted.
func (d *Definition) HasCountSentinel() bool { return !d.Options.Has(OptSkipLastElement) }

// HasValue reports whether a Value tuple and ToValue are emitted.
func (d *Definition) HasValue() bool { return len(d.Fields) > 0 }

// SlotCount is 1 when Fields starts with the string slot.
func (d *Definition) SlotCount() int {
	if d.StringTable() {
		return 1
	}
	return 0
}

// UserFields are the associations after the string slot.
func (d *Definition) UserFields() []Field { return d.Fields[d.SlotCount():] }

// StoredString is the text stored in the string table for e.
func (d *Definition) StoredString(e *Entry) string {
	return d.StringModifier.Apply(e.Display)
}

// Fold applies the search modifier to a lookup probe.
func (d *Definition) Fold(probe string) string {
	if d.SearchModifier.IsFold() {
		return d.SearchModifier.Apply(probe)
	}
	return probe
}

// Lookup finds an entry by raw or normalized name.
func (d *Definition) Lookup(name string) *Entry {
	return d.byName[name]
}

// Resolve renders e's value expression with sibling references in form f.
func (d *Definition) Resolve(e *Entry, f Form) string {
	return e.Value.Resolve(d.Lookup, f)
}

// AliasOf returns the earlier entry e is set equal to by name, or nil.
// Aliases share their target's enumerator, so a switch over the Enum must
// not label them again.
func (d *Definition) AliasOf(e *Entry) *Entry {
	if !e.Explicit {
		return nil
	}
	ref := d.Lookup(strings.TrimSpace(e.Value.String()))
	if ref == nil || ref.Ordinal >= e.Ordinal {
		return nil
	}
	if next := d.AliasOf(ref); next != nil {
		return next
	}
	return ref
}

// IsDefault reports whether e is the default entry.
func (d *Definition) IsDefault(e *Entry) bool { return d.Default != nil && e == d.Default }
