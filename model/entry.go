package model

import "strings"

// Entry is one member of a definition.
type Entry struct {
	// Name as written; may contain dots and blanks.
	Name string
	// Display is the string-table text before the string modifier is applied.
	Display string
	// Value is the raw value expression; empty means "next in sequence".
	Value Expr
	// Literals are the associated-field tokens aligned with the user fields.
	Literals []string
	// ForcedZero marks the synthesized None of a flags definition.
	ForcedZero bool
	// Explicit is set when the source wrote "= expr".
	Explicit bool
	// Synthesized marks the generated Unknown/None/Invalid default.
	Synthesized bool
	// Ordinal is the position in the definition's entry list.
	Ordinal int
}

// Ident is the entry name with dots and blanks replaced by underscores.
func (e *Entry) Ident() string {
	return strings.NewReplacer(".", "_", " ", "_").Replace(e.Name)
}

// Member is the struct member spelling in form f, e.g. eRed or fRead.
func (e *Entry) Member(f Form) string {
	return f.prefix() + e.Ident()
}

// Field is one slot of the per-entry value tuple.
type Field struct {
	Name   string
	Type   string
	Prefix string
}

var stringLikeTypes = map[string]bool{
	"String":           true,
	"StringView":       true,
	"string":           true,
	"string_view":      true,
	"std::string":      true,
	"std::string_view": true,
}

// StringLike reports whether literals of this field are quoted.
func (f Field) StringLike() bool { return stringLikeTypes[f.Type] }

// ZeroLiteral is the literal used when an entry supplies no value for f.
func (f Field) ZeroLiteral() string {
	if f.StringLike() {
		return `""`
	}
	return f.Type + "(0)"
}

// Literal renders a supplied token for f: quoted with the prefix inside for
// string-like types, otherwise with the prefix on every identifier word.
func (f Field) Literal(token string) string {
	if f.StringLike() {
		return Quote(f.Prefix + token)
	}
	return PrefixWords(f.Prefix, token)
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Quote renders s as a C++ string literal.
func Quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}
