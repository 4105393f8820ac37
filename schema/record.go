// Package schema decodes enum schema documents into records.
//
// A document is either a bare list of definition records or an object
// holding them under "enums", optionally with a "requires" generator
// version constraint. JSON, YAML and TOML spellings decode to the same
// records.
package schema

// Record is one definition as written in a schema document.
type Record struct {
	Name           string
	Usage          string
	Namespace      string
	Type           string
	Options        []string
	Associations   []Association
	Values         []Value
	Comment        string
	Declarations   []string
	Default        string
	StringModifier string
	SearchModifier string
	Includes       []string
}

// Association declares one extra per-entry field.
type Association struct {
	Name   string
	Type   string
	Prefix string
}

// Value is one entry of a record. Tokens[0] is the "Name [= expr]" text;
// later tokens are the display string (under custom-strings) and the
// associated-field literals, already rendered as text.
type Value struct {
	Tokens []string
}

// Expression returns the "Name [= expr]" text of the entry.
func (v Value) Expression() string {
	if len(v.Tokens) == 0 {
		return ""
	}
	return v.Tokens[0]
}

// Document is a decoded schema file.
type Document struct {
	Path     string
	Requires string
	Records  []Record
}
