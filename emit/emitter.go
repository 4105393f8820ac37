// Package emit renders definitions as C++ declarations and definitions.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/teranos/enumgen/config"
	"github.com/teranos/enumgen/internal/casing"
	"github.com/teranos/enumgen/model"
)

// Options configure an Emitter for one artifact.
type Options struct {
	// Style restyles generated accessor names; one of the config.Style* values.
	Style string
	// ExportMacro is written between "struct" and the type name; may be empty.
	ExportMacro string
	// Fmtlib adds a fmt::formatter specialization for string-table types.
	Fmtlib bool
	// RootNamespace is imported into definitions living in another namespace.
	RootNamespace string
}

// Emitter renders definitions. It holds no per-definition state and may be
// shared between goroutines.
type Emitter struct {
	opts Options
}

// New creates an Emitter.
func New(opts Options) *Emitter {
	if opts.RootNamespace == "" {
		opts.RootNamespace = model.DefaultRootNamespace
	}
	return &Emitter{opts: opts}
}

// IncludeSet tracks headers already included by an artifact.
type IncludeSet map[string]struct{}

// NewIncludeSet creates an empty set.
func NewIncludeSet() IncludeSet { return make(IncludeSet) }

// add reports whether name was not yet in the set.
func (s IncludeSet) add(name string) bool {
	if _, ok := s[name]; ok || name == "" {
		return false
	}
	s[name] = struct{}{}
	return true
}

// Includes writes an #include line for every name not yet in seen.
func (e *Emitter) Includes(w io.Writer, seen IncludeSet, names ...string) error {
	var sb strings.Builder
	writeIncludes(&sb, seen, names)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeIncludes(sb *strings.Builder, seen IncludeSet, names []string) {
	for _, n := range names {
		if seen.add(n) {
			sb.WriteString(fmt.Sprintf("#include <%s>\n", n))
		}
	}
}

// SourceIncludes lists the standard headers d's definition code needs
// beyond the declaration headers.
func SourceIncludes(d *model.Definition) []string {
	if foldsSearch(d) {
		return []string{"algorithm", "string"}
	}
	return nil
}

func foldsSearch(d *model.Definition) bool {
	return d.StringTable() && !d.StringKey() && d.SearchModifier.IsFold()
}

// name restyles a generated accessor name ("ToValue", "GetSize").
func (e *Emitter) name(upperCamel string) string {
	switch e.opts.Style {
	case config.StyleLowerCamelCase:
		return casing.ToCamelCase(upperCamel)
	case config.StyleSnakeCase:
		return casing.ToSnakeCase(upperCamel)
	default:
		return upperCamel
	}
}

// getter restyles the accessor of a named field. Upper camel keeps the
// field name as written.
func (e *Emitter) getter(field string) string {
	if e.opts.Style == config.StyleLowerCamelCase || e.opts.Style == config.StyleSnakeCase {
		return e.name("Get " + field)
	}
	return "Get" + field
}

// Segments splits a namespace on "::" and ".".
func Segments(ns string) []string {
	var out []string
	for _, s := range strings.Split(strings.ReplaceAll(ns, ".", "::"), "::") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Qualified is ns in C++ scope syntax.
func Qualified(ns string) string {
	return strings.Join(Segments(ns), "::")
}

func (e *Emitter) openNamespace(sb *strings.Builder, ns string) {
	segs := Segments(ns)
	for _, s := range segs {
		sb.WriteString(fmt.Sprintf("namespace %s\n{\n", s))
	}
	if nestedIn(segs, Segments(e.opts.RootNamespace)) {
		sb.WriteString(fmt.Sprintf("using namespace %s;\n", Qualified(e.opts.RootNamespace)))
	}
}

// nestedIn reports whether segs names a namespace strictly inside root.
func nestedIn(segs, root []string) bool {
	if len(root) == 0 || len(segs) <= len(root) {
		return false
	}
	for i, s := range root {
		if segs[i] != s {
			return false
		}
	}
	return true
}

func closeNamespace(sb *strings.Builder, ns string) {
	segs := Segments(ns)
	for i := len(segs) - 1; i >= 0; i-- {
		sb.WriteString(fmt.Sprintf("} // namespace %s\n", segs[i]))
	}
}
