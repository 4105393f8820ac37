package model

import (
	"strings"

	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/logger"
	"github.com/teranos/enumgen/schema"
)

// DefaultRootNamespace is used when neither the record nor Env names one.
const DefaultRootNamespace = "lumiere"

// Env carries the run-wide settings a definition is built against.
type Env struct {
	// RootNamespace is the namespace of records that do not set one.
	RootNamespace string
	// StringHashHeader declares enums::Key; string-key definitions include it.
	StringHashHeader string
}

// Build normalizes one schema record into a Definition.
func Build(rec schema.Record, env Env) (*Definition, error) {
	if rec.Name == "" {
		return nil, errors.NewSchemaError("definition has no name")
	}

	d := &Definition{
		Name:           rec.Name,
		Namespace:      rec.Namespace,
		Usage:          ParseUsage(rec.Usage),
		Width:          ParseWidth(rec.Type),
		StringModifier: ParseModifier(rec.StringModifier),
		SearchModifier: ParseModifier(rec.SearchModifier),
		Declarations:   rec.Declarations,
		Comment:        rec.Comment,
		DefaultName:    rec.Default,
		byName:         make(map[string]*Entry),
	}
	if d.Namespace == "" {
		d.Namespace = env.RootNamespace
	}
	if d.Namespace == "" {
		d.Namespace = DefaultRootNamespace
	}

	var unknown []string
	d.Options, unknown = ParseOptions(rec.Options)
	if len(unknown) > 0 {
		logger.Debugw("Ignoring unknown options", logger.FieldDefinition, d.Name, "options", unknown)
	}

	if d.StringTable() {
		slot := StringSlotType
		if d.StringKey() {
			slot = KeySlotType
		}
		d.Fields = append(d.Fields, Field{Type: slot})
	}
	for i, a := range rec.Associations {
		if strings.TrimSpace(a.Type) == "" {
			return nil, errors.WithHint(
				errors.NewSchemaError("%s.associations[%d] %q has no type", d.Name, i, a.Name),
				"give every association a C++ type, for example std::string_view or float")
		}
		d.Fields = append(d.Fields, Field{Name: a.Name, Type: a.Type, Prefix: a.Prefix})
	}

	d.Includes = append(d.Includes, rec.Includes...)
	if d.StringKey() && env.StringHashHeader != "" {
		d.Includes = append(d.Includes, env.StringHashHeader)
	}

	if rec.Default == "" && d.Options.Has(OptAutoDefault) {
		if err := d.add(synthesizeDefault(d.Usage, d.Width)); err != nil {
			return nil, err
		}
		d.Default = d.Entries[0]
	}

	for i, v := range rec.Values {
		e, err := d.parseEntry(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.values[%d]", d.Name, i)
		}
		if err := d.add(e); err != nil {
			return nil, err
		}
		if rec.Default != "" && e.Name == rec.Default {
			d.Default = e
		}
	}
	if rec.Default != "" && d.Default == nil {
		logger.Warnw("Default names no entry; lookups fall back to zero",
			logger.FieldDefinition, d.Name, "default", rec.Default)
	}

	if err := d.checkAutoFlags(); err != nil {
		return nil, err
	}
	if err := d.applySearchFold(); err != nil {
		return nil, err
	}
	d.warnDuplicateStrings()

	logger.Debugw("Built definition",
		logger.FieldDefinition, d.Name,
		logger.FieldUsage, d.Usage.String(),
		logger.FieldEntries, len(d.Entries))
	return d, nil
}

func synthesizeDefault(u Usage, w Width) *Entry {
	e := &Entry{Value: Literal(w.Sentinel()), Synthesized: true}
	switch u {
	case UsageFlags, UsageAutoFlags:
		e.Name = "None"
		e.ForcedZero = true
	case UsageConst:
		e.Name = "Invalid"
	default:
		e.Name = "Unknown"
	}
	e.Display = e.Name
	return e
}

// add appends e, rejecting names that collide after normalization.
func (d *Definition) add(e *Entry) error {
	ident := e.Ident()
	if prev, ok := d.byName[ident]; ok {
		return errors.WithHint(
			errors.Wrapf(errors.ErrDuplicateEntry, "%s: %q and %q both normalize to %s",
				d.Name, prev.Name, e.Name, ident),
			"rename one of the entries, or use no-auto-default if it duplicates the generated default")
	}
	e.Ordinal = len(d.Entries)
	d.Entries = append(d.Entries, e)
	d.byName[ident] = e
	d.byName[e.Name] = e
	return nil
}

func (d *Definition) parseEntry(v schema.Value) (*Entry, error) {
	name, expr, explicit, err := splitEntry(v.Expression())
	if err != nil {
		return nil, err
	}

	e := &Entry{Name: name, Display: name, Explicit: explicit}
	if explicit {
		e.Value = ParseExpr(expr)
	} else if d.anchorsOrdinals() {
		e.Value = Literal("0")
	}

	rest := v.Tokens[1:]
	if d.Options.Has(OptCustomStrings) && len(v.Tokens) >= 2 {
		e.Display = v.Tokens[1]
		rest = v.Tokens[2:]
	}
	if len(rest) > 0 {
		e.Literals = rest
	}
	if user := len(d.UserFields()); len(e.Literals) > user {
		logger.Debugw("Ignoring extra associated values",
			logger.FieldDefinition, d.Name, logger.FieldEntry, name,
			"fields", user, "values", len(e.Literals))
	}
	return e, nil
}

// anchorsOrdinals reports whether the next implicit entry must be pinned
// to 0: the first user entry after a synthesized Enum or flags default,
// whose sentinel would otherwise push numbering past the maximum.
func (d *Definition) anchorsOrdinals() bool {
	if len(d.Entries) != 1 || !d.Entries[0].Synthesized {
		return false
	}
	return d.Usage == UsageEnum || d.Entries[0].ForcedZero
}

// splitEntry parses "Name [= expr]". The name is the leading run of word
// characters, dots and blanks.
func splitEntry(text string) (name, expr string, explicit bool, err error) {
	head := text
	if i := strings.IndexByte(text, '='); i >= 0 {
		head = text[:i]
		expr = strings.TrimSpace(text[i+1:])
		explicit = true
	}
	head = strings.TrimSpace(head)

	end := 0
	for end < len(head) && (isWordByte(head[end]) || head[end] == ' ') {
		end++
	}
	name = strings.TrimSpace(head[:end])

	if name == "" {
		return "", "", false, errors.NewSchemaError("entry %q has no name", text)
	}
	if explicit && expr == "" {
		return "", "", false, errors.NewSchemaError("entry %q has '=' but no value", text)
	}
	return name, expr, explicit, nil
}

func (d *Definition) checkAutoFlags() error {
	if d.Usage != UsageAutoFlags {
		return nil
	}
	enums, count := d.enumerators()
	if d.HasCountSentinel() {
		enums = append(enums, count)
	}
	var highest uint64
	for _, en := range enums {
		if en.known && en.value > highest {
			highest = en.value
		}
	}
	if highest >= uint64(d.Width.Bits()) {
		return errors.WithHint(
			errors.NewSchemaError("%s: %d autoflags bits do not fit in %d bits", d.Name, highest+1, d.Width.Bits()),
			"set type to uint64 or add skip-last-element")
	}
	return nil
}

// applySearchFold makes stored strings agree with folded probes: a fold
// with no string modifier becomes the string modifier, otherwise every
// stored string must already be folded.
func (d *Definition) applySearchFold() error {
	if d.SearchModifier == ModNone {
		return nil
	}
	if !d.SearchModifier.IsFold() || !d.StringTable() || d.StringKey() {
		logger.Debugw("Ignoring search modifier",
			logger.FieldDefinition, d.Name, "modifier", d.SearchModifier.String())
		d.SearchModifier = ModNone
		return nil
	}
	if d.StringModifier == ModNone {
		d.StringModifier = d.SearchModifier
		return nil
	}
	for _, e := range d.Entries {
		s := d.StoredString(e)
		if folded := d.SearchModifier.Apply(s); folded != s {
			return errors.WithHintf(
				errors.Wrapf(errors.ErrSearchFoldMismatch, "%s.%s: stored %q never matches probes folded to %q",
					d.Name, e.Name, s, folded),
				"set stringModifier to %q or drop it", d.SearchModifier.String())
		}
	}
	return nil
}

func (d *Definition) warnDuplicateStrings() {
	if !d.StringTable() {
		return
	}
	seen := make(map[string]string, len(d.Entries))
	for _, e := range d.Entries {
		s := d.StoredString(e)
		if prev, ok := seen[s]; ok {
			logger.Warnw("Duplicate display string; lookups return either entry",
				logger.FieldDefinition, d.Name, "string", s, "entries", []string{prev, e.Name})
			continue
		}
		seen[s] = e.Name
	}
}
