package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/teranos/enumgen/model"
	"github.com/teranos/enumgen/table"
)

// Definition writes the source text of d: the ToValue switch, the sorted
// string table, Table() and the lookup bodies. Search logic is delegated to
// the enums:: helpers of the string-hash support header.
func (e *Emitter) Definition(w io.Writer, d *model.Definition) error {
	if !d.HasValue() && !d.StringTable() {
		return nil
	}
	t := table.Build(d)

	var sb strings.Builder
	sb.WriteString("\n")
	e.openNamespace(&sb, d.Namespace)
	if d.HasValue() {
		e.toValue(&sb, t)
	}
	if d.StringTable() {
		e.stringTable(&sb, t)
		e.lookupBodies(&sb, d)
	}
	closeNamespace(&sb, d.Namespace)

	_, err := io.WriteString(w, sb.String())
	return err
}

func (e *Emitter) toValue(sb *strings.Builder, t *table.Table) {
	d := t.Def
	form := d.PrimaryForm()
	sb.WriteString(fmt.Sprintf("%s::Value %s::%s(%s iValue)\n{\n  switch (iValue)\n  {\n",
		d.Name, d.Name, e.name("ToValue"), form.TypeName()))
	for _, en := range d.Entries {
		if d.AliasOf(en) != nil {
			if d.IsDefault(en) {
				sb.WriteString(fmt.Sprintf("  default: return Value{%s};\n", strings.Join(t.ValueOf(en), ", ")))
			}
			continue
		}
		if d.IsDefault(en) {
			sb.WriteString("  default:\n")
		}
		sb.WriteString(fmt.Sprintf("  case %s: return Value{%s};\n",
			en.Member(form), strings.Join(t.ValueOf(en), ", ")))
	}
	sb.WriteString("  }\n  return Value{};\n}\n")
}

func (e *Emitter) stringTable(sb *strings.Builder, t *table.Table) {
	d := t.Def
	form := d.PrimaryForm()
	tuple := d.Name + "Tuple"
	arr := fmt.Sprintf("std::array<%s, %d>", tuple, len(t.Rows))
	name := tableName(d)

	sb.WriteString(fmt.Sprintf("\nusing %s = %s::Tuple;\n\n", tuple, d.Name))
	if d.StringKey() {
		sb.WriteString(fmt.Sprintf("static const %s %s = enums::sortTuple<%s, 0>(%s{\n", arr, name, arr, arr))
	} else {
		sb.WriteString(fmt.Sprintf("static const %s %s = {\n", arr, name))
	}
	for _, r := range t.Rows {
		row := fmt.Sprintf("  %s{%s, %s::%s},", tuple, model.Quote(r.Key), d.Name, r.Entry.Member(form))
		if d.StringKey() {
			row += fmt.Sprintf(" // 0x%08x", r.Hash)
		}
		sb.WriteString(row + "\n")
	}
	if d.StringKey() {
		sb.WriteString("});\n")
	} else {
		sb.WriteString("};\n")
	}

	sb.WriteString(fmt.Sprintf("\nconst std::array<%s::Tuple, %d>& %s::%s()\n{\n  return %s;\n}\n",
		d.Name, len(t.Rows), d.Name, e.name("Table"), name))
}

func (e *Emitter) lookupBodies(sb *strings.Builder, d *model.Definition) {
	vt := d.PrimaryForm().TypeName()
	name := tableName(d)
	fallback := fallbackValue(d)

	switch {
	case d.StringKey():
		sb.WriteString(fmt.Sprintf("\n%s::%s %s::%s(%s iValue)\n{\n", d.Name, vt, d.Name, e.name("FromStringKey"), model.KeySlotType))
		sb.WriteString(fmt.Sprintf("  return enums::fromString(%s, iValue, %s);\n}\n", name, fallback))
	case d.LongestMatch():
		if d.Options.Has(model.OptPrefixMatch) {
			e.longestBody(sb, d, e.name("StartsWith"), "enums::stringStartsWith", "iValue.substr(iValue.size() - rest.size())")
		}
		if d.Options.Has(model.OptSuffixMatch) {
			e.longestBody(sb, d, e.name("EndsWith"), "enums::stringEndsWith", "iValue.substr(0, rest.size())")
		}
	default:
		sb.WriteString(fmt.Sprintf("\n%s::%s %s::%s(std::string_view iValue)\n{\n", d.Name, vt, d.Name, e.name("FromString")))
		if foldsSearch(d) {
			writeFold(sb, d.SearchModifier)
			sb.WriteString("  iValue = cpy;\n")
		}
		sb.WriteString(fmt.Sprintf("  return enums::fromString(%s, iValue, %s);\n}\n", name, fallback))
	}
}

// longestBody writes a StartsWith/EndsWith body. With a search fold the
// helper searches a folded copy and the remainder is cut from the caller's
// string, so the returned view never points into the local copy.
func (e *Emitter) longestBody(sb *strings.Builder, d *model.Definition, fn, helper, rest string) {
	vt := d.PrimaryForm().TypeName()
	sb.WriteString(fmt.Sprintf("\nstd::tuple<%s::%s, std::string_view> %s::%s(std::string_view iValue)\n{\n",
		d.Name, vt, d.Name, fn))
	if !foldsSearch(d) {
		sb.WriteString(fmt.Sprintf("  return %s(%s, iValue, %s);\n}\n", helper, tableName(d), fallbackValue(d)))
		return
	}
	writeFold(sb, d.SearchModifier)
	sb.WriteString(fmt.Sprintf("  auto [value, rest] = %s(%s, std::string_view{cpy}, %s);\n", helper, tableName(d), fallbackValue(d)))
	sb.WriteString(fmt.Sprintf("  return {value, %s};\n}\n", rest))
}

func writeFold(sb *strings.Builder, m model.Modifier) {
	fn := "::tolower"
	if m == model.ModUpper {
		fn = "::toupper"
	}
	sb.WriteString("  std::string cpy{iValue};\n")
	sb.WriteString(fmt.Sprintf("  std::transform(std::begin(cpy), std::end(cpy), std::begin(cpy), %s);\n", fn))
}

func tableName(d *model.Definition) string {
	return "k" + d.Name + "StringTable"
}

// fallbackValue is what lookups return on a miss: the default entry, or
// the zero value when the definition has none.
func fallbackValue(d *model.Definition) string {
	form := d.PrimaryForm()
	if d.Default == nil {
		return fmt.Sprintf("%s::%s(0)", d.Name, form.TypeName())
	}
	return fmt.Sprintf("%s::%s::%s", d.Name, form.TypeName(), d.Default.Member(form))
}
