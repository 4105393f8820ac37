package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/teranos/enumgen/model"
)

// Declaration writes the header text of d: its includes not yet in seen,
// the struct with its member lists and accessor declarations, the free
// aliases, and the optional fmt::formatter specialization.
func (e *Emitter) Declaration(w io.Writer, d *model.Definition, seen IncludeSet) error {
	var sb strings.Builder

	includes := d.Includes
	if d.Usage == model.UsageAutoFlags {
		includes = append([]string{"bit"}, includes...)
	}
	writeIncludes(&sb, seen, includes)

	sb.WriteString("\n")
	e.openNamespace(&sb, d.Namespace)
	if d.Comment != "" {
		sb.WriteString(fmt.Sprintf("// %s\n", d.Comment))
	}
	if e.opts.ExportMacro != "" {
		sb.WriteString(fmt.Sprintf("struct %s %s\n{\n", e.opts.ExportMacro, d.Name))
	} else {
		sb.WriteString(fmt.Sprintf("struct %s\n{\n", d.Name))
	}

	switch d.Usage {
	case model.UsageEnum:
		e.enumList(&sb, d)
	case model.UsageAutoFlags:
		e.enumList(&sb, d)
		e.autoFlagList(&sb, d)
	case model.UsageFlags:
		e.flagList(&sb, d)
	case model.UsageConst:
		e.constList(&sb, d)
	}

	if d.HasValue() {
		e.valueFunctions(&sb, d)
	}
	if len(d.Declarations) > 0 {
		sb.WriteString("\n  // Declarations\n")
		for _, line := range d.Declarations {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		sb.WriteString("  // End of declarations\n")
	}
	if d.StringTable() {
		if d.StringKey() {
			e.keyTableDecls(&sb, d)
		} else {
			e.stringTableDecls(&sb, d)
		}
	}
	if d.Usage == model.UsageAutoFlags {
		e.bitConversions(&sb, d)
	}
	sb.WriteString("};\n")

	if d.HasEnum() {
		sb.WriteString(fmt.Sprintf("using %sEnum = %s::Enum;\n", d.Name, d.Name))
	}
	if d.HasFlags() {
		sb.WriteString(fmt.Sprintf("using %sBit = %s::Bit;\n", d.Name, d.Name))
		sb.WriteString(fmt.Sprintf("DECLARE_SCOPED_MASK_FLAGS(%s, Bit);\n", d.Name))
	}
	closeNamespace(&sb, d.Namespace)

	if e.opts.Fmtlib && d.StringTable() && !d.StringKey() {
		e.formatter(&sb, d)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// enumList writes the Enum type. Plain enums write every value; autoflags
// enumerators are positional unless the entry names a value.
func (e *Emitter) enumList(sb *strings.Builder, d *model.Definition) {
	sb.WriteString(fmt.Sprintf("  enum Enum : %s\n  {\n", d.Width.Underlying()))
	for _, en := range d.Entries {
		line := en.Member(model.FormEnum)
		switch {
		case en.ForcedZero:
			line += " = 0"
		case d.Usage == model.UsageEnum && !en.Value.IsEmpty(),
			d.Usage == model.UsageAutoFlags && en.Explicit:
			line += " = " + d.Resolve(en, model.FormEnum)
		}
		sb.WriteString(fmt.Sprintf("    %s,\n", line))
	}
	if d.HasCountSentinel() {
		sb.WriteString("    kCount\n  };\n")
		sb.WriteString(fmt.Sprintf("  static constexpr %s Count = Enum::kCount;\n", d.Width.Underlying()))
		return
	}
	sb.WriteString("  };\n")
}

func (e *Emitter) flagList(sb *strings.Builder, d *model.Definition) {
	sb.WriteString(fmt.Sprintf("  using utype = %s;\n  enum Bit : utype\n  {\n", d.Width.Underlying()))
	for _, en := range d.Entries {
		line := en.Member(model.FormFlag)
		switch {
		case en.ForcedZero:
			line += " = 0"
		case !en.Value.IsEmpty():
			line += " = " + d.Resolve(en, model.FormFlag)
		}
		sb.WriteString(fmt.Sprintf("    %s,\n", line))
	}
	sb.WriteString("  };\n")
}

func (e *Emitter) autoFlagList(sb *strings.Builder, d *model.Definition) {
	one := d.Width.One()
	bits, last, hasLast := model.DeriveBits(d)
	sb.WriteString(fmt.Sprintf("  using utype = %s;\n  enum Bit : utype\n  {\n", d.Width.Underlying()))
	for _, b := range bits {
		if b.Entry.ForcedZero {
			sb.WriteString(fmt.Sprintf("    %s = 0,\n", b.Entry.Member(model.FormFlag)))
			continue
		}
		line := fmt.Sprintf("    %s = %s << static_cast<utype>(%s),",
			b.Entry.Member(model.FormFlag), one, b.Entry.Member(model.FormEnum))
		if b.Known {
			line += fmt.Sprintf(" // 0x%x", b.Value)
		}
		sb.WriteString(line + "\n")
	}
	if hasLast {
		line := fmt.Sprintf("    fLastFlag = %s << static_cast<utype>(kCount)", one)
		if last != 0 {
			line += fmt.Sprintf(" // 0x%x", last)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("  };\n")
}

func (e *Emitter) constList(sb *strings.Builder, d *model.Definition) {
	sb.WriteString(fmt.Sprintf("  enum Const : %s\n  {\n", d.Width.Underlying()))
	for _, en := range d.Entries {
		line := en.Member(model.FormConst)
		if !en.Value.IsEmpty() {
			line += " = " + d.Resolve(en, model.FormConst)
		}
		sb.WriteString(fmt.Sprintf("    %s,\n", line))
	}
	sb.WriteString("  };\n")
}

func (e *Emitter) valueFunctions(sb *strings.Builder, d *model.Definition) {
	vt := d.PrimaryForm().TypeName()
	toValue := e.name("ToValue")

	types := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		types[i] = f.Type
	}
	sb.WriteString(fmt.Sprintf("\n  using Value = std::tuple<%s>;\n\n", strings.Join(types, ", ")))
	sb.WriteString(fmt.Sprintf("  static Value %s(%s iFrom);\n", toValue, vt))

	if d.StringTable() {
		slot, toString := model.StringSlotType, e.name("ToString")
		if d.StringKey() {
			slot, toString = model.KeySlotType, e.name("ToStringKey")
		}
		sb.WriteString(fmt.Sprintf("  static %s %s(%s iFrom) { return std::get<0>(%s(iFrom)); }\n",
			slot, toString, vt, toValue))
		sb.WriteString(fmt.Sprintf("  inline friend std::ostream& operator<<(std::ostream& os, %s value) { return os << %s(value); }\n",
			vt, toString))
	}

	for i, f := range d.Fields {
		if f.Name == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("  static %s %s(%s iValue) { return std::get<%d>(%s(iValue)); }\n",
			f.Type, e.getter(f.Name), vt, i, toValue))
	}
}

func (e *Emitter) stringTableDecls(sb *strings.Builder, d *model.Definition) {
	vt := d.PrimaryForm().TypeName()
	sb.WriteString(fmt.Sprintf("\n  using Tuple = std::tuple<std::string_view, %s>;\n", vt))
	sb.WriteString(fmt.Sprintf("  static const std::array<Tuple, %d>& %s();\n", len(d.Entries), e.name("Table")))

	if d.LongestMatch() {
		if d.Options.Has(model.OptPrefixMatch) {
			sb.WriteString(fmt.Sprintf("  static std::tuple<%s, std::string_view> %s(std::string_view iParam);\n",
				vt, e.name("StartsWith")))
		}
		if d.Options.Has(model.OptSuffixMatch) {
			sb.WriteString(fmt.Sprintf("  static std::tuple<%s, std::string_view> %s(std::string_view iParam);\n",
				vt, e.name("EndsWith")))
		}
		return
	}

	fromString := e.name("FromString")
	sb.WriteString(fmt.Sprintf("  static %s %s(std::string_view iParam);\n", vt, fromString))
	sb.WriteString(fmt.Sprintf("  static inline %s %s(std::string_view iParam) { return %s(iParam); }\n",
		vt, e.name("To"+vt), fromString))
	if d.Usage == model.UsageAutoFlags {
		toBit := e.name("ToBit")
		sb.WriteString(fmt.Sprintf("  static Bit %s(std::string_view iValue) { return %s(%s(iValue)); }\n",
			toBit, toBit, fromString))
	}
}

func (e *Emitter) keyTableDecls(sb *strings.Builder, d *model.Definition) {
	vt := d.PrimaryForm().TypeName()
	fromKey := e.name("FromStringKey")
	sb.WriteString(fmt.Sprintf("\n  using Tuple = std::tuple<%s, %s>;\n", model.KeySlotType, vt))
	sb.WriteString(fmt.Sprintf("  static const std::array<Tuple, %d>& %s();\n", len(d.Entries), e.name("Table")))
	sb.WriteString(fmt.Sprintf("  static %s %s(%s iParam);\n", vt, fromKey, model.KeySlotType))
	sb.WriteString(fmt.Sprintf("  static inline %s %s(%s iParam) { return %s(iParam); }\n",
		vt, e.name("To"+vt), model.KeySlotType, fromKey))
	if d.Usage == model.UsageAutoFlags {
		sb.WriteString(fmt.Sprintf("  static Bit %s(%s iValue) { return %s(%s(iValue)); }\n",
			e.name("ToFlag"), model.KeySlotType, e.name("ToBit"), fromKey))
	}
}

// bitConversions writes the enumerator/bit cross operations of autoflags.
// ToEnum expects exactly one bit set.
func (e *Emitter) bitConversions(sb *strings.Builder, d *model.Definition) {
	sb.WriteString(fmt.Sprintf("  static Bit %s(Enum iValue) { return static_cast<Bit>(%s << static_cast<utype>(iValue)); }\n",
		e.name("ToBit"), d.Width.One()))
	sb.WriteString(fmt.Sprintf("  static Enum %s(Bit iValue) { return static_cast<Enum>(std::popcount(static_cast<utype>(iValue) - 1)); }\n",
		e.name("ToEnum")))
}

func (e *Emitter) formatter(sb *strings.Builder, d *model.Definition) {
	scope := d.Name
	if ns := Qualified(d.Namespace); ns != "" {
		scope = ns + "::" + d.Name
	}
	typ := scope + "::" + d.PrimaryForm().TypeName()
	sb.WriteString("\ntemplate <>\n")
	sb.WriteString(fmt.Sprintf("struct fmt::formatter<%s> : fmt::formatter<std::string_view>\n{\n", typ))
	sb.WriteString("  template <typename FormatContext>\n")
	sb.WriteString(fmt.Sprintf("  auto format(%s const& c, FormatContext& ctx) const\n  {\n", typ))
	sb.WriteString(fmt.Sprintf("    return fmt::formatter<std::string_view>::format(%s::%s(c), ctx);\n  }\n};\n",
		scope, e.name("ToString")))
}
