package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/enumgen/config"
	"github.com/teranos/enumgen/model"
	"github.com/teranos/enumgen/schema"
)

func values(items ...string) []schema.Value {
	out := make([]schema.Value, len(items))
	for i, s := range items {
		out[i] = schema.Value{Tokens: []string{s}}
	}
	return out
}

func render(t *testing.T, rec schema.Record, opts Options) (decl, src string) {
	t.Helper()
	d, err := model.Build(rec, model.Env{RootNamespace: "lumiere", StringHashHeader: "EnumStringHash.hpp"})
	require.NoError(t, err)

	e := New(opts)
	var h, c strings.Builder
	require.NoError(t, e.Declaration(&h, d, NewIncludeSet()))
	require.NoError(t, e.Definition(&c, d))
	return h.String(), c.String()
}

func TestScenarioColor(t *testing.T) {
	decl, src := render(t, schema.Record{Name: "Color", Usage: "enum", Values: values("Red", "Green", "Blue")}, Options{})

	assert.Contains(t, decl, "namespace lumiere\n{\nstruct Color\n{\n")
	assert.Contains(t, decl, "  enum Enum : std::uint32_t\n  {\n"+
		"    eUnknown = 0xFFFFFFFF,\n"+
		"    eRed = 0,\n"+
		"    eGreen,\n"+
		"    eBlue,\n"+
		"    kCount\n"+
		"  };\n"+
		"  static constexpr std::uint32_t Count = Enum::kCount;\n")
	assert.Contains(t, decl, "  using Value = std::tuple<std::string_view>;\n")
	assert.Contains(t, decl, "  static Value ToValue(Enum iFrom);\n")
	assert.Contains(t, decl, "  static std::string_view ToString(Enum iFrom) { return std::get<0>(ToValue(iFrom)); }\n")
	assert.Contains(t, decl, "  static const std::array<Tuple, 4>& Table();\n")
	assert.Contains(t, decl, "  static Enum FromString(std::string_view iParam);\n")
	assert.Contains(t, decl, "  static inline Enum ToEnum(std::string_view iParam) { return FromString(iParam); }\n")
	assert.Contains(t, decl, "};\nusing ColorEnum = Color::Enum;\n} // namespace lumiere\n")
	assert.NotContains(t, decl, "using namespace")
	assert.NotContains(t, decl, "DECLARE_SCOPED_MASK_FLAGS")

	assert.Contains(t, src, "  default:\n  case eUnknown: return Value{\"Unknown\"};\n  case eRed: return Value{\"Red\"};\n")
	assert.Contains(t, src, "  }\n  return Value{};\n}\n")
	assert.Contains(t, src, "static const std::array<ColorTuple, 4> kColorStringTable = {\n"+
		"  ColorTuple{\"Blue\", Color::eBlue},\n"+
		"  ColorTuple{\"Green\", Color::eGreen},\n"+
		"  ColorTuple{\"Red\", Color::eRed},\n"+
		"  ColorTuple{\"Unknown\", Color::eUnknown},\n"+
		"};\n")
	assert.Contains(t, src, "const std::array<Color::Tuple, 4>& Color::Table()\n{\n  return kColorStringTable;\n}\n")
	assert.Contains(t, src, "  return enums::fromString(kColorStringTable, iValue, Color::Enum::eUnknown);\n")
}

func TestScenarioPerm(t *testing.T) {
	decl, src := render(t, schema.Record{Name: "Perm", Usage: "autoflags", Values: values("Read", "Write", "Execute")}, Options{})

	assert.Contains(t, decl, "#include <bit>\n")
	assert.Contains(t, decl, "    eNone = 0,\n    eRead,\n    eWrite,\n    eExecute,\n    kCount\n")
	assert.Contains(t, decl, "  using utype = std::uint32_t;\n  enum Bit : utype\n  {\n"+
		"    fNone = 0,\n"+
		"    fRead = 1u << static_cast<utype>(eRead), // 0x2\n"+
		"    fWrite = 1u << static_cast<utype>(eWrite), // 0x4\n"+
		"    fExecute = 1u << static_cast<utype>(eExecute), // 0x8\n"+
		"    fLastFlag = 1u << static_cast<utype>(kCount) // 0x10\n"+
		"  };\n")
	assert.Contains(t, decl, "  static Bit ToBit(Enum iValue) { return static_cast<Bit>(1u << static_cast<utype>(iValue)); }\n")
	assert.Contains(t, decl, "  static Enum ToEnum(Bit iValue) { return static_cast<Enum>(std::popcount(static_cast<utype>(iValue) - 1)); }\n")
	assert.Contains(t, decl, "  static Bit ToBit(std::string_view iValue) { return ToBit(FromString(iValue)); }\n")
	assert.Contains(t, decl, "using PermEnum = Perm::Enum;\nusing PermBit = Perm::Bit;\nDECLARE_SCOPED_MASK_FLAGS(Perm, Bit);\n")

	assert.Contains(t, src, "  default:\n  case eNone: return Value{\"None\"};\n")
	assert.Contains(t, src, "Perm::Enum::eNone);")
}

func TestAutoFlagsExplicitValues(t *testing.T) {
	decl, src := render(t, schema.Record{Name: "Perm", Usage: "autoflags", Default: "Default", Values: values("Read", "Write", "Default = Read")}, Options{})

	assert.Contains(t, decl, "    eRead,\n    eWrite,\n    eDefault = eRead,\n    kCount\n")
	assert.Contains(t, decl, "    fDefault = 1u << static_cast<utype>(eDefault), // 0x1\n")
	assert.Contains(t, decl, "    fLastFlag = 1u << static_cast<utype>(kCount) // 0x2\n")
	// the alias shares eRead's label, so it only contributes the default branch
	assert.NotContains(t, src, "case eDefault:")
	assert.Contains(t, src, "  case eWrite: return Value{\"Write\"};\n  default: return Value{\"Default\"};\n")

	decl, _ = render(t, schema.Record{Name: "Perm", Usage: "autoflags", Values: values("Read", "Custom = kBase + 1")}, Options{})
	assert.Contains(t, decl, "    eCustom = kBase + 1,\n")
	assert.Contains(t, decl, "    fCustom = 1u << static_cast<utype>(eCustom),\n")
	assert.Contains(t, decl, "    fLastFlag = 1u << static_cast<utype>(kCount)\n")
}

func TestSentinelWidth(t *testing.T) {
	decl, _ := render(t, schema.Record{Name: "Big", Type: "uint64", Usage: "const"}, Options{})
	assert.Contains(t, decl, "  enum Const : std::uint64_t\n  {\n    kInvalid = 0xFFFFFFFFFFFFFFFF,\n  };\n")

	decl, _ = render(t, schema.Record{Name: "Big", Type: "uint64", Usage: "autoflags", Values: values("A")}, Options{})
	assert.Contains(t, decl, "fA = 1ull << static_cast<utype>(eA), // 0x2\n")
}

func TestFlags(t *testing.T) {
	decl, src := render(t, schema.Record{
		Name:  "Access",
		Usage: "flags",
		Values: values("Read = 1", "Write = 2", "All = Read | Write"),
	}, Options{})
	assert.Contains(t, decl, "    fNone = 0,\n    fRead = 1,\n    fWrite = 2,\n    fAll = fRead | fWrite,\n  };\n")
	assert.NotContains(t, decl, "enum Enum")
	assert.NotContains(t, decl, "fLastFlag")
	assert.Contains(t, decl, "  static Bit FromString(std::string_view iParam);\n")
	assert.Contains(t, decl, "  static inline Bit ToBit(std::string_view iParam) { return FromString(iParam); }\n")
	assert.Contains(t, src, "case fAll: return Value{\"All\"};")
	assert.Contains(t, src, "Access::Bit::fNone);")
}

func TestAssociationsWithoutStrings(t *testing.T) {
	decl, src := render(t, schema.Record{
		Name:    "Slot",
		Options: []string{"no-strings", "no-auto-default", "skip-last-element"},
		Associations: []schema.Association{
			{Name: "Size", Type: "int"},
			{Type: "float"},
			{Name: "Label", Type: "std::string_view", Prefix: "slot."},
		},
		Values: []schema.Value{{Tokens: []string{"A", "4", "0.5f", "a"}}, {Tokens: []string{"B"}}},
	}, Options{})

	assert.Contains(t, decl, "  using Value = std::tuple<int, float, std::string_view>;\n")
	assert.Contains(t, decl, "  static int GetSize(Enum iValue) { return std::get<0>(ToValue(iValue)); }\n")
	assert.Contains(t, decl, "  static std::string_view GetLabel(Enum iValue) { return std::get<2>(ToValue(iValue)); }\n")
	assert.NotContains(t, decl, "ToString")
	assert.NotContains(t, decl, "Table()")
	assert.Contains(t, decl, "    eA,\n    eB,\n  };\n")

	assert.Contains(t, src, "  case eA: return Value{4, 0.5f, \"slot.a\"};\n")
	assert.Contains(t, src, "  case eB: return Value{int(0), float(0), \"\"};\n")
	assert.NotContains(t, src, "default:")
	assert.NotContains(t, src, "StringTable")
}

func TestNoValueNoSource(t *testing.T) {
	_, src := render(t, schema.Record{Name: "Bare", Options: []string{"no-strings"}, Values: values("A")}, Options{})
	assert.Empty(t, src)
}

func TestStringKeyTable(t *testing.T) {
	decl, src := render(t, schema.Record{Name: "Attr", Options: []string{"string-key"}, Values: values("position", "normal")}, Options{})

	assert.Contains(t, decl, "#include <EnumStringHash.hpp>\n")
	assert.Contains(t, decl, "  using Value = std::tuple<enums::Key>;\n")
	assert.Contains(t, decl, "  static enums::Key ToStringKey(Enum iFrom) { return std::get<0>(ToValue(iFrom)); }\n")
	assert.Contains(t, decl, "  using Tuple = std::tuple<enums::Key, Enum>;\n")
	assert.Contains(t, decl, "  static Enum FromStringKey(enums::Key iParam);\n")
	assert.NotContains(t, decl, "FromString(")

	assert.Contains(t, src, "static const std::array<AttrTuple, 3> kAttrStringTable = enums::sortTuple<std::array<AttrTuple, 3>, 0>(std::array<AttrTuple, 3>{\n")
	assert.Contains(t, src, "  AttrTuple{\"normal\", Attr::enormal}, // 0x")
	assert.Contains(t, src, "});\n")
	assert.Contains(t, src, "Attr::Enum Attr::FromStringKey(enums::Key iValue)\n{\n  return enums::fromString(kAttrStringTable, iValue, Attr::Enum::eUnknown);\n}\n")
}

func TestLongestMatchBodies(t *testing.T) {
	decl, src := render(t, schema.Record{
		Name:    "Verb",
		Options: []string{"prefix-match", "suffix-match"},
		Values:  values("Get", "GetAll"),
	}, Options{})

	assert.Contains(t, decl, "  static std::tuple<Enum, std::string_view> StartsWith(std::string_view iParam);\n")
	assert.Contains(t, decl, "  static std::tuple<Enum, std::string_view> EndsWith(std::string_view iParam);\n")
	assert.NotContains(t, decl, "FromString")

	getAll := strings.Index(src, `VerbTuple{"GetAll"`)
	get := strings.Index(src, `VerbTuple{"Get",`)
	require.True(t, getAll >= 0 && get >= 0)
	assert.Less(t, getAll, get, "longest strings first")

	assert.Contains(t, src, "  return enums::stringStartsWith(kVerbStringTable, iValue, Verb::Enum::eUnknown);\n")
	assert.Contains(t, src, "  return enums::stringEndsWith(kVerbStringTable, iValue, Verb::Enum::eUnknown);\n")
}

func TestSearchFoldCode(t *testing.T) {
	_, src := render(t, schema.Record{Name: "Cmd", SearchModifier: "lower", Values: values("Open")}, Options{})
	assert.Contains(t, src, "  std::string cpy{iValue};\n"+
		"  std::transform(std::begin(cpy), std::end(cpy), std::begin(cpy), ::tolower);\n"+
		"  iValue = cpy;\n"+
		"  return enums::fromString(")
	assert.Contains(t, src, `CmdTuple{"open", Cmd::eOpen}`)

	_, src = render(t, schema.Record{Name: "Cmd", SearchModifier: "upper", Options: []string{"prefix-match"}, Values: values("OPEN")}, Options{})
	assert.Contains(t, src, "::toupper);\n"+
		"  auto [value, rest] = enums::stringStartsWith(kCmdStringTable, std::string_view{cpy}, Cmd::Enum::eUnknown);\n"+
		"  return {value, iValue.substr(iValue.size() - rest.size())};\n")

	d, err := model.Build(schema.Record{Name: "Cmd", SearchModifier: "lower", Values: values("Open")}, model.Env{})
	require.NoError(t, err)
	assert.Equal(t, []string{"algorithm", "string"}, SourceIncludes(d))
}

func TestNoDefaultFallback(t *testing.T) {
	_, src := render(t, schema.Record{Name: "Mode", Options: []string{"no-auto-default"}, Values: values("On", "Off")}, Options{})
	assert.Contains(t, src, "iValue, Mode::Enum(0));")
	assert.NotContains(t, src, "default:")
}

func TestNamespaces(t *testing.T) {
	decl, src := render(t, schema.Record{Name: "Stage", Namespace: "lumiere.graphics", Values: values("Vertex")}, Options{Fmtlib: true})

	assert.Contains(t, decl, "namespace lumiere\n{\nnamespace graphics\n{\nusing namespace lumiere;\n")
	assert.Contains(t, decl, "} // namespace graphics\n} // namespace lumiere\n")
	assert.Contains(t, src, "namespace lumiere\n{\nnamespace graphics\n{\nusing namespace lumiere;\n")
	assert.Contains(t, decl, "struct fmt::formatter<lumiere::graphics::Stage::Enum> : fmt::formatter<std::string_view>\n")
	assert.Contains(t, decl, "format(lumiere::graphics::Stage::ToString(c), ctx);")

	assert.Equal(t, []string{"a", "b", "c"}, Segments("a::b.c"))
	assert.Equal(t, "a::b", Qualified("a.b"))
}

func TestNamespaces_OutsideRoot(t *testing.T) {
	for _, ns := range []string{"gfx", "gfx.lumiere", "lumiere2.io"} {
		t.Run(ns, func(t *testing.T) {
			decl, src := render(t, schema.Record{Name: "Stage", Namespace: ns, Values: values("Vertex")}, Options{})
			assert.NotContains(t, decl, "using namespace")
			assert.NotContains(t, src, "using namespace")
			assert.Contains(t, decl, "namespace "+Segments(ns)[0]+"\n{\n")
		})
	}

	decl, _ := render(t, schema.Record{Name: "Stage", Namespace: "lumiere", Values: values("Vertex")}, Options{})
	assert.NotContains(t, decl, "using namespace")
}

func TestExportMacroAndComment(t *testing.T) {
	decl, _ := render(t, schema.Record{Name: "Color", Comment: "Palette colors", Values: values("Red")}, Options{ExportMacro: "LMCoreAPI"})
	assert.Contains(t, decl, "// Palette colors\nstruct LMCoreAPI Color\n{\n")
}

func TestDeclarationsBlock(t *testing.T) {
	decl, _ := render(t, schema.Record{
		Name:         "Color",
		Declarations: []string{"static bool IsWarm(Enum e);", "static constexpr int kMax = 3;"},
		Values:       values("Red"),
	}, Options{})
	assert.Contains(t, decl, "\n  // Declarations\n  static bool IsWarm(Enum e);\n  static constexpr int kMax = 3;\n  // End of declarations\n")
}

func TestCodingStyles(t *testing.T) {
	rec := schema.Record{
		Name:         "Color",
		Associations: []schema.Association{{Name: "Rgb", Type: "std::uint32_t"}},
		Values:       []schema.Value{{Tokens: []string{"Red", "0xFF0000"}}},
	}
	tests := []struct {
		style string
		want  []string
	}{
		{config.StyleUpperCamelCase, []string{"ToValue(Enum iFrom)", "ToString(Enum", "FromString(std::string_view", "GetRgb(Enum", "Table()"}},
		{config.StyleLowerCamelCase, []string{"toValue(Enum iFrom)", "toString(Enum", "fromString(std::string_view", "getRgb(Enum", "table()"}},
		{config.StyleSnakeCase, []string{"to_value(Enum iFrom)", "to_string(Enum", "from_string(std::string_view", "get_rgb(Enum", "table()"}},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			decl, src := render(t, rec, Options{Style: tt.style})
			for _, w := range tt.want {
				assert.Contains(t, decl, w)
			}
			// helpers from the support header keep their own names
			assert.Contains(t, src, "enums::fromString(")
		})
	}
}

func TestIncludesDeduplicated(t *testing.T) {
	e := New(Options{})
	seen := NewIncludeSet()
	var sb strings.Builder
	require.NoError(t, e.Includes(&sb, seen, "FlagType.hpp", "EnumStringHash.hpp", "FlagType.hpp"))

	d, err := model.Build(schema.Record{Name: "Attr", Options: []string{"string-key"}, Includes: []string{"Extra.hpp"}},
		model.Env{StringHashHeader: "EnumStringHash.hpp"})
	require.NoError(t, err)
	require.NoError(t, e.Declaration(&sb, d, seen))
	require.NoError(t, e.Declaration(&sb, d, seen))

	out := sb.String()
	assert.Equal(t, 1, strings.Count(out, "#include <FlagType.hpp>"))
	assert.Equal(t, 1, strings.Count(out, "#include <EnumStringHash.hpp>"))
	assert.Equal(t, 1, strings.Count(out, "#include <Extra.hpp>"))
}
