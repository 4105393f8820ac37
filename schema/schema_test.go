package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/enumgen/errors"
)

const jsonDoc = `{
  "enums": [
    {
      "name": "Color",
      "usage": "enum",
      "namespace": "lumiere::gfx",
      "options": ["prefix-match", "bogus"],
      "associations": [{"name": "Weight", "type": "float"}],
      "values": ["Red", ["Green", 1.5], ["Blue = 7", 2, true]],
      "include": "Graphics/Color.hpp"
    }
  ]
}`

const yamlDoc = `
enums:
  - name: Color
    usage: enum
    namespace: lumiere::gfx
    options: [prefix-match, bogus]
    associations:
      - name: Weight
        type: float
    values:
      - Red
      - [Green, 1.5]
      - [Blue = 7, 2, true]
    include: Graphics/Color.hpp
`

const tomlDoc = `
[[enums]]
name = "Color"
usage = "enum"
namespace = "lumiere::gfx"
options = ["prefix-match", "bogus"]
associations = [{ name = "Weight", type = "float" }]
values = ["Red", ["Green", 1.5], ["Blue = 7", 2, true]]
include = "Graphics/Color.hpp"
`

func TestParse_AllFormatsAgree(t *testing.T) {
	want := Record{
		Name:         "Color",
		Usage:        "enum",
		Namespace:    "lumiere::gfx",
		Options:      []string{"prefix-match", "bogus"},
		Associations: []Association{{Name: "Weight", Type: "float"}},
		Values: []Value{
			{Tokens: []string{"Red"}},
			{Tokens: []string{"Green", "1.5"}},
			{Tokens: []string{"Blue = 7", "2", "true"}},
		},
		Includes: []string{"Graphics/Color.hpp"},
	}

	tests := []struct {
		format Format
		data   string
	}{
		{FormatJSON, jsonDoc},
		{FormatYAML, yamlDoc},
		{FormatTOML, tomlDoc},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := Parse("Enums."+string(tt.format), []byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, doc.Records, 1)
			assert.Equal(t, want, doc.Records[0])
		})
	}
}

func TestParse_BareList(t *testing.T) {
	doc, err := Parse("Enums.json", []byte(`[{"name":"Perm","usage":"autoflags","values":["Read","Write"]}]`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "Perm", doc.Records[0].Name)
	assert.Equal(t, "Write", doc.Records[0].Values[1].Expression())
}

func TestParse_Requires(t *testing.T) {
	doc, err := Parse("Enums.yaml", []byte("requires: \">= 1.0\"\nenums: []\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, ">= 1.0", doc.Requires)
	assert.Empty(t, doc.Records)
}

func TestParse_Declarations(t *testing.T) {
	doc, err := Parse("Enums.json", []byte(`[{"name":"A","declarations":"static int x();"},{"name":"B","declarations":["a();","b();"]}]`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"static int x();"}, doc.Records[0].Declarations)
	assert.Equal(t, []string{"a();", "b();"}, doc.Records[1].Declarations)
}

func TestParse_LargeIntegerStaysExact(t *testing.T) {
	doc, err := Parse("Enums.json", []byte(`[{"name":"A","associations":[{"name":"M","type":"uint64"}],"values":[["X", 18446744073709551615]]}]`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "18446744073709551615"}, doc.Records[0].Values[0].Tokens)
}

func TestParse_NumbersKeepSpelling(t *testing.T) {
	tests := []struct {
		format Format
		data   string
		want   []string
	}{
		{FormatJSON, `[{"name":"A","values":[["X", 1.50, 1e3, 10]]}]`, []string{"X", "1.50", "1e3", "10"}},
		{FormatYAML, "- name: A\n  values:\n    - [X, 1.50, 0x1F, 1e3, 010]\n", []string{"X", "1.50", "0x1F", "1e3", "010"}},
		// TOML numbers are decoded before they reach the record
		{FormatTOML, "[[enums]]\nname = \"A\"\nvalues = [[\"X\", 1.50, 0x1F]]\n", []string{"X", "1.5", "31"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := Parse("Enums."+string(tt.format), []byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, doc.Records, 1)
			assert.Equal(t, tt.want, doc.Records[0].Values[0].Tokens)
		})
	}
}

func TestParse_YAMLAnchorsAndMerges(t *testing.T) {
	data := `
base: &base
  usage: flags
  namespace: lumiere::io
enums:
  - <<: *base
    name: Access
    usage: autoflags
    values: &vals [Read, Write]
  - <<: *base
    name: Mode
    values: *vals
`
	doc, err := Parse("Enums.yaml", []byte(data), FormatYAML)
	require.NoError(t, err)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "autoflags", doc.Records[0].Usage)
	assert.Equal(t, "lumiere::io", doc.Records[0].Namespace)
	assert.Equal(t, "flags", doc.Records[1].Usage)
	assert.Equal(t, []Value{{Tokens: []string{"Read"}}, {Tokens: []string{"Write"}}}, doc.Records[1].Values)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"malformed json", FormatJSON, `{"enums": [`},
		{"malformed yaml", FormatYAML, "enums: [\n  - : :"},
		{"malformed toml", FormatTOML, "[[enums]\nname="},
		{"scalar document", FormatJSON, `42`},
		{"enums not a list", FormatJSON, `{"enums": {"name": "A"}}`},
		{"record not an object", FormatJSON, `["A"]`},
		{"missing name", FormatJSON, `[{"usage": "enum"}]`},
		{"value object", FormatJSON, `[{"name": "A", "values": [{"x": 1}]}]`},
		{"empty value list", FormatJSON, `[{"name": "A", "values": [[]]}]`},
		{"numeric entry name", FormatJSON, `[{"name": "A", "values": [[1, "x"]]}]`},
		{"nested option", FormatJSON, `[{"name": "A", "options": [["x"]]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("doc/Enums."+string(tt.format), []byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidSchemaError(err), "got %v", err)
			assert.Contains(t, err.Error(), "doc/Enums.")
		})
	}
}

func TestLoadAndFind(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", Find(dir, "Enums"))

	path := filepath.Join(dir, "Enums.yml")
	require.NoError(t, os.WriteFile(path, []byte("- name: Color\n  values: [Red]\n"), 0644))
	assert.Equal(t, path, Find(dir, "Enums"))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "Color", doc.Records[0].Name)

	_, err = Load(filepath.Join(dir, "Enums.txt"))
	assert.True(t, errors.IsInvalidSchemaError(err))
}
