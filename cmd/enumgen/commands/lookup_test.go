package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/model"
)

const testSchema = `
- name: Color
  values: [Red, Green, Blue]
- name: Perm
  usage: autoflags
  values: [Read, Write, Execute]
- name: Verb
  options: [prefix-match]
  searchModifier: lower
  values: [get, getall]
- name: Ext
  options: [suffix-match, custom-strings]
  values: [[Gz, .gz], [TarGz, .tar.gz]]
- name: Token
  options: [string-key]
  values: [alpha, beta]
- name: Silent
  options: [no-strings]
  values: [A, B]
`

var testEnv = model.Env{RootNamespace: "lumiere", StringHashHeader: "EnumStringHash.hpp"}

func writeTestSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Enums.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0644))
	return path
}

func TestRunLookup(t *testing.T) {
	path := writeTestSchema(t)

	tests := []struct {
		name       string
		definition string
		probe      string
		want       []string
	}{
		{"exact hit", "Color", "Green", []string{"mode:   exact\n", `"Green"`, `value:  {"Green"}`}},
		{"exact miss falls back to default", "Color", "Purple", []string{"match:  none, default eUnknown\n"}},
		{"autoflags bit", "Perm", "Write", []string{`"Write"`, "bit:    0x4\n"}},
		{"longest prefix", "Verb", "GetAllItems", []string{"mode:   prefix\n", `"getall"`, `rest:   "Items"`}},
		{"longest suffix", "Ext", "archive.tar.gz", []string{"mode:   suffix\n", `".tar.gz"`, `rest:   "archive"`}},
		{"hashed key", "Token", "beta", []string{"mode:   key\n", `"beta"`, "hash:   0x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runLookup(&out, testEnv, path, tt.definition, tt.probe))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestRunLookup_Errors(t *testing.T) {
	path := writeTestSchema(t)
	var out bytes.Buffer

	err := runLookup(&out, testEnv, path, "Missing", "x")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	err = runLookup(&out, testEnv, path, "Silent", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no string table")

	err = runLookup(&out, testEnv, filepath.Join(t.TempDir(), "Enums.json"), "Color", "Red")
	require.Error(t, err)
}
