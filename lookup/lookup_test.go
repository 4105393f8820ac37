package lookup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/enumgen/model"
	"github.com/teranos/enumgen/schema"
	"github.com/teranos/enumgen/table"
)

func build(t *testing.T, rec schema.Record) *table.Table {
	t.Helper()
	d, err := model.Build(rec, model.Env{RootNamespace: "lumiere"})
	require.NoError(t, err)
	return table.Build(d)
}

func values(items ...string) []schema.Value {
	out := make([]schema.Value, len(items))
	for i, s := range items {
		out[i] = schema.Value{Tokens: []string{s}}
	}
	return out
}

func manyValues(n int) []schema.Value {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("Item%02d", i)
	}
	return values(items...)
}

func TestExact_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rec  schema.Record
	}{
		{"small linear", schema.Record{Name: "Color", Values: values("Red", "Green", "Blue")}},
		{"large binary search", schema.Record{Name: "Many", Values: manyValues(40)}},
		{"string key", schema.Record{Name: "Attr", Options: []string{"string-key"}, Values: manyValues(20)}},
		{"folded", schema.Record{Name: "Cmd", SearchModifier: "upper", Values: manyValues(20)}},
		{"custom strings", schema.Record{Name: "Ext", Options: []string{"custom-strings"},
			Values: []schema.Value{{Tokens: []string{"Png", ".png"}}, {Tokens: []string{"Jpeg", ".jpg"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := build(t, tt.rec)
			for _, e := range tb.Def.Entries {
				row, ok := Exact(tb, tb.Def.StoredString(e))
				require.True(t, ok, e.Name)
				assert.Same(t, e, row.Entry)
				assert.Equal(t, tb.ValueOf(e), row.Value)
			}
		})
	}
}

func TestExact_MissFallsBackToDefault(t *testing.T) {
	tb := build(t, schema.Record{Name: "Color", Values: values("Red")})
	row, ok := Exact(tb, "Purple")
	assert.False(t, ok)
	require.NotNil(t, row)
	assert.Equal(t, "Unknown", row.Entry.Name)

	tb = build(t, schema.Record{Name: "Color", Options: []string{"no-auto-default"}, Values: values("Red")})
	row, ok = Exact(tb, "Purple")
	assert.False(t, ok)
	assert.Nil(t, row)
}

func TestExact_FoldsProbe(t *testing.T) {
	tb := build(t, schema.Record{Name: "Cmd", SearchModifier: "lower", Values: values("Open", "Close")})
	row, ok := Exact(tb, "CLOSE")
	require.True(t, ok)
	assert.Equal(t, "Close", row.Entry.Name)
}

func TestLongestPrefix(t *testing.T) {
	tb := build(t, schema.Record{Name: "Verb", Options: []string{"prefix-match"}, Values: values("Get", "GetAll")})

	row, rest, ok := LongestPrefix(tb, "GetAllItems")
	require.True(t, ok)
	assert.Equal(t, "GetAll", row.Entry.Name)
	assert.Equal(t, "Items", rest)

	row, rest, ok = LongestPrefix(tb, "GetOne")
	require.True(t, ok)
	assert.Equal(t, "Get", row.Entry.Name)
	assert.Equal(t, "One", rest)

	row, rest, ok = LongestPrefix(tb, "Set")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", row.Entry.Name)
	assert.Equal(t, "Set", rest)
}

func TestLongestPrefix_RestComesFromOriginalProbe(t *testing.T) {
	tb := build(t, schema.Record{Name: "Verb", SearchModifier: "lower", Options: []string{"prefix-match"}, Values: values("get", "getall")})
	row, rest, ok := LongestPrefix(tb, "GETALLItems")
	require.True(t, ok)
	assert.Equal(t, "getall", row.Entry.Name)
	assert.Equal(t, "Items", rest)
}

func TestLongestSuffix(t *testing.T) {
	tb := build(t, schema.Record{
		Name:    "Ext",
		Options: []string{"suffix-match", "custom-strings"},
		Values: []schema.Value{
			{Tokens: []string{"Gz", ".gz"}},
			{Tokens: []string{"TarGz", ".tar.gz"}},
		},
	})

	row, rest, ok := LongestSuffix(tb, "release.tar.gz")
	require.True(t, ok)
	assert.Equal(t, "TarGz", row.Entry.Name)
	assert.Equal(t, "release", rest)

	row, rest, ok = LongestSuffix(tb, "notes.gz")
	require.True(t, ok)
	assert.Equal(t, "Gz", row.Entry.Name)
	assert.Equal(t, "notes", rest)

	_, rest, ok = LongestSuffix(tb, "notes.txt")
	assert.False(t, ok)
	assert.Equal(t, "notes.txt", rest)
}

func TestLongestPrefix_LexicalTable(t *testing.T) {
	// the Go mirror still prefers the longest match on a lexically sorted table
	tb := build(t, schema.Record{Name: "Verb", Values: values("Get", "GetAll")})
	row, rest, ok := LongestPrefix(tb, "GetAllItems")
	require.True(t, ok)
	assert.Equal(t, "GetAll", row.Entry.Name)
	assert.Equal(t, "Items", rest)
}

func TestKey(t *testing.T) {
	tb := build(t, schema.Record{Name: "Attr", Options: []string{"string-key"}, Values: values("position", "normal")})
	row, ok := Key(tb, Hash("normal"))
	require.True(t, ok)
	assert.Equal(t, "normal", row.Entry.Name)

	row, ok = Key(tb, Hash("bitangent"))
	assert.False(t, ok)
	assert.Equal(t, "Unknown", row.Entry.Name)
}
