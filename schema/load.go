package schema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/internal/version"
)

// Format identifies the syntax of a schema document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Extensions lists recognized document extensions in lookup priority order.
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// FormatOf returns the format for a file name by extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

// Load reads and decodes a schema document, then checks its generator
// version constraint.
func Load(path string) (*Document, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.NewSchemaError("%s: unrecognized schema extension (want one of %s)",
			path, strings.Join(Extensions, ", "))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema %s", path)
	}

	doc, err := Parse(path, data, format)
	if err != nil {
		return nil, err
	}

	if err := version.Satisfies(doc.Requires); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return doc, nil
}

// Parse decodes document bytes. path is only used in diagnostics.
func Parse(path string, data []byte, format Format) (*Document, error) {
	var tree any

	switch format {
	case FormatJSON:
		// UseNumber keeps 64-bit literals exact.
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&tree); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidSchema, "%s: %v", path, err)
		}
	case FormatYAML:
		// Decoding through the node tree keeps numbers as written.
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidSchema, "%s: %v", path, err)
		}
		t, err := fromYAML(&root)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidSchema, "%s: %v", path, err)
		}
		tree = t
	case FormatTOML:
		var table map[string]any
		if _, err := toml.Decode(string(data), &table); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidSchema, "%s: %v", path, err)
		}
		tree = table
	default:
		return nil, errors.NewSchemaError("%s: unsupported format %q", path, format)
	}

	return fromTree(path, tree)
}

// Find returns the first existing "<dir>/<base><ext>" over Extensions, or
// "" when none exists.
func Find(dir, base string) string {
	for _, ext := range Extensions {
		candidate := filepath.Join(dir, base+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
