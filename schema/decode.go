package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/logger"
)

// fromTree converts a generic decoded document (maps, slices, scalars) into
// a Document. Every format funnels through here so they share one set of
// rules and error messages.
func fromTree(path string, tree any) (*Document, error) {
	doc := &Document{Path: path}
	tree = normalize(tree)

	var list []any
	switch t := tree.(type) {
	case []any:
		list = t
	case map[string]any:
		if req, ok := t["requires"]; ok {
			s, err := scalarString(req)
			if err != nil {
				return nil, errors.NewSchemaError("%s: requires: %v", path, err)
			}
			doc.Requires = s
		}
		enums, ok := t["enums"]
		if !ok {
			// A document without definitions is valid and produces no output.
			return doc, nil
		}
		l, ok := enums.([]any)
		if !ok {
			return nil, errors.NewSchemaError("%s: enums must be a list, got %s", path, kindOf(enums))
		}
		list = l
	case nil:
		return doc, nil
	default:
		return nil, errors.NewSchemaError("%s: document must be a list or an object, got %s", path, kindOf(tree))
	}

	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errors.NewSchemaError("%s: enums[%d] must be an object, got %s", path, i, kindOf(item))
		}
		rec, err := recordFromMap(obj)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: enums[%d]", path, i)
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc, nil
}

var recordKeys = map[string]bool{
	"name": true, "usage": true, "namespace": true, "type": true, "options": true,
	"associations": true, "values": true, "comment": true, "declarations": true,
	"default": true, "stringModifier": true, "searchModifier": true, "include": true,
}

func recordFromMap(m map[string]any) (Record, error) {
	var rec Record
	var err error

	str := func(key string, dst *string) {
		if err != nil {
			return
		}
		if v, ok := m[key]; ok {
			*dst, err = scalarString(v)
			if err != nil {
				err = errors.NewSchemaError("%s: %v", key, err)
			}
		}
	}
	strs := func(key string, dst *[]string) {
		if err != nil {
			return
		}
		if v, ok := m[key]; ok {
			*dst, err = stringList(v)
			if err != nil {
				err = errors.NewSchemaError("%s: %v", key, err)
			}
		}
	}

	str("name", &rec.Name)
	str("usage", &rec.Usage)
	str("namespace", &rec.Namespace)
	str("type", &rec.Type)
	str("comment", &rec.Comment)
	str("default", &rec.Default)
	str("stringModifier", &rec.StringModifier)
	str("searchModifier", &rec.SearchModifier)
	strs("options", &rec.Options)
	strs("declarations", &rec.Declarations)
	strs("include", &rec.Includes)
	if err != nil {
		return rec, err
	}

	if rec.Name == "" {
		return rec, errors.NewSchemaError("record has no name")
	}

	if v, ok := m["associations"]; ok {
		rec.Associations, err = associations(v)
		if err != nil {
			return rec, errors.Wrapf(err, "%s.associations", rec.Name)
		}
	}

	if v, ok := m["values"]; ok {
		rec.Values, err = values(v)
		if err != nil {
			return rec, errors.Wrapf(err, "%s.values", rec.Name)
		}
	}

	for _, k := range sortedKeys(m) {
		if !recordKeys[k] {
			logger.Debugw("Ignoring unknown record key", logger.FieldDefinition, rec.Name, "key", k)
		}
	}
	return rec, nil
}

func associations(v any) ([]Association, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, errors.NewSchemaError("must be a list, got %s", kindOf(v))
	}
	out := make([]Association, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errors.NewSchemaError("[%d] must be an object, got %s", i, kindOf(item))
		}
		var a Association
		for key, dst := range map[string]*string{"name": &a.Name, "type": &a.Type, "prefix": &a.Prefix} {
			if raw, ok := obj[key]; ok {
				s, err := scalarString(raw)
				if err != nil {
					return nil, errors.NewSchemaError("[%d].%s: %v", i, key, err)
				}
				*dst = s
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func values(v any) ([]Value, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, errors.NewSchemaError("must be a list, got %s", kindOf(v))
	}
	out := make([]Value, 0, len(list))
	for i, item := range list {
		switch t := item.(type) {
		case []any:
			if len(t) == 0 {
				return nil, errors.NewSchemaError("[%d] is an empty list", i)
			}
			tokens := make([]string, len(t))
			for j, tok := range t {
				s, err := scalarString(tok)
				if err != nil {
					return nil, errors.NewSchemaError("[%d][%d]: %v", i, j, err)
				}
				tokens[j] = s
			}
			if _, ok := t[0].(string); !ok {
				return nil, errors.NewSchemaError("[%d][0] must be a string naming the entry", i)
			}
			out = append(out, Value{Tokens: tokens})
		case string:
			out = append(out, Value{Tokens: []string{t}})
		default:
			return nil, errors.NewSchemaError("[%d] must be a string or a list, got %s", i, kindOf(item))
		}
	}
	return out, nil
}

// stringList accepts a list of scalars or a single scalar.
func stringList(v any) ([]string, error) {
	if list, ok := v.([]any); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, err := scalarString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	s, err := scalarString(v)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

// numberText is a number as spelled in the document.
type numberText string

// scalarString renders strings, numbers and booleans as text. JSON and YAML
// numbers keep their source spelling; TOML numbers arrive decoded and are
// rendered in their shortest exact form.
func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case numberText:
		return string(t), nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case nil:
		return "", nil
	default:
		return "", errors.Newf("expected a scalar, got %s", kindOf(v))
	}
}

// normalize rewrites decoder-specific container types (TOML arrays of
// tables, YAML maps with non-string keys) into map[string]any and []any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}

// fromYAML converts a YAML node tree into the generic tree fromTree reads.
// Integer and float scalars keep their text.
func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, item := range n.Content {
			v, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			val, err := fromYAML(v)
			if err != nil {
				return nil, err
			}
			if k.ShortTag() == "!!merge" {
				merged, ok := val.(map[string]any)
				if !ok {
					return nil, errors.Newf("line %d: merge value must be a mapping", k.Line)
				}
				for mk, mv := range merged {
					if _, set := out[mk]; !set {
						out[mk] = mv
					}
				}
				continue
			}
			out[k.Value] = val
		}
		return out, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float":
			return numberText(n.Value), nil
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		}
		return n.Value, nil
	}
	return nil, errors.Newf("line %d: unsupported YAML node", n.Line)
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
