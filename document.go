package oatty

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeDocument parses data as a single JSON document whose root is an
// object. Numbers decode as json.Number so large identifiers survive a
// round trip; trailing non-whitespace after the first value is rejected.
func DecodeDocument(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: "invalid JSON document", Cause: err}}
	}
	if dec.More() {
		return nil, Issues{Root().Issuef(CodeParseError, "trailing data after top-level value")}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{Root().Issuef(CodeUnsupportedInput, "document root must be an object, got %T", v)}
	}
	return m, nil
}

// DecodeDocumentYAML parses data as a single YAML document and normalizes it
// into the JSON node model (map[string]any / []any / scalars).
func DecodeDocumentYAML(data []byte) (map[string]any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: "invalid YAML document", Cause: err}}
	}
	m := yamlToStringMap(node)
	if m == nil {
		return nil, Issues{Root().Issuef(CodeUnsupportedInput, "document root must be a mapping")}
	}
	return m, nil
}

// ReadDocument loads the schema document at path. Files ending in .yaml or
// .yml decode as YAML; everything else decodes as JSON.
func ReadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}
	return decodeByExt(path, data)
}

// ReadDocumentFS is ReadDocument over an fs.FS, for callers holding embedded
// or in-memory fixtures.
func ReadDocumentFS(fsys fs.FS, name string) (map[string]any, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}
	return decodeByExt(name, data)
}

func decodeByExt(path string, data []byte) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeDocumentYAML(data)
	default:
		return DecodeDocument(data)
	}
}

// yamlToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil;
// non-string keys are dropped.
func yamlToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
