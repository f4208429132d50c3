// SPDX-License-Identifier: MPL-2.0

package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/envcmd/envcmd/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
	// FormatCUE is a CUE file evaluated without a schema.
	FormatCUE Format = "cue"
	// FormatTOML is a TOML document.
	FormatTOML Format = "toml"
	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"
)

// Format names a structured file encoding.
type Format string

var structuredExtensions = map[string]Format{
	".json": FormatJSON,
	".cue":  FormatCUE,
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatForPath returns the structured format implied by the extension of
// path. The lookup is case-insensitive.
func FormatForPath(path string) (Format, bool) {
	f, ok := structuredExtensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// DecodeEnv decodes a flat mapping of variable names to values.
func DecodeEnv(format Format, data []byte, filename string) (map[string]string, error) {
	doc, err := decodeDocument(format, data, filename)
	if err != nil {
		return nil, err
	}
	return flatten(doc)
}

// DecodeSections decodes a mapping of section names to flat mappings.
func DecodeSections(format Format, data []byte, filename string) (map[string]map[string]string, error) {
	doc, err := decodeDocument(format, data, filename)
	if err != nil {
		return nil, err
	}

	sections := make(map[string]map[string]string, len(doc))
	for name, raw := range doc {
		nested, err := sectionMapping(raw)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
		env, err := flatten(nested)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", name, err)
		}
		sections[name] = env
	}
	return sections, nil
}

func decodeDocument(format Format, data []byte, filename string) (map[string]any, error) {
	var doc map[string]any

	switch format {
	case FormatJSON:
		if err := decodeJSON(data, &doc); err != nil {
			return nil, err
		}
	case FormatCUE:
		exported, err := cueutil.ExportJSON(data, cueutil.WithFilename(filename))
		if err != nil {
			return nil, err
		}
		if err := decodeJSON(exported, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if doc == nil {
		return nil, errors.New("expected a mapping of variable names to values")
	}
	return doc, nil
}

// decodeJSON keeps numbers as their literal text. The document must hold a
// single JSON value.
func decodeJSON(data []byte, doc *map[string]any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(doc); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected content after offset %d", dec.InputOffset())
	}
	return nil
}

func flatten(doc map[string]any) (map[string]string, error) {
	env := make(map[string]string, len(doc))
	for key, raw := range doc {
		if key == "" || strings.ContainsAny(key, "=\x00") {
			return nil, fmt.Errorf("invalid variable name %q", key)
		}
		value, err := stringify(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		env[key] = value
	}
	return env, nil
}

// stringify renders a decoded value the way it is exported to a process:
// scalars by their literal text, null as empty, containers as compact JSON.
func stringify(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case map[string]any, []any:
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// sectionMapping accepts a section body. YAML mappings with non-string keys
// decode as map[any]any; their keys must still be strings.
func sectionMapping(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("expected a mapping of variable names to values, got key %v (%s)", key, describe(key))
			}
			out[name] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a mapping of variable names to values, got %s", describe(raw))
	}
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case []any:
		return "a list"
	case string:
		return "a string"
	case int, int64, uint64, float64, json.Number:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
