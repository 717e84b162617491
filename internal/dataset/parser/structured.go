package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

func decodeJSON(raw []byte) (map[string][]any, []string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("json: %w", err)
	}
	return fromStructured(normaliseJSON(payload), keyOrderJSON(raw))
}

func decodeYAML(raw []byte) (map[string][]any, []string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, nil, fmt.Errorf("yaml: %w", err)
	}
	var payload any
	if err := node.Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("yaml: %w", err)
	}
	return fromStructured(payload, keyOrderYAML(&node))
}

// fromStructured accepts either an array of records or an object of columns.
func fromStructured(payload any, order []string) (map[string][]any, []string, error) {
	switch v := payload.(type) {
	case []any:
		records := make([]map[string]any, 0, len(v))
		for i, item := range v {
			record, ok := asStringMap(item)
			if !ok {
				return nil, nil, fmt.Errorf("record %d is not an object", i)
			}
			records = append(records, record)
		}
		columns, names := recordsToColumns(records, order)
		return columns, names, nil
	case map[string]any:
		if data, ok := v["data"].([]any); ok && len(data) > 0 {
			if _, isRecord := asStringMap(data[0]); isRecord {
				return fromStructured(data, order)
			}
		}
		columns := make(map[string][]any, len(v))
		names := make([]string, 0, len(v))
		length := -1
		for _, name := range mergeOrder(order, sortedKeys(v)) {
			raw, ok := v[name]
			if !ok {
				continue
			}
			values, ok := raw.([]any)
			if !ok {
				return nil, nil, fmt.Errorf("column %q is not an array", name)
			}
			if length >= 0 && len(values) != length {
				return nil, nil, fmt.Errorf("column %q has %d values, expected %d", name, len(values), length)
			}
			length = len(values)
			columns[name] = values
			names = append(names, name)
		}
		return columns, names, nil
	default:
		return nil, nil, errors.New("expected an array of records or an object of columns")
	}
}

func normaliseJSON(value any) any {
	switch v := value.(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		for i := range v {
			v[i] = normaliseJSON(v[i])
		}
		return v
	case map[string]any:
		for key, item := range v {
			v[key] = normaliseJSON(item)
		}
		return v
	default:
		return v
	}
}

func asStringMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// keyOrderJSON recovers the key order of the first record (or of the column
// object) so column order follows the source rather than map iteration.
func keyOrderJSON(raw []byte) []string {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	tok, err := decoder.Token()
	if err != nil {
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	switch delim {
	case '[':
		if !decoder.More() {
			return nil
		}
		tok, err = decoder.Token()
		if err != nil {
			return nil
		}
		if inner, ok := tok.(json.Delim); !ok || inner != '{' {
			return nil
		}
		keys, _ := objectKeys(decoder)
		return keys
	case '{':
		keys, data := objectKeys(decoder)
		if data != nil {
			return keyOrderJSON(data)
		}
		return keys
	default:
		return nil
	}
}

// objectKeys consumes the remainder of an object, returning its keys and the
// raw value of a "data" member when present.
func objectKeys(decoder *json.Decoder) ([]string, json.RawMessage) {
	var (
		keys []string
		data json.RawMessage
	)
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return keys, data
		}
		key, ok := tok.(string)
		if !ok {
			return keys, data
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return keys, data
		}
		if key == "data" {
			data = value
			continue
		}
		keys = append(keys, key)
	}
	return keys, data
}

func keyOrderYAML(node *yaml.Node) []string {
	target := node
	if target.Kind == yaml.DocumentNode && len(target.Content) > 0 {
		target = target.Content[0]
	}
	if target.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(target.Content); i += 2 {
			if target.Content[i].Value == "data" {
				target = target.Content[i+1]
				break
			}
		}
	}
	if target.Kind == yaml.SequenceNode && len(target.Content) > 0 {
		target = target.Content[0]
	}
	if target.Kind != yaml.MappingNode {
		return nil
	}
	order := make([]string, 0, len(target.Content)/2)
	for i := 0; i+1 < len(target.Content); i += 2 {
		order = append(order, target.Content[i].Value)
	}
	return order
}

func mergeOrder(preferred, rest []string) []string {
	out := append([]string(nil), preferred...)
	for _, name := range rest {
		if !contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
