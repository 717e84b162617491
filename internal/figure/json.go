package figure

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalJSON encodes the typed attributes and merges Attrs on top.
func (t Trace) MarshalJSON() ([]byte, error) {
	type plain Trace
	return mergeJSON(plain(t), t.Attrs)
}

// MarshalJSON flattens the axes into the layout object and merges Attrs on
// top.
func (l Layout) MarshalJSON() ([]byte, error) {
	type plain Layout
	extra := make(map[string]any, len(l.Axes)+len(l.Attrs))
	for key, axis := range l.Axes {
		if axis == nil {
			continue
		}
		raw, err := json.Marshal(axis)
		if err != nil {
			return nil, fmt.Errorf("figure: encode %s: %w", key, err)
		}
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("figure: encode %s: %w", key, err)
		}
		extra[key] = obj
	}
	MergePatch(extra, l.Attrs)
	return mergeJSON(plain(l), extra)
}

func mergeJSON(value any, attrs map[string]any) ([]byte, error) {
	base, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return base, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	MergePatch(obj, attrs)
	return json.Marshal(obj)
}

// MergePatch deep-merges patch into dst. Keys containing dots expand into
// nested objects ("polar.angularaxis.direction"); nested maps merge, every
// other value replaces what was there.
func MergePatch(dst map[string]any, patch map[string]any) {
	for key, value := range patch {
		path := strings.Split(key, ".")
		target := dst
		for _, segment := range path[:len(path)-1] {
			next, ok := target[segment].(map[string]any)
			if !ok {
				next = make(map[string]any)
				target[segment] = next
			}
			target = next
		}
		leaf := path[len(path)-1]
		if incoming, ok := value.(map[string]any); ok {
			existing, ok := target[leaf].(map[string]any)
			if !ok {
				existing = make(map[string]any, len(incoming))
				target[leaf] = existing
			}
			MergePatch(existing, incoming)
			continue
		}
		target[leaf] = value
	}
}

// ClonePatch deep-copies a patch so callers can keep mutating their own copy.
func ClonePatch(patch map[string]any) map[string]any {
	if patch == nil {
		return nil
	}
	out := make(map[string]any, len(patch))
	MergePatch(out, patch)
	return out
}
