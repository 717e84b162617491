package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-chartgen/pkg/figure"
)

// Transformer mutates a figure after the chart entry point ran and before
// decorators. Implementations can rename traces, inject layout attributes,
// or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, fig *figure.Figure) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, fig *figure.Figure) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, fig *figure.Figure) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, fig)
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, fig *figure.Figure) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, fig); err != nil {
				return err
			}
		}
		return nil
	})
}

// JSONPresetTransformer applies declarative patches loaded from a JSON file.
// The document shape supports a layout patch, a patch for every trace and
// per-trace patches keyed by trace name:
//
//	{
//	  "layout": {"legend.orientation": "h", "margin": {"t": 40}},
//	  "traces": {"marker.line.width": 1},
//	  "named": {
//	    "Europe": {"rename": "EU", "patch": {"opacity": 0.6}}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Layout map[string]any            `json:"layout"`
	Traces map[string]any            `json:"traces"`
	Named  map[string]jsonTracePatch `json:"named"`
}

type jsonTracePatch struct {
	Rename string         `json:"rename"`
	Hidden bool           `json:"hidden"`
	Patch  map[string]any `json:"patch"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied figure.
func (t *JSONPresetTransformer) Transform(ctx context.Context, fig *figure.Figure) error {
	if fig == nil {
		return errors.New("json preset transformer: figure is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(t.document.Layout) > 0 {
		if fig.Layout.Attrs == nil {
			fig.Layout.Attrs = make(map[string]any)
		}
		figure.MergePatch(fig.Layout.Attrs, t.document.Layout)
	}

	matched := make(map[string]bool, len(t.document.Named))
	for i := range fig.Data {
		trace := &fig.Data[i]
		patch, named := t.document.Named[trace.Name]
		if named {
			matched[trace.Name] = true
		}
		if len(t.document.Traces) > 0 {
			mergeTraceAttrs(trace, t.document.Traces)
		}
		if !named {
			continue
		}
		applyTracePatch(trace, patch)
	}

	for name := range t.document.Named {
		if !matched[name] {
			return fmt.Errorf("json preset transformer: trace %q not found", name)
		}
	}
	return nil
}

func applyTracePatch(trace *figure.Trace, patch jsonTracePatch) {
	if len(patch.Patch) > 0 {
		mergeTraceAttrs(trace, patch.Patch)
	}
	if patch.Hidden {
		mergeTraceAttrs(trace, map[string]any{"visible": "legendonly"})
	}
	if rename := strings.TrimSpace(patch.Rename); rename != "" {
		trace.Name = rename
	}
}

func mergeTraceAttrs(trace *figure.Trace, patch map[string]any) {
	if trace.Attrs == nil {
		trace.Attrs = make(map[string]any, len(patch))
	}
	figure.MergePatch(trace.Attrs, patch)
}
