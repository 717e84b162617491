package chartdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chartgen/pkg/express"
)

// ErrDuplicateID reports two charts sharing an id across the loaded
// documents.
var ErrDuplicateID = errors.New("chartdoc: duplicate chart id")

// Extensions lists the file extensions LoadFS picks up.
var Extensions = []string{".yaml", ".yml", ".json"}

// LoadFS walks fsys and loads every chart document it finds into a Store.
func LoadFS(ctx context.Context, fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("chartdoc: file system is nil")
	}
	store := NewStore()
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !hasDocumentExt(name) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("chartdoc: read %s: %w", name, err)
		}
		doc, err := Parse(ctx, name, raw)
		if err != nil {
			return err
		}
		return store.Add(doc.Charts...)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes and validates one document. YAML and JSON are both accepted.
// Defaults are folded into each chart, kinds are normalised and titles
// sanitised.
func Parse(ctx context.Context, name string, raw []byte) (*Document, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("chartdoc: %s: document is empty", name)
	}
	var decoded any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("chartdoc: %s: decode: %w", name, err)
	}
	normalized, err := json.Marshal(decoded)
	if err != nil {
		return nil, fmt.Errorf("chartdoc: %s: normalise: %w", name, err)
	}
	var generic any
	if err := json.Unmarshal(normalized, &generic); err != nil {
		return nil, fmt.Errorf("chartdoc: %s: normalise: %w", name, err)
	}
	if err := validate(ctx, name, generic); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("chartdoc: %s: decode: %w", name, err)
	}
	for i := range doc.Charts {
		chart := &doc.Charts[i]
		kind, err := express.ParseKind(chart.Kind)
		if err != nil {
			return nil, fmt.Errorf("chartdoc: %s: chart %q: %w", name, chart.ID, err)
		}
		chart.Kind = string(kind)
		chart.Title = SanitizeTitle(chart.Title)
		chart.Document = name
		applyDefaults(chart, doc.Defaults)
	}
	return &doc, nil
}

func applyDefaults(chart *Chart, defaults Defaults) {
	if chart.Source == "" {
		chart.Source = defaults.Source
	}
	if chart.Renderer == "" {
		chart.Renderer = defaults.Renderer
	}
	if chart.Theme == "" {
		chart.Theme = defaults.Theme
	}
	if chart.Variant == "" {
		chart.Variant = defaults.Variant
	}
	if chart.Spec.Template == "" {
		chart.Spec.Template = defaults.Template
	}
}

func hasDocumentExt(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, candidate := range Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
