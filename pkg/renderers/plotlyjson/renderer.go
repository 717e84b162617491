// Package plotlyjson renders figures as the JSON document consumed by the
// browser charting library: {"data", "layout", "frames", "config"}.
package plotlyjson

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty prints the output using the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithName overrides the registry name (defaults to "json").
func WithName(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.name = name
		}
	}
}

// Renderer emits figure JSON.
type Renderer struct {
	name   string
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{name: "json"}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return r.name }
func (r *Renderer) ContentType() string { return "application/json" }

type document struct {
	Data   []figure.Trace `json:"data"`
	Layout figure.Layout  `json:"layout"`
	Frames []figure.Frame `json:"frames,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// Render encodes the figure. Size overrides in the options replace the layout
// width and height.
func (r *Renderer) Render(ctx context.Context, fig figure.Figure, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout := fig.Layout
	if options.Width > 0 {
		layout.Width = options.Width
	}
	if options.Height > 0 {
		layout.Height = options.Height
	}
	if layout.Title == nil && options.Title != "" {
		layout.Title = &figure.Title{Text: options.Title}
	}

	doc := document{
		Data:   fig.Data,
		Layout: layout,
		Frames: fig.Frames,
		Config: options.Config,
	}
	if doc.Data == nil {
		doc.Data = []figure.Trace{}
	}

	var (
		payload []byte
		err     error
	)
	if r.indent != "" {
		payload, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		payload, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("plotlyjson: marshal figure: %w", err)
	}
	return payload, nil
}
