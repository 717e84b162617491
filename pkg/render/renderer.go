package render

import (
	"context"

	"github.com/goliatone/go-chartgen/pkg/figure"
)

// Renderer converts a Figure into a byte representation (JSON, HTML, PNG...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, fig figure.Figure, options RenderOptions) ([]byte, error)
}

// RendererFunc adapts a plain function into a Renderer.
type RendererFunc struct {
	RendererName string
	Type         string
	Fn           func(ctx context.Context, fig figure.Figure, options RenderOptions) ([]byte, error)
}

func (r RendererFunc) Name() string        { return r.RendererName }
func (r RendererFunc) ContentType() string { return r.Type }

func (r RendererFunc) Render(ctx context.Context, fig figure.Figure, options RenderOptions) ([]byte, error) {
	return r.Fn(ctx, fig, options)
}
