// Package chartgen builds plotly-style figures from tabular datasets and
// renders them as JSON, HTML pages, echarts pages or static images.
package chartgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-chartgen/pkg/chartdoc"
	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/express"
	"github.com/goliatone/go-chartgen/pkg/orchestrator"
	"github.com/goliatone/go-chartgen/pkg/render"
)

// Args aliases the chart entry point arguments.
type Args = express.Args

// Kind aliases the chart kind names.
type Kind = express.Kind

// Request aliases the orchestrator request.
type Request = orchestrator.Request

// RenderOptions describes per-request presentation overrides passed to
// renderers.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the dataset source, builds a chart of the given kind and
// renders it with the named renderer. It is the simplest entry point for
// callers that just want output bytes.
func Generate(ctx context.Context, source dataset.Source, kind Kind, args Args, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Kind:     kind,
		Args:     args,
		Renderer: rendererName,
	})
}

// GenerateFromFrame renders a chart from an in-memory frame, bypassing the
// loader and parser stages.
func GenerateFromFrame(ctx context.Context, frame *dataset.Frame, kind Kind, args Args, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Frame:    frame,
		Kind:     kind,
		Args:     args,
		Renderer: rendererName,
	})
}

// GenerateChart renders chart id from the chart documents found in store.
func GenerateChart(ctx context.Context, store *chartdoc.Store, id string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).GenerateChart(ctx, store, id)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithDefaultTheme forwards the theme and variant used when a request names
// none.
func WithDefaultTheme(name, variant string) orchestrator.Option {
	return orchestrator.WithDefaultTheme(name, variant)
}
