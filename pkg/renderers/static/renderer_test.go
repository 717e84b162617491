package static_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
	"github.com/goliatone/go-chartgen/pkg/renderers/static"
)

func scatterFigure() figure.Figure {
	fig := figure.Figure{Data: []figure.Trace{
		{Type: "scatter", Mode: "markers", Name: "a", X: []any{1.0, 2.0, nil}, Y: []any{2.0, 3.0, 4.0}, Marker: &figure.Marker{Color: "#636efa", Symbol: "diamond"}, XAxis: "x", YAxis: "y"},
		{Type: "scatter", Mode: "lines", Name: "b", X: []any{1.0, 2.0}, Y: []any{1.0, 5.0}, Line: &figure.Line{Color: "#EF553B", Dash: "dot"}, XAxis: "x", YAxis: "y"},
	}}
	fig.Layout.Title = &figure.Title{Text: "Static"}
	return fig
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	_, err := static.New("gif")
	require.Error(t, err)
}

func TestRenderer_PNG(t *testing.T) {
	renderer, err := static.New(static.FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, "png", renderer.Name())
	assert.Equal(t, "image/png", renderer.ContentType())

	out, err := renderer.Render(context.Background(), scatterFigure(), render.RenderOptions{Width: 400, Height: 300})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))
}

func TestRenderer_SVGWithContinuousColor(t *testing.T) {
	renderer, err := static.New(static.FormatSVG)
	require.NoError(t, err)

	fig := figure.Figure{Data: []figure.Trace{{
		Type:   "scatter",
		Mode:   "markers",
		X:      []any{1.0, 2.0, 3.0},
		Y:      []any{1.0, 4.0, 9.0},
		Marker: &figure.Marker{Color: []any{0.0, 5.0, 10.0}, ColorAxis: "coloraxis"},
	}}}

	out, err := renderer.Render(context.Background(), fig, render.RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<svg")
	assert.Equal(t, "image/svg+xml", renderer.ContentType())
}

func TestRenderer_FacetedBars(t *testing.T) {
	renderer, err := static.New(static.FormatPNG)
	require.NoError(t, err)

	fig := figure.Figure{Data: []figure.Trace{
		{Type: "bar", Name: "left", X: []any{"a", "b"}, Y: []any{1.0, 2.0}, XAxis: "x", YAxis: "y"},
		{Type: "bar", Name: "right", X: []any{"a", "b"}, Y: []any{3.0, 4.0}, XAxis: "x2", YAxis: "y2"},
	}}
	fig.Layout.Axis("xaxis").Domain = []float64{0, 0.49}
	fig.Layout.Axis("xaxis2").Domain = []float64{0.51, 1}

	out, err := renderer.Render(context.Background(), fig, render.RenderOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderer_HorizontalBars(t *testing.T) {
	renderer, err := static.New(static.FormatSVG)
	require.NoError(t, err)

	fig := figure.Figure{Data: []figure.Trace{
		{Type: "bar", Name: "a", Orientation: "h", X: []any{3.0, 1.0}, Y: []any{"north", "south"}},
		{Type: "bar", Name: "b", Orientation: "h", X: []any{2.0, 4.0}, Y: []any{"north", "south"}},
	}}

	out, err := renderer.Render(context.Background(), fig, render.RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "north")
}

func TestRenderer_Unsupported(t *testing.T) {
	renderer, err := static.New(static.FormatPNG)
	require.NoError(t, err)

	fig := figure.Figure{Data: []figure.Trace{{Type: "scatter3d"}}}
	_, err = renderer.Render(context.Background(), fig, render.RenderOptions{})
	require.ErrorIs(t, err, render.ErrUnsupportedTrace)
}
