package echarts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
	"github.com/goliatone/go-chartgen/pkg/renderers/echarts"
)

func TestRenderer_ScatterWithContinuousColor(t *testing.T) {
	fig := figure.Figure{Data: []figure.Trace{{
		Type:   "scatter",
		Mode:   "markers",
		Name:   "points",
		X:      []any{1.0, 2.0, 3.0},
		Y:      []any{4.0, 5.0, 6.0},
		Marker: &figure.Marker{Color: []any{0.1, 0.5, 0.9}, ColorAxis: "coloraxis"},
		XAxis:  "x",
		YAxis:  "y",
	}}}
	fig.Layout.Title = &figure.Title{Text: "Scatter"}

	renderer := echarts.New()
	assert.Equal(t, "echarts", renderer.Name())

	out, err := renderer.Render(context.Background(), fig, render.RenderOptions{})
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<title>Scatter</title>")
	assert.Contains(t, html, `"name":"points"`)
	assert.Contains(t, html, `"visualMap"`)
}

func TestRenderer_FacetsBecomeCharts(t *testing.T) {
	fig := figure.Figure{Data: []figure.Trace{
		{Type: "bar", Name: "left", X: []any{"a", "b"}, Y: []any{1.0, 2.0}, XAxis: "x", YAxis: "y", Marker: &figure.Marker{Color: "#636efa"}},
		{Type: "bar", Name: "right", X: []any{"a", "b"}, Y: []any{3.0, 4.0}, XAxis: "x2", YAxis: "y2", Marker: &figure.Marker{Color: "#EF553B"}},
	}}

	out, err := echarts.New().Render(context.Background(), fig, render.RenderOptions{})
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `"name":"left"`)
	assert.Contains(t, html, `"name":"right"`)
	assert.Contains(t, html, "#EF553B")
}

func TestRenderer_Unsupported(t *testing.T) {
	fig := figure.Figure{Data: []figure.Trace{{Type: "choropleth"}}}
	_, err := echarts.New().Render(context.Background(), fig, render.RenderOptions{})
	require.ErrorIs(t, err, render.ErrUnsupportedTrace)
}
