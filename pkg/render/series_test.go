package render_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
)

func TestCartesianSeries(t *testing.T) {
	hidden := false
	fig := figure.Figure{Data: []figure.Trace{
		{Type: "scatter", Mode: "markers", Name: "a", X: []any{1.0, 2.0}, Y: []any{3.0, 4.0}, Marker: &figure.Marker{Color: "#636efa", Symbol: "diamond"}},
		{Type: "scatter", Mode: "lines", Name: "b", XAxis: "x2", YAxis: "y2", ShowLegend: &hidden, Line: &figure.Line{Color: "#EF553B", Dash: "dot"}},
		{Type: "scatter", Mode: "lines", Attrs: map[string]any{"stackgroup": "1"}},
		{Type: "bar", Orientation: "h", Marker: &figure.Marker{Color: []any{1.0, 2.0}}},
	}}

	series, err := render.CartesianSeries("png", fig)
	if err != nil {
		t.Fatalf("series: %v", err)
	}

	kinds := []render.SeriesKind{series[0].Kind, series[1].Kind, series[2].Kind, series[3].Kind}
	want := []render.SeriesKind{render.SeriesScatter, render.SeriesLine, render.SeriesArea, render.SeriesBar}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if series[0].Color != "#636efa" || series[0].Symbol != "diamond" || !series[0].ShowLegend {
		t.Fatalf("unexpected first series %+v", series[0])
	}
	if series[1].Subplot != (figure.Subplot{XAxis: "x2", YAxis: "y2"}) || series[1].ShowLegend || series[1].Dash != "dot" || series[1].Color != "#EF553B" {
		t.Fatalf("unexpected second series %+v", series[1])
	}
	if !series[3].Horizontal || len(series[3].ColorValues) != 2 {
		t.Fatalf("unexpected bar series %+v", series[3])
	}
}

func TestCartesianSeries_Unsupported(t *testing.T) {
	fig := figure.Figure{Data: []figure.Trace{{Type: "parcats"}}}
	if _, err := render.CartesianSeries("png", fig); !errors.Is(err, render.ErrUnsupportedTrace) {
		t.Fatalf("expected ErrUnsupportedTrace, got %v", err)
	}
}

func TestCategoriesAndPositions(t *testing.T) {
	series := []render.Series{
		{X: []any{"b", "a", nil}},
		{X: []any{"c", "a"}},
	}
	cats := render.Categories(series, func(s render.Series) []any { return s.X })
	if diff := cmp.Diff([]string{"b", "a", "c"}, cats); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	pos := render.Positions(series[0].X, cats)
	if pos[0] != 0 || pos[1] != 1 || !math.IsNaN(pos[2]) {
		t.Fatalf("unexpected positions %v", pos)
	}

	numeric := []render.Series{{X: []any{1.0, 2.5}}}
	if cats := render.Categories(numeric, func(s render.Series) []any { return s.X }); cats != nil {
		t.Fatalf("expected numeric axis, got %v", cats)
	}
}

func TestColorScale(t *testing.T) {
	lo := 2.0
	fig := figure.Figure{}
	fig.Layout.ColorAxis = &figure.ColorAxis{CMin: &lo}

	stops, min, max := render.ColorScale(fig, []float64{4, 10, math.NaN()})
	if len(stops) == 0 {
		t.Fatalf("expected default scale")
	}
	if min != 2 || max != 10 {
		t.Fatalf("unexpected range %v..%v", min, max)
	}
	if got := render.Normalize(6, min, max); got != 0.5 {
		t.Fatalf("unexpected normalised value %v", got)
	}
}
