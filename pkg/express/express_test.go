package express

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/testsupport"
)

func sampleFrame() *dataset.Frame {
	return dataset.MustNewFrame(
		dataset.NewNumberColumn("x", []float64{1, 2, 3, 4}),
		dataset.NewNumberColumn("y", []float64{4, 3, 2, 1}),
		dataset.NewNumberColumn("z", []float64{0.2, 0.4, 0.6, 0.8}),
		dataset.NewStringColumn("cat", []string{"a", "b", "a", "b"}),
		dataset.NewNumberColumn("lat", []float64{45, 46, 47, 48}),
		dataset.NewNumberColumn("lon", []float64{7, 8, 9, 10}),
		dataset.NewStringColumn("iso", []string{"FRA", "DEU", "ITA", "ESP"}),
	)
}

func TestEveryKindBuilds(t *testing.T) {
	cases := []struct {
		kind      Kind
		args      Args
		traceType string
	}{
		{KindScatter, Args{X: "x", Y: "y", Color: "cat"}, "scatter"},
		{KindLine, Args{X: "x", Y: "y", LineDash: "cat"}, "scatter"},
		{KindArea, Args{X: "x", Y: "y", Color: "cat"}, "scatter"},
		{KindBar, Args{X: "cat", Y: "y"}, "bar"},
		{KindHistogram, Args{X: "x", NBins: 4}, "histogram"},
		{KindViolin, Args{X: "cat", Y: "y", Box: true}, "violin"},
		{KindBox, Args{X: "cat", Y: "y", Points: "all"}, "box"},
		{KindStrip, Args{X: "cat", Y: "y"}, "box"},
		{KindDensityHeatmap, Args{X: "x", Y: "y", NBinsX: 10}, "histogram2d"},
		{KindDensityContour, Args{X: "x", Y: "y", Color: "cat"}, "histogram2dcontour"},
		{KindScatterPolar, Args{R: "x", Theta: "cat"}, "scatterpolar"},
		{KindLinePolar, Args{R: "x", Theta: "cat", LineClose: true}, "scatterpolar"},
		{KindBarPolar, Args{R: "x", Theta: "cat"}, "barpolar"},
		{KindScatter3D, Args{X: "x", Y: "y", Z: "z"}, "scatter3d"},
		{KindLine3D, Args{X: "x", Y: "y", Z: "z"}, "scatter3d"},
		{KindScatterTernary, Args{A: "x", B: "y", C: "z"}, "scatterternary"},
		{KindLineTernary, Args{A: "x", B: "y", C: "z"}, "scatterternary"},
		{KindScatterMatrix, Args{Color: "cat"}, "splom"},
		{KindParallelCoordinates, Args{Color: "z"}, "parcoords"},
		{KindParallelCategories, Args{Dimensions: []string{"cat", "iso"}}, "parcats"},
		{KindScatterGeo, Args{Lat: "lat", Lon: "lon"}, "scattergeo"},
		{KindLineGeo, Args{Locations: "iso"}, "scattergeo"},
		{KindChoropleth, Args{Locations: "iso", Color: "z"}, "choropleth"},
		{KindScatterMapbox, Args{Lat: "lat", Lon: "lon"}, "scattermapbox"},
		{KindLineMapbox, Args{Lat: "lat", Lon: "lon", Color: "cat"}, "scattermapbox"},
	}
	if len(cases) != len(Kinds()) {
		t.Fatalf("expected a case per registered kind: %d cases, %d kinds", len(cases), len(Kinds()))
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			fn, ok := Lookup(tc.kind)
			if !ok {
				t.Fatalf("kind %q not registered", tc.kind)
			}
			fig, err := fn(sampleFrame(), tc.args)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if len(fig.Data) == 0 {
				t.Fatalf("no traces")
			}
			if got := fig.Data[0].Type; got != tc.traceType {
				t.Fatalf("trace type = %q, want %q", got, tc.traceType)
			}
		})
	}
}

func TestEntryPointPatches(t *testing.T) {
	frame := sampleFrame()

	line, err := Line(frame, Args{X: "x", Y: "y", LineDash: "cat"})
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if line.Data[0].Mode != "lines" || line.Data[1].Line.Dash != "dot" {
		t.Fatalf("line mode/dash = %q/%q", line.Data[0].Mode, line.Data[1].Line.Dash)
	}

	area, err := Area(frame, Args{X: "x", Y: "y"})
	if err != nil {
		t.Fatalf("Area: %v", err)
	}
	if area.Data[0].Attrs["stackgroup"] != "1" {
		t.Fatalf("area stackgroup = %v", area.Data[0].Attrs["stackgroup"])
	}

	bar, err := Bar(frame, Args{X: "cat", Y: "y"})
	if err != nil {
		t.Fatalf("Bar: %v", err)
	}
	if bar.Layout.BarMode != "relative" || bar.Data[0].Orientation != "v" {
		t.Fatalf("bar barmode/orientation = %q/%q", bar.Layout.BarMode, bar.Data[0].Orientation)
	}

	strip, err := Strip(frame, Args{X: "cat", Y: "y"})
	if err != nil {
		t.Fatalf("Strip: %v", err)
	}
	if strip.Data[0].Attrs["boxpoints"] != "all" || strip.Layout.BoxMode != "group" {
		t.Fatalf("strip attrs = %v, boxmode %q", strip.Data[0].Attrs, strip.Layout.BoxMode)
	}

	splom, err := ScatterMatrix(frame, Args{})
	if err != nil {
		t.Fatalf("ScatterMatrix: %v", err)
	}
	if splom.Layout.DragMode != "select" {
		t.Fatalf("dragmode = %q", splom.Layout.DragMode)
	}

	choropleth, err := Choropleth(frame, Args{Locations: "iso", Color: "z", LocationMode: "ISO-3"})
	if err != nil {
		t.Fatalf("Choropleth: %v", err)
	}
	trace := choropleth.Data[0]
	if diff := cmp.Diff([]any{0.2, 0.4, 0.6, 0.8}, trace.Z); diff != "" {
		t.Fatalf("choropleth z (-want +got):\n%s", diff)
	}
	if trace.Attrs["locationmode"] != "ISO-3" || trace.Attrs["coloraxis"] != "coloraxis" {
		t.Fatalf("choropleth attrs = %v", trace.Attrs)
	}
}

func TestEntryPointRejectsUngroupedChannels(t *testing.T) {
	_, err := ScatterMapbox(sampleFrame(), Args{Lat: "lat", Lon: "lon", Symbol: "cat"})
	if err == nil || !strings.Contains(err.Error(), "does not support symbol") {
		t.Fatalf("expected symbol rejection, got %v", err)
	}
	_, err = ParallelCoordinates(sampleFrame(), Args{Color: "cat"})
	if err == nil {
		t.Fatalf("expected categorical color rejection for parcoords")
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"scatter":         KindScatter,
		"Scatter-3D":      KindScatter3D,
		"scatter3d":       KindScatter3D,
		" line_polar ":    KindLinePolar,
		"DENSITY-HEATMAP": KindDensityHeatmap,
	}
	for input, want := range cases {
		got, err := ParseKind(input)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseKind("pie"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	called := false
	custom := func(frame *dataset.Frame, args Args) (figure.Figure, error) {
		called = true
		return Scatter(frame, args)
	}
	if err := reg.Register("dots", custom); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register("", custom); err == nil {
		t.Fatalf("expected error for empty kind")
	}
	if _, err := reg.Build("dots", sampleFrame(), Args{X: "x", Y: "y"}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !called {
		t.Fatalf("custom kind not invoked")
	}
	if _, ok := Lookup("dots"); ok {
		t.Fatalf("registering on a private registry must not affect the default")
	}
	if _, err := reg.Build("pie", sampleFrame(), Args{}); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestScatterFromCSVFixture(t *testing.T) {
	frame := testsupport.LoadFrame(t, filepath.Join("testdata", "countries.csv"))
	fig, err := Scatter(frame, Args{
		X:         "gdpPercap",
		Y:         "lifeExp",
		Color:     "continent",
		Size:      "pop",
		HoverName: "country",
		LogX:      true,
	})
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}

	doc := testsupport.FigureJSON(t, fig).(map[string]any)
	data := doc["data"].([]any)
	var names []string
	for _, raw := range data {
		trace := raw.(map[string]any)
		if trace["type"] != "scatter" {
			t.Fatalf("unexpected trace type %v", trace["type"])
		}
		names = append(names, trace["name"].(string))
	}
	if diff := cmp.Diff([]string{"Europe", "Asia", "Africa", "Americas"}, names); diff != "" {
		t.Fatalf("trace names mismatch (-want +got):\n%s", diff)
	}
}
