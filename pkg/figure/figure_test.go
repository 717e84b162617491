package figure_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/figure"
)

func TestMakeFigureUsesRegisteredTemplate(t *testing.T) {
	figure.RegisterTemplate(figure.Template{Name: " Brand ", Colorway: []string{"#111111", "#222222"}})
	if _, ok := figure.LookupTemplate("brand"); !ok {
		t.Fatalf("template names should be normalised")
	}

	frame := dataset.MustNewFrame(
		dataset.NewNumberColumn("x", []float64{1, 2}),
		dataset.NewNumberColumn("y", []float64{3, 4}),
		dataset.NewStringColumn("team", []string{"red", "blue"}),
	)
	fig, err := figure.MakeFigure(frame,
		figure.Args{X: "x", Y: "y", Color: "team", Template: "brand"},
		figure.Scatter,
		map[string]any{"mode": "markers"},
		[]figure.Channel{figure.ChannelColor},
		nil,
	)
	if err != nil {
		t.Fatalf("MakeFigure: %v", err)
	}

	var got []any
	for _, trace := range fig.Data {
		got = append(got, trace.Marker.Color)
	}
	if diff := cmp.Diff([]any{"#111111", "#222222"}, got); diff != "" {
		t.Fatalf("marker colors (-want +got):\n%s", diff)
	}
}

func TestDecoratorFunc(t *testing.T) {
	var fig figure.Figure
	var decorator figure.Decorator = figure.DecoratorFunc(func(f *figure.Figure) error {
		f.Layout.Title = &figure.Title{Text: "decorated"}
		return nil
	})
	if err := decorator.Decorate(&fig); err != nil {
		t.Fatalf("Decorate: %v", err)
	}
	if fig.Layout.Title == nil || fig.Layout.Title.Text != "decorated" {
		t.Fatalf("decorator did not run")
	}
}

func TestConstructorsAreValid(t *testing.T) {
	for _, c := range figure.Constructors() {
		if !c.Valid() {
			t.Fatalf("constructor %q reported invalid", c)
		}
	}
	if figure.LayoutKey("x2") != "xaxis2" || figure.LayoutKey("y") != "yaxis" {
		t.Fatalf("unexpected layout keys")
	}
}
