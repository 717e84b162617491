package orchestrator

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartgen/pkg/express"
	"github.com/goliatone/go-chartgen/pkg/figure"
)

const presetDocument = `{
  "layout": {"legend.orientation": "h", "margin": {"t": 40}},
  "traces": {"marker.line.width": 1},
  "named": {
    "retail": {"rename": "Stores", "patch": {"opacity": 0.6}},
    "online": {"hidden": true}
  }
}`

func TestJSONPresetTransformerPatchesFigure(t *testing.T) {
	transformer, err := NewJSONPresetTransformer([]byte(presetDocument))
	if err != nil {
		t.Fatalf("new transformer: %v", err)
	}
	orch, _ := captureOrchestrator(t, WithTransformer(transformer))

	fig, err := orch.Build(context.Background(), Request{
		Frame: salesFrame(t),
		Kind:  express.KindBar,
		Args:  express.Args{X: "region", Y: "revenue", Color: "segment"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	wantLayout := map[string]any{
		"legend": map[string]any{"orientation": "h"},
		"margin": map[string]any{"t": 40.0},
	}
	if diff := cmp.Diff(wantLayout, fig.Layout.Attrs); diff != "" {
		t.Fatalf("layout attrs mismatch (-want +got):\n%s", diff)
	}

	names := make([]string, len(fig.Data))
	for i, trace := range fig.Data {
		names[i] = trace.Name
		line := trace.Attrs["marker"].(map[string]any)["line"].(map[string]any)
		if line["width"] != 1.0 {
			t.Fatalf("trace %q missing shared patch: %v", trace.Name, trace.Attrs)
		}
	}
	if diff := cmp.Diff([]string{"Stores", "online"}, names); diff != "" {
		t.Fatalf("trace names mismatch (-want +got):\n%s", diff)
	}
	if fig.Data[0].Attrs["opacity"] != 0.6 {
		t.Fatalf("named patch not applied: %v", fig.Data[0].Attrs)
	}
	if fig.Data[1].Attrs["visible"] != "legendonly" {
		t.Fatalf("hidden trace not marked: %v", fig.Data[1].Attrs)
	}
}

func TestJSONPresetTransformerUnknownTrace(t *testing.T) {
	transformer, err := NewJSONPresetTransformer([]byte(`{"named": {"ghost": {"rename": "x"}}}`))
	if err != nil {
		t.Fatalf("new transformer: %v", err)
	}
	fig := figure.Figure{Data: []figure.Trace{{Type: "bar", Name: "real"}}}
	err = transformer.Transform(context.Background(), &fig)
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Fatalf("expected unknown trace error, got %v", err)
	}
}

func TestJSONPresetTransformerFromFS(t *testing.T) {
	fsys := fstest.MapFS{"presets/legend.json": {Data: []byte(`{"layout": {"showlegend": false}}`)}}
	transformer, err := NewJSONPresetTransformerFromFS(fsys, "presets/legend.json")
	if err != nil {
		t.Fatalf("load transformer: %v", err)
	}
	fig := figure.Figure{}
	if err := transformer.Transform(context.Background(), &fig); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if fig.Layout.Attrs["showlegend"] != false {
		t.Fatalf("layout patch missing: %v", fig.Layout.Attrs)
	}

	if _, err := NewJSONPresetTransformerFromFS(fsys, "missing.json"); err == nil {
		t.Fatalf("expected read error")
	}
	if _, err := NewJSONPresetTransformerFromFS(nil, "x"); err == nil {
		t.Fatalf("expected nil fs error")
	}
	if _, err := NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestChainRunsInOrder(t *testing.T) {
	var calls []string
	step := func(name string) Transformer {
		return TransformerFunc(func(context.Context, *figure.Figure) error {
			calls = append(calls, name)
			return nil
		})
	}
	if err := Chain(step("a"), nil, step("b")).Transform(context.Background(), &figure.Figure{}); err != nil {
		t.Fatalf("chain: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, calls); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
