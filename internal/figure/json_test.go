package figure

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergePatchExpandsDottedKeys(t *testing.T) {
	dst := map[string]any{"polar": map[string]any{"radialaxis": map[string]any{"type": "log"}}}
	MergePatch(dst, map[string]any{
		"polar.angularaxis.direction": "clockwise",
		"polar":                       map[string]any{"radialaxis": map[string]any{"range": []float64{0, 1}}},
		"title":                       "demo",
	})
	want := map[string]any{
		"polar": map[string]any{
			"radialaxis":  map[string]any{"type": "log", "range": []float64{0, 1}},
			"angularaxis": map[string]any{"direction": "clockwise"},
		},
		"title": "demo",
	}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceMarshalMergesAttrs(t *testing.T) {
	trace := Trace{
		Type:   "box",
		Mode:   "markers",
		Marker: &Marker{Color: "red"},
		Attrs: map[string]any{
			"boxpoints":  "all",
			"mode":       "lines",
			"line.width": 0,
			"marker":     map[string]any{"opacity": 0.5},
		},
	}
	raw, err := json.Marshal(trace)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"type":      "box",
		"mode":      "lines",
		"boxpoints": "all",
		"line":      map[string]any{"width": 0.0},
		"marker":    map[string]any{"color": "red", "opacity": 0.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutMarshalFlattensAxes(t *testing.T) {
	layout := Layout{Template: "plotly", BarMode: "group"}
	layout.Axis("xaxis2").Domain = []float64{0.5, 1}
	layout.SetAttr("scene.xaxis.title.text", "x")

	raw, err := json.Marshal(layout)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"barmode": "group",
		"xaxis2":  map[string]any{"domain": []any{0.5, 1.0}},
		"scene":   map[string]any{"xaxis": map[string]any{"title": map[string]any{"text": "x"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestClonePatchIsDeep(t *testing.T) {
	src := map[string]any{"line": map[string]any{"width": 1}}
	clone := ClonePatch(src)
	clone["line"].(map[string]any)["width"] = 2
	if src["line"].(map[string]any)["width"] != 1 {
		t.Fatalf("clone shares nested maps with the source")
	}
}
