package colors

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSequenceLookup(t *testing.T) {
	got, ok := Sequence("  set2 ")
	if !ok {
		t.Fatalf("expected Set2 to resolve")
	}
	if diff := cmp.Diff(Set2, got); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}

	reversed, ok := Sequence("Plotly_r")
	if !ok {
		t.Fatalf("expected reversed Plotly to resolve")
	}
	if reversed[0] != Plotly[len(Plotly)-1] || reversed[len(reversed)-1] != Plotly[0] {
		t.Fatalf("sequence not reversed: %v", reversed)
	}
	if Plotly[0] != "#636efa" {
		t.Fatalf("lookup mutated the shared palette")
	}

	if _, ok := Sequence("nope"); ok {
		t.Fatalf("unknown sequence resolved")
	}
	if _, ok := Continuous("Set2"); ok {
		t.Fatalf("qualitative name resolved as a continuous scale")
	}
	if scale, ok := Continuous("Viridis"); !ok || len(scale) != len(Viridis) {
		t.Fatalf("expected Viridis scale, got %v", scale)
	}
}

func TestNamesSorted(t *testing.T) {
	qualitativeNames, continuousNames := Names()
	if qualitativeNames[0] != "alphabet" {
		t.Fatalf("qualitative names not sorted: %v", qualitativeNames)
	}
	if continuousNames[0] != "blues" {
		t.Fatalf("continuous names not sorted: %v", continuousNames)
	}
}

func TestScale(t *testing.T) {
	if Scale(nil) != nil {
		t.Fatalf("empty input should yield nil")
	}
	want := []Stop{{0, "#000"}, {0.5, "#888"}, {1, "#fff"}}
	if diff := cmp.Diff(want, Scale([]string{"#000", "#888", "#fff"})); diff != "" {
		t.Fatalf("scale mismatch (-want +got):\n%s", diff)
	}
	single := Scale([]string{"red"})
	if len(single) != 2 || single[0].Position != 0 || single[1].Position != 1 {
		t.Fatalf("single color should span the range: %v", single)
	}

	payload, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `[[0,"#000"],[0.5,"#888"],[1,"#fff"]]` {
		t.Fatalf("unexpected stop encoding %s", payload)
	}
}

func TestSampleHex(t *testing.T) {
	stops := Scale([]string{"#000000", "#ffffff"})
	cases := map[float64]string{
		-1: "#000000",
		0:  "#000000",
		1:  "#ffffff",
		2:  "#ffffff",
	}
	for in, want := range cases {
		got, err := SampleHex(stops, in)
		if err != nil {
			t.Fatalf("SampleHex(%v): %v", in, err)
		}
		if got != want {
			t.Fatalf("SampleHex(%v) = %s, want %s", in, got, want)
		}
	}

	mid, err := SampleHex(stops, 0.5)
	if err != nil {
		t.Fatalf("SampleHex: %v", err)
	}
	if mid == "#000000" || mid == "#ffffff" {
		t.Fatalf("midpoint should interpolate, got %s", mid)
	}

	if _, err := Sample(nil, 0.5); err == nil {
		t.Fatalf("expected empty scale error")
	}
	if _, err := Sample([]Stop{{0, "#000"}, {1, "not-a-color"}}, 0.7); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"rgb(255, 0, 10)", color.NRGBA{R: 255, B: 10, A: 255}},
		{"rgba(0,128,0,0.5)", color.NRGBA{G: 128, A: 128}},
		{"transparent", color.NRGBA{}},
		{"#f00", color.NRGBA{R: 255, A: 255}},
		{"#00ff00", color.NRGBA{G: 255, A: 255}},
	}
	for _, tc := range cases {
		c, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		got := color.NRGBAModel.Convert(c).(color.NRGBA)
		if got != tc.want {
			t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"rgb(1,2)", "rgb 1,2,3", "rgb(a,b,c)", "#zzzzzz"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("Parse(%q) should fail", bad)
		}
	}
}

func TestReverse(t *testing.T) {
	values := []string{"a", "b", "c"}
	Reverse(values)
	if diff := cmp.Diff([]string{"c", "b", "a"}, values); diff != "" {
		t.Fatalf("reverse mismatch (-want +got):\n%s", diff)
	}
}
