package chartgen

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/express"
	"github.com/goliatone/go-chartgen/pkg/orchestrator"
)

func TestGenerateFromFS(t *testing.T) {
	fsys := fstest.MapFS{"gdp.csv": {Data: []byte("country,gdp\nfr,2.9\nde,4.1\n")}}
	out, err := Generate(context.Background(),
		dataset.SourceFromFS("gdp.csv"),
		express.KindBar,
		Args{X: "country", Y: "gdp"},
		"json",
		orchestrator.WithLoader(NewLoader(dataset.WithFileSystem(fsys))),
		orchestrator.WithParser(NewParser()),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `"type":"bar"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestGenerateFromFrameHTML(t *testing.T) {
	frame := dataset.MustNewFrame(
		dataset.NewNumberColumn("x", []float64{1, 2, 3}),
		dataset.NewNumberColumn("y", []float64{3, 1, 2}),
	)
	out, err := GenerateFromFrame(context.Background(), frame, express.KindLine, Args{X: "x", Y: "y", Title: "Trend"}, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<title>Trend</title>") || !strings.Contains(html, "Plotly.newPlot") {
		t.Fatalf("expected default html renderer output, got %s", html)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "page.tpl"); err != nil {
		t.Fatalf("page template missing: %v", err)
	}
}
