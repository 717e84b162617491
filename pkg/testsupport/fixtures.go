package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	datasetloader "github.com/goliatone/go-chartgen/internal/dataset/loader"
	datasetparser "github.com/goliatone/go-chartgen/internal/dataset/parser"
	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/figure"
)

// LoadFrame reads a CSV/JSON/YAML fixture into a Frame. Testing helpers fail
// the test on error to keep contract tests concise.
func LoadFrame(t *testing.T, path string) *dataset.Frame {
	t.Helper()

	frame, err := LoadFrameFromPath(path)
	if err != nil {
		t.Fatalf("load frame: %v", err)
	}
	return frame
}

// LoadFrameFromPath returns a Frame without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadFrameFromPath(path string) (*dataset.Frame, error) {
	if path == "" {
		return nil, errors.New("testsupport: dataset path is required")
	}

	ctx := context.Background()
	loader := datasetloader.New(dataset.NewLoaderOptions())
	doc, err := loader.Load(ctx, dataset.SourceFromFile(path))
	if err != nil {
		return nil, fmt.Errorf("testsupport: load dataset: %w", err)
	}
	frame, err := datasetparser.New(dataset.NewParserOptions()).Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse dataset: %w", err)
	}
	return frame, nil
}

// FigureJSON encodes a figure and decodes it back into generic JSON values so
// patch attributes take part in comparisons.
func FigureJSON(t *testing.T, fig figure.Figure) any {
	t.Helper()

	payload, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("marshal figure: %v", err)
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal figure: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
