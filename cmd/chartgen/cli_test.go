package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartgen/internal/prompt"
)

const salesCSV = `region,segment,revenue
north,retail,120
south,retail,80
north,online,200
south,online,40
`

type plotDocument struct {
	Data []struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Y    []any  `json:"y"`
	} `json:"data"`
	Layout struct {
		Title struct {
			Text string `json:"text"`
		} `json:"title"`
	} `json:"layout"`
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a.out, a.errOut = &out, &errOut
	root := newRootCommand(a)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, contents string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestKindsCommand(t *testing.T) {
	out, err := execute(t, newApp(nil, nil), "kinds")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "scatter")
	assert.Contains(t, lines, "density_heatmap")
	assert.Contains(t, lines, "scatter_mapbox")
}

func TestRenderersCommandMarksDefault(t *testing.T) {
	out, err := execute(t, newApp(nil, nil), "renderers")
	require.NoError(t, err)
	assert.Contains(t, out, "application/json")
	assert.Regexp(t, `html\s+text/html; charset=utf-8\s+\(default\)`, out)
	assert.Contains(t, out, "svg")
}

func TestRenderCommandWritesJSONToStdout(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, filepath.Join(dir, "sales.csv"), salesCSV)

	_, err := execute(t, newApp(nil, nil),
		"render", data,
		"--kind", "bar", "--x", "region", "--y", "revenue",
		"--config", filepath.Join(dir, "missing.yaml"),
	)
	require.Error(t, err, "an explicit missing config file must fail")

	out, err := execute(t, newApp(nil, nil),
		"render", data,
		"--kind", "bar", "--x", "region", "--y", "revenue", "--color", "segment",
		"--renderer", "json", "--title", "Revenue <script>x</script>",
	)
	require.NoError(t, err)

	var doc plotDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Data, 2)
	assert.Equal(t, "bar", doc.Data[0].Type)
	assert.Equal(t, "retail", doc.Data[0].Name)
	assert.Equal(t, "online", doc.Data[1].Name)
	assert.NotContains(t, doc.Layout.Title.Text, "<script>")
}

func TestRenderCommandFilterAndOutputFile(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, filepath.Join(dir, "sales.csv"), salesCSV)
	target := filepath.Join(dir, "out", "north.json")

	_, err := execute(t, newApp(nil, nil),
		"render", "--source", data,
		"--kind", "scatter", "--x", "segment", "--y", "revenue",
		"--filter", `region == "north"`,
		"--renderer", "json", "-o", target,
	)
	require.NoError(t, err)

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	var doc plotDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "scatter", doc.Data[0].Type)
	assert.Equal(t, []any{120.0, 200.0}, doc.Data[0].Y)
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, filepath.Join(dir, "sales.csv"), salesCSV)

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing source", args: []string{"render", "--kind", "bar"}, want: "dataset source is required"},
		{name: "unknown kind", args: []string{"render", data, "--kind", "pie"}, want: "unknown chart kind"},
		{name: "bad centre", args: []string{"render", data, "--center", "1,2,3"}, want: "--center"},
		{name: "unknown column", args: []string{"render", data, "--kind", "bar", "--x", "nope", "--renderer", "json"}, want: "nope"},
		{name: "unknown palette", args: []string{"render", data, "--x", "region", "--color-sequence", "NoSuchPalette"}, want: "NoSuchPalette"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, newApp(nil, nil), tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, filepath.Join(dir, "sales.csv"), salesCSV)
	cfgPath := writeFile(t, filepath.Join(dir, "chartgen.yaml"), "renderer: json\nlog_level: warn\n")

	out, err := execute(t, newApp(nil, nil), "--config", cfgPath, "render", data, "--x", "region", "--y", "revenue")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "config renderer should produce JSON")

	out, err = execute(t, newApp(nil, nil), "--config", cfgPath, "render", data, "--x", "region", "--y", "revenue", "--renderer", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<html")
}

func TestParsePalette(t *testing.T) {
	assert.Equal(t, "Viridis", parsePalette("Viridis").Name)
	assert.Equal(t, []string{"#fff", "#000"}, parsePalette("#fff, #000").Colors)
	assert.Equal(t, []string{"#abcdef"}, parsePalette("#abcdef").Colors)
	assert.True(t, parsePalette("  ").IsZero())
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".json", extensionFor("json"))
	assert.Equal(t, ".svg", extensionFor("svg"))
	assert.Equal(t, ".png", extensionFor("png"))
	assert.Equal(t, ".html", extensionFor("echarts"))
	assert.Equal(t, ".html", extensionFor(""))
}

const chartsDoc = `
defaults:
  source: fs:data/sales.csv
  renderer: json
charts:
  - id: by-region
    title: Revenue by region
    kind: bar
    args:
      x: region
      y: revenue
  - id: online
    kind: scatter
    filter: segment == "online"
    renderer: svg
    args:
      x: region
      y: revenue
`

func TestDocCommandRendersEveryChart(t *testing.T) {
	dir := t.TempDir()
	charts := filepath.Join(dir, "charts")
	writeFile(t, filepath.Join(charts, "sales.yaml"), chartsDoc)
	writeFile(t, filepath.Join(charts, "data", "sales.csv"), salesCSV)
	outDir := filepath.Join(dir, "public")

	out, err := execute(t, newApp(nil, nil), "doc", charts, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(outDir, "by-region.json"))
	assert.Contains(t, out, filepath.Join(outDir, "online.svg"))

	raw, err := os.ReadFile(filepath.Join(outDir, "by-region.json"))
	require.NoError(t, err)
	var doc plotDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Revenue by region", doc.Layout.Title.Text)

	svg, err := os.ReadFile(filepath.Join(outDir, "online.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestDocCommandListValidateAndSelect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sales.yaml"), chartsDoc)
	writeFile(t, filepath.Join(dir, "data", "sales.csv"), salesCSV)

	out, err := execute(t, newApp(nil, nil), "doc", dir, "--list")
	require.NoError(t, err)
	assert.Equal(t, "by-region\nonline\n", out)

	out, err = execute(t, newApp(nil, nil), "doc", dir, "--validate")
	require.NoError(t, err)
	assert.Equal(t, "2 charts valid\n", out)

	outDir := filepath.Join(dir, "out")
	_, err = execute(t, newApp(nil, nil), "doc", dir, "--id", "by-region", "--out", outDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "by-region.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "online.svg"))

	_, err = execute(t, newApp(nil, nil), "doc", dir, "--id", "missing")
	require.Error(t, err)
}

func TestDocCommandRejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "charts:\n  - id: x\n    kind: bar\n    args:\n      orientation: sideways\n")

	_, err := execute(t, newApp(nil, nil), "doc", dir, "--validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orientation")
}

func TestDocSchemaCommand(t *testing.T) {
	out, err := execute(t, newApp(nil, nil), "doc", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi:")
}

type scriptedDriver struct {
	selects []string
	inputs  []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return cfg.Default, nil
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	answer := d.selects[0]
	d.selects = d.selects[1:]
	for i, option := range cfg.Options {
		if option == answer {
			return i, nil
		}
	}
	return -1, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return nil, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestInteractiveCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, filepath.Join(dir, "sales.csv"), salesCSV)
	target := filepath.Join(dir, "wizard.json")

	a := newApp(nil, nil)
	a.driver = &scriptedDriver{
		selects: []string{"bar", "region", "revenue", "segment", "(none)", "json"},
		inputs:  []string{"", "Wizard chart", target},
	}
	out, err := execute(t, a, "interactive", data)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+target)

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	var doc plotDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Data, 2)
	assert.Equal(t, "Wizard chart", doc.Layout.Title.Text)
}

func TestBuildLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := newApp(nil, nil).cfg
	cfg.LogLevel = "warn"

	logger, err := buildLogger(cfg, false, &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger, err = buildLogger(cfg, true, &buf)
	require.NoError(t, err)
	logger.Debug("debugging")
	assert.Contains(t, buf.String(), "debugging")
}
