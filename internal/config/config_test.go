package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaultsWithoutSources(t *testing.T) {
	cfg, err := Load(Options{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRequiredMissingFile(t *testing.T) {
	_, err := Load(Options{Path: filepath.Join(t.TempDir(), "missing.yaml"), Required: true})
	if err == nil {
		t.Fatalf("expected error for missing required config")
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "chartgen.yaml", `
renderer: svg
theme: acme
width: 640
height: 480
charts: ./charts
http:
  enabled: true
  timeout: 5s
sql:
  max_rows: 100
`)
	envFile := writeFile(t, dir, ".env", "CHARTGEN_VARIANT=dark\nCHARTGEN_HEIGHT=300\n")
	t.Setenv("CHARTGEN_RENDERER", "png")
	t.Setenv("CHARTGEN_DEVELOPMENT", "true")
	t.Cleanup(func() {
		os.Unsetenv("CHARTGEN_VARIANT")
		os.Unsetenv("CHARTGEN_HEIGHT")
	})

	cfg, err := Load(Options{Path: path, EnvFiles: []string{envFile, filepath.Join(dir, "absent.env")}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Renderer = "png"
	want.Theme = "acme"
	want.Variant = "dark"
	want.Width = 640
	want.Height = 300
	want.Charts = "./charts"
	want.Development = true
	want.HTTP = HTTP{Enabled: true, Timeout: 5 * time.Second}
	want.SQL.MaxRows = 100
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "chartgen.yaml", "renderer: svg\nwidth: 640\n")
	t.Setenv("CHARTGEN_RENDERER", "png")

	cfg, err := Load(Options{Path: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Renderer != "png" {
		t.Fatalf("renderer = %q, environment should win over the file", cfg.Renderer)
	}
	if cfg.Width != 640 {
		t.Fatalf("width = %d, file value should survive", cfg.Width)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]struct {
		env  map[string]string
		yaml string
		want string
	}{
		"bad int":        {env: map[string]string{"CHARTGEN_WIDTH": "wide"}, want: "CHARTGEN_WIDTH"},
		"bad bool":       {env: map[string]string{"CHARTGEN_HTTP_ENABLED": "maybe"}, want: "CHARTGEN_HTTP_ENABLED"},
		"bad duration":   {env: map[string]string{"CHARTGEN_HTTP_TIMEOUT": "soon"}, want: "HTTP_TIMEOUT"},
		"bad level":      {env: map[string]string{"CHARTGEN_LOG_LEVEL": "loud"}, want: "log level"},
		"no concurrency": {yaml: "concurrency: 0\n", want: "concurrency"},
		"negative size":  {yaml: "width: -1\n", want: "width"},
		"bad yaml":       {yaml: "renderer: [\n", want: "parse"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			options := Options{}
			if tc.yaml != "" {
				options.Path = writeFile(t, t.TempDir(), "c.yaml", tc.yaml)
			}
			_, err := Load(options)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
