package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-chartgen/internal/dataset/loader"
	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/orchestrator"
	"github.com/goliatone/go-chartgen/pkg/render"
)

// orchestratorFor builds an orchestrator from the resolved config. fsys backs
// "fs:" dataset references and may be nil.
func (a *app) orchestratorFor(fsys fs.FS, preset string) (*orchestrator.Orchestrator, error) {
	loaderOptions := []dataset.LoaderOption{
		dataset.WithSQLDriver(a.cfg.SQL.Driver),
		dataset.WithMaxRows(a.cfg.SQL.MaxRows),
	}
	if fsys != nil {
		loaderOptions = append(loaderOptions, dataset.WithFileSystem(fsys))
	}
	if a.cfg.HTTP.Enabled {
		loaderOptions = append(loaderOptions, dataset.WithHTTPFallback(a.cfg.HTTP.Timeout))
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader.New(dataset.NewLoaderOptions(loaderOptions...))),
		orchestrator.WithDefaultRenderer(a.cfg.Renderer),
		orchestrator.WithConcurrency(a.cfg.Concurrency),
		orchestrator.WithLogger(a.logger),
	}

	if a.cfg.Themes != "" {
		selector, err := orchestrator.LoadThemeManifests(os.DirFS(a.cfg.Themes), ".")
		if err != nil {
			return nil, err
		}
		options = append(options,
			orchestrator.WithThemeSelector(selector),
			orchestrator.WithDefaultTheme(a.cfg.Theme, a.cfg.Variant),
		)
	}

	if preset != "" {
		raw, err := os.ReadFile(preset)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		transformer, err := orchestrator.NewJSONPresetTransformer(raw)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(transformer))
	}
	return orchestrator.New(options...), nil
}

// renderOptions returns the presentation settings shared by every chart.
func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Width:    a.cfg.Width,
		Height:   a.cfg.Height,
		AssetURL: a.cfg.AssetURL,
	}
}

// extensionFor maps a renderer name onto the file extension used when
// writing outputs to a directory.
func extensionFor(renderer string) string {
	switch renderer {
	case "json":
		return ".json"
	case "png":
		return ".png"
	case "svg":
		return ".svg"
	default:
		return ".html"
	}
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
