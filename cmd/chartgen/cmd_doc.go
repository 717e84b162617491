package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-chartgen/pkg/chartdoc"
	"github.com/goliatone/go-chartgen/pkg/orchestrator"
)

type docFlags struct {
	ids      []string
	outDir   string
	preset   string
	list     bool
	validate bool
}

func newDocCommand(a *app) *cobra.Command {
	df := &docFlags{}
	cmd := &cobra.Command{
		Use:   "doc [dir]",
		Short: "Render the charts declared in chart documents",
		Long: `Loads every .yaml, .yml and .json chart document under dir (default: the
charts directory from the config) and renders the selected charts into the
output directory, one file per chart id.

"fs:" dataset references inside documents resolve relative to the document
and are read from dir.

Example:
  chartgen doc charts --out public/charts
  chartgen doc charts --id revenue-by-region --id revenue-trend
  chartgen doc charts --validate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Charts
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("a chart document directory is required")
			}
			return runDoc(cmd, a, df, dir)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&df.ids, "id", nil, "Chart ids to render (all when empty)")
	f.StringVarP(&df.outDir, "out", "o", "charts-out", "Output directory")
	f.StringVar(&df.preset, "preset", "", "JSON preset applied to every figure before rendering")
	f.BoolVar(&df.list, "list", false, "List the chart ids and exit")
	f.BoolVar(&df.validate, "validate", false, "Validate the documents and exit")

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI schema chart documents are validated against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(chartdoc.SchemaSource())
			return err
		},
	})
	return cmd
}

func runDoc(cmd *cobra.Command, a *app, df *docFlags, dir string) error {
	ctx := cmd.Context()
	fsys := os.DirFS(dir)
	store, err := chartdoc.LoadFS(ctx, fsys)
	if err != nil {
		return err
	}
	a.logger.Debug("loaded chart documents", zap.String("dir", dir), zap.Int("charts", store.Len()))

	out := cmd.OutOrStdout()
	switch {
	case df.list:
		for _, id := range store.IDs() {
			fmt.Fprintln(out, id)
		}
		return nil
	case df.validate:
		fmt.Fprintf(out, "%d charts valid\n", store.Len())
		return nil
	}

	var charts []chartdoc.Chart
	if len(df.ids) == 0 {
		charts = store.All()
	} else {
		for _, id := range df.ids {
			chart, err := store.Get(id)
			if err != nil {
				return err
			}
			charts = append(charts, chart)
		}
	}

	reqs := make([]orchestrator.Request, len(charts))
	for i, chart := range charts {
		req, err := orchestrator.RequestFromChart(chart)
		if err != nil {
			return err
		}
		options := a.renderOptions()
		options.Title = req.RenderOptions.Title
		req.RenderOptions = options
		reqs[i] = req
	}

	orch, err := a.orchestratorFor(fsys, df.preset)
	if err != nil {
		return err
	}
	results, err := orch.GenerateAll(ctx, reqs)
	if err != nil {
		return err
	}

	for _, result := range results {
		chart := charts[result.Index]
		renderer := chart.Renderer
		if renderer == "" {
			renderer = a.cfg.Renderer
		}
		target := filepath.Join(df.outDir, chart.ID+extensionFor(renderer))
		if err := writeOutput(target, result.Output); err != nil {
			return err
		}
		a.logger.Info("chart written", zap.String("id", chart.ID), zap.String("path", target))
		fmt.Fprintln(out, target)
	}
	return nil
}
