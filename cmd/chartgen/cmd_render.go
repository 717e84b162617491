package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-chartgen/pkg/chartdoc"
	"github.com/goliatone/go-chartgen/pkg/orchestrator"
)

type renderFlags struct {
	chart    chartdoc.Chart
	output   string
	preset   string
	sequence string
	scale    string
	orders   map[string]string
	centre   []float64
}

func newRenderCommand(a *app) *cobra.Command {
	rf := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render one chart described by flags",
		Long: `Loads a dataset, maps its columns onto the chart channels given as flags
and writes the rendered output.

Sources are file paths (.csv, .json), http(s) URLs when http loading is
enabled, or sqlite:<path>?query=<sql>.

Example:
  chartgen render sales.csv --kind bar --x region --y revenue --color segment
  chartgen render sales.csv --kind line --x month --y revenue --renderer svg -o trend.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				rf.chart.Source = args[0]
			}
			return runRender(cmd, a, rf)
		},
	}

	f := cmd.Flags()
	spec := &rf.chart.Spec
	f.StringVarP(&rf.chart.Source, "source", "s", "", "Dataset reference")
	f.StringVarP(&rf.chart.Kind, "kind", "k", "scatter", "Chart kind (see chartgen kinds)")
	f.StringVar(&rf.chart.Filter, "filter", "", `Row filter, e.g. 'year >= 2000 && continent == "Asia"'`)
	f.StringVarP(&rf.chart.Renderer, "renderer", "r", "", "Renderer name (see chartgen renderers)")
	f.StringVar(&rf.chart.Theme, "theme", "", "Theme manifest name")
	f.StringVar(&rf.chart.Variant, "variant", "", "Theme variant")
	f.StringVarP(&rf.chart.Title, "title", "t", "", "Figure title")
	f.StringVar(&rf.chart.Description, "description", "", "Markdown shown below HTML charts")
	f.IntVar(&rf.chart.Width, "width", 0, "Figure width in pixels")
	f.IntVar(&rf.chart.Height, "height", 0, "Figure height in pixels")
	f.StringVarP(&rf.output, "output", "o", "", "Output file (stdout if empty)")
	f.StringVar(&rf.preset, "preset", "", "JSON preset applied to the figure before rendering")

	f.StringVarP(&spec.X, "x", "x", "", "Column mapped to x")
	f.StringVarP(&spec.Y, "y", "y", "", "Column mapped to y")
	f.StringVar(&spec.Z, "z", "", "Column mapped to z")
	f.StringVar(&spec.R, "r", "", "Column mapped to the polar radius")
	f.StringVar(&spec.Theta, "theta", "", "Column mapped to the polar angle")
	f.StringVar(&spec.A, "a", "", "Column mapped to the first ternary axis")
	f.StringVar(&spec.B, "b", "", "Column mapped to the second ternary axis")
	f.StringVar(&spec.C, "c", "", "Column mapped to the third ternary axis")
	f.StringVar(&spec.Lat, "lat", "", "Latitude column")
	f.StringVar(&spec.Lon, "lon", "", "Longitude column")
	f.StringVar(&spec.Locations, "locations", "", "Location column for choropleths")
	f.StringVar(&spec.LocationMode, "locationmode", "", "Location mode: ISO-3, USA-states or country names")

	f.StringVar(&spec.Color, "color", "", "Column mapped to color")
	f.StringVar(&spec.Symbol, "symbol", "", "Column mapped to marker symbol")
	f.StringVar(&spec.Size, "size", "", "Column mapped to marker size")
	f.StringVar(&spec.LineDash, "line-dash", "", "Column mapped to line dash")
	f.StringVar(&spec.LineGroup, "line-group", "", "Column splitting lines without a legend entry")
	f.StringVar(&spec.Text, "text", "", "Column shown as text labels")
	f.StringVar(&spec.HoverName, "hover-name", "", "Column shown in bold in hover labels")
	f.StringSliceVar(&spec.HoverData, "hover-data", nil, "Extra columns shown in hover labels")
	f.StringVar(&spec.AnimationFrame, "animation-frame", "", "Column producing animation frames")
	f.StringVar(&spec.AnimationGroup, "animation-group", "", "Column matching marks across frames")
	f.StringVar(&spec.FacetRow, "facet-row", "", "Column splitting subplots vertically")
	f.StringVar(&spec.FacetCol, "facet-col", "", "Column splitting subplots horizontally")
	f.IntVar(&spec.FacetColWrap, "facet-col-wrap", 0, "Maximum facet columns per row")
	f.StringVar(&spec.ErrorX, "error-x", "", "Column holding x error bars")
	f.StringVar(&spec.ErrorY, "error-y", "", "Column holding y error bars")
	f.StringSliceVar(&spec.Dimensions, "dimensions", nil, "Columns used by matrix and parallel charts")

	f.StringToStringVar(&spec.Labels, "labels", nil, "Display labels, e.g. gdp=GDP,pop=Population")
	f.StringToStringVar(&rf.orders, "category-orders", nil, "Category orders, e.g. day=Mon;Tue;Wed")
	f.StringVar(&rf.sequence, "color-sequence", "", "Discrete palette name or comma separated colors")
	f.StringToStringVar(&spec.ColorDiscreteMap, "color-map", nil, "Explicit category colors, e.g. a=red,b=blue")
	f.StringVar(&rf.scale, "color-scale", "", "Continuous scale name or comma separated colors")
	f.Float64SliceVar(&spec.RangeColor, "range-color", nil, "Continuous color range as min,max")

	f.StringVar(&spec.MarginalX, "marginal-x", "", "Marginal plot above x: histogram, rug, box or violin")
	f.StringVar(&spec.MarginalY, "marginal-y", "", "Marginal plot beside y: histogram, rug, box or violin")
	f.BoolVar(&spec.LogX, "log-x", false, "Logarithmic x axis")
	f.BoolVar(&spec.LogY, "log-y", false, "Logarithmic y axis")
	f.Float64SliceVar(&spec.RangeX, "range-x", nil, "X axis range as min,max")
	f.Float64SliceVar(&spec.RangeY, "range-y", nil, "Y axis range as min,max")
	f.StringVar(&spec.LineShape, "line-shape", "", "Line shape: linear, spline, hv, vh, hvh or vhv")

	f.StringVar(&spec.Orientation, "orientation", "", "Orientation: v or h")
	f.StringVar(&spec.BarMode, "barmode", "", "Bar mode: relative, group or overlay")
	f.StringVar(&spec.BoxMode, "boxmode", "", "Box mode: group or overlay")
	f.StringVar(&spec.ViolinMode, "violinmode", "", "Violin mode: group or overlay")
	f.StringVar(&spec.HistFunc, "histfunc", "", "Histogram aggregation: count, sum, avg, min or max")
	f.StringVar(&spec.HistNorm, "histnorm", "", "Histogram normalisation")
	f.BoolVar(&spec.Cumulative, "cumulative", false, "Cumulative histogram")
	f.IntVar(&spec.NBins, "nbins", 0, "Histogram bin count")
	f.StringVar(&spec.Points, "points", "", "Box and violin points: outliers, suspectedoutliers, all or false")
	f.BoolVar(&spec.Notched, "notched", false, "Notched boxes")
	f.BoolVar(&spec.Box, "box", false, "Draw a box inside violins")

	f.StringVar(&spec.Projection, "projection", "", "Geo projection type")
	f.StringVar(&spec.Scope, "scope", "", "Geo scope")
	f.Float64SliceVar(&rf.centre, "center", nil, "Map centre as lat,lon")
	f.Float64Var(&spec.Zoom, "zoom", 0, "Mapbox zoom level")
	f.StringVar(&spec.MapboxStyle, "mapbox-style", "", "Mapbox base style")
	f.StringVar(&spec.Template, "template", "", "Figure template name")
	return cmd
}

// toChart finishes the flag-built chart: palettes, category orders and the
// map centre need parsing.
func (rf *renderFlags) toChart() (chartdoc.Chart, error) {
	chart := rf.chart
	chart.ID = "cli"
	chart.Title = chartdoc.SanitizeTitle(chart.Title)
	chart.Spec.ColorDiscreteSequence = parsePalette(rf.sequence)
	chart.Spec.ColorContinuousScale = parsePalette(rf.scale)

	if len(rf.orders) > 0 {
		chart.Spec.CategoryOrders = make(map[string][]string, len(rf.orders))
		for column, raw := range rf.orders {
			chart.Spec.CategoryOrders[column] = strings.Split(raw, ";")
		}
	}
	switch len(rf.centre) {
	case 0:
	case 2:
		chart.Spec.Center = &chartdoc.Center{Lat: rf.centre[0], Lon: rf.centre[1]}
	default:
		return chartdoc.Chart{}, fmt.Errorf("--center expects lat,lon")
	}
	if strings.TrimSpace(chart.Source) == "" {
		return chartdoc.Chart{}, fmt.Errorf("a dataset source is required")
	}
	return chart, nil
}

func parsePalette(raw string) chartdoc.Palette {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return chartdoc.Palette{}
	}
	if strings.Contains(raw, ",") || strings.HasPrefix(raw, "#") {
		var palette chartdoc.Palette
		for _, color := range strings.Split(raw, ",") {
			if color = strings.TrimSpace(color); color != "" {
				palette.Colors = append(palette.Colors, color)
			}
		}
		return palette
	}
	return chartdoc.Palette{Name: raw}
}

func runRender(cmd *cobra.Command, a *app, rf *renderFlags) error {
	chart, err := rf.toChart()
	if err != nil {
		return err
	}
	req, err := orchestrator.RequestFromChart(chart)
	if err != nil {
		return err
	}
	options := a.renderOptions()
	options.Title = req.RenderOptions.Title
	req.RenderOptions = options

	orch, err := a.orchestratorFor(nil, rf.preset)
	if err != nil {
		return err
	}
	a.logger.Debug("rendering chart",
		zap.String("kind", string(req.Kind)),
		zap.String("source", req.Source.Location()),
		zap.String("renderer", req.Renderer),
	)
	output, err := orch.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	target := rf.output
	if target == "" {
		target = a.cfg.Output
	}
	if target == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}
	if err := writeOutput(target, output); err != nil {
		return err
	}
	a.logger.Info("chart written", zap.String("path", target), zap.Int("bytes", len(output)))
	return nil
}
