// Package echarts renders cartesian figures as go-echarts HTML pages, one
// chart per subplot.
package echarts

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
)

const (
	defaultWidth  = 900
	defaultHeight = 500
	// ThemeAssetHost is the theme asset key consulted for the echarts bundle
	// host.
	ThemeAssetHost = "echarts.host"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithTheme selects an echarts built-in theme ("dark", "westeros"...). A dark
// theme variant selects "dark" automatically.
func WithTheme(name string) Option {
	return func(r *Renderer) {
		r.theme = name
	}
}

// WithAssetsHost overrides the host serving the echarts bundle.
func WithAssetsHost(host string) Option {
	return func(r *Renderer) {
		r.assetsHost = host
	}
}

// Renderer draws scatter, line, area and bar traces with go-echarts.
type Renderer struct {
	theme      string
	assetsHost string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the echarts renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return "echarts" }
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render builds one chart per subplot and renders them on a single page.
func (r *Renderer) Render(ctx context.Context, fig figure.Figure, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	series, err := render.CartesianSeries(r.Name(), fig)
	if err != nil {
		return nil, err
	}

	width, height := options.Size(fig.Layout, defaultWidth, defaultHeight)
	init := opts.Initialization{
		PageTitle: pageTitle(fig, options),
		Theme:     r.themeFor(options),
		Width:     fmt.Sprintf("%dpx", width),
		Height:    fmt.Sprintf("%dpx", height),
	}
	host := options.Asset(ThemeAssetHost, r.assetsHost)
	if host != "" {
		init.AssetsHost = host
	}

	page := components.NewPage()
	page.PageTitle = init.PageTitle
	if host != "" {
		page.SetAssetsHost(host)
	}

	for i, subplot := range subplotsOf(series) {
		members := filterSubplot(series, subplot)
		chart := r.chart(fig, subplot, members, init, i == 0)
		page.AddCharts(chart)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("echarts: render page: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) themeFor(options render.RenderOptions) string {
	if r.theme != "" {
		return r.theme
	}
	if options.Theme != nil && options.Theme.Variant == "dark" {
		return "dark"
	}
	return "white"
}

func (r *Renderer) chart(fig figure.Figure, subplot figure.Subplot, series []render.Series, init opts.Initialization, first bool) components.Charter {
	globals := []charts.GlobalOpts{
		charts.WithInitializationOpts(init),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(hasLegend(series))}),
	}
	if first && fig.Layout.Title != nil {
		globals = append(globals, charts.WithTitleOpts(opts.Title{Title: fig.Layout.Title.Text}))
	}

	horizontal := len(series) > 0 && series[0].Horizontal
	categoryOf := func(s render.Series) []any { return s.X }
	valueOf := func(s render.Series) []any { return s.Y }
	if horizontal {
		categoryOf, valueOf = valueOf, categoryOf
	}
	categories := render.Categories(series, categoryOf)

	xTitle := axisTitle(fig, subplot.XAxis)
	yTitle := axisTitle(fig, subplot.YAxis)
	if horizontal {
		xTitle, yTitle = yTitle, xTitle
	}
	kind := dominantKind(series)
	xAxis := opts.XAxis{Name: xTitle, NameLocation: "middle", NameGap: 25}
	switch {
	case kind == render.SeriesBar:
	case categories == nil:
		xAxis.Type = "value"
	case kind == render.SeriesScatter:
		xAxis.Type = "category"
		xAxis.Data = categories
	}
	globals = append(globals,
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(opts.YAxis{Name: yTitle, NameLocation: "middle", NameGap: 40}),
	)

	switch kind {
	case render.SeriesBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(globals...)
		bar.SetXAxis(categoriesOrPositions(categories, series, categoryOf))
		for _, s := range series {
			bar.AddSeries(s.Name, barData(s, categories, categoryOf, valueOf), seriesOptions(s)...)
		}
		if horizontal {
			bar.XYReversal()
		}
		return bar
	case render.SeriesLine, render.SeriesArea:
		line := charts.NewLine()
		line.SetGlobalOptions(globals...)
		if categories != nil {
			line.SetXAxis(categories)
		}
		for _, s := range series {
			line.AddSeries(s.Name, lineData(s, categories), seriesOptions(s)...)
		}
		return line
	default:
		scatter := charts.NewScatter()
		if visual, ok := visualMap(fig, series); ok {
			globals = append(globals, charts.WithVisualMapOpts(visual))
		}
		scatter.SetGlobalOptions(globals...)
		for _, s := range series {
			scatter.AddSeries(s.Name, scatterData(s, categories), seriesOptions(s)...)
		}
		return scatter
	}
}

func seriesOptions(s render.Series) []charts.SeriesOpts {
	var out []charts.SeriesOpts
	if s.Color != "" {
		out = append(out, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}
	if s.Kind == render.SeriesLine || s.Kind == render.SeriesArea {
		style := opts.LineStyle{Color: s.Color}
		switch s.Dash {
		case "dot":
			style.Type = "dotted"
		case "dash", "longdash", "dashdot", "longdashdot":
			style.Type = "dashed"
		}
		out = append(out, charts.WithLineStyleOpts(style))
	}
	return out
}

func scatterData(s render.Series, categories []string) []opts.ScatterData {
	xs := render.Positions(s.X, categories)
	ys := render.Floats(s.Y)
	out := make([]opts.ScatterData, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || i >= len(ys) || math.IsNaN(ys[i]) {
			continue
		}
		value := []interface{}{xs[i], ys[i]}
		if i < len(s.ColorValues) && !math.IsNaN(s.ColorValues[i]) {
			value = append(value, s.ColorValues[i])
		}
		out = append(out, opts.ScatterData{Value: value})
	}
	return out
}

func lineData(s render.Series, categories []string) []opts.LineData {
	ys := render.Floats(s.Y)
	if categories != nil {
		out := make([]opts.LineData, len(categories))
		positions := render.Positions(s.X, categories)
		for i, pos := range positions {
			if math.IsNaN(pos) || i >= len(ys) || math.IsNaN(ys[i]) {
				continue
			}
			out[int(pos)] = opts.LineData{Value: ys[i]}
		}
		return out
	}
	xs := render.Floats(s.X)
	out := make([]opts.LineData, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || i >= len(ys) || math.IsNaN(ys[i]) {
			continue
		}
		out = append(out, opts.LineData{Value: []interface{}{xs[i], ys[i]}})
	}
	return out
}

func barData(s render.Series, categories []string, categoryOf, valueOf func(render.Series) []any) []opts.BarData {
	values := render.Floats(valueOf(s))
	positions := render.Positions(categoryOf(s), categories)
	size := len(categories)
	if categories == nil {
		size = len(positions)
	}
	out := make([]opts.BarData, size)
	for i, pos := range positions {
		if i >= len(values) || math.IsNaN(values[i]) {
			continue
		}
		slot := i
		if categories != nil {
			if math.IsNaN(pos) {
				continue
			}
			slot = int(pos)
		}
		out[slot] = opts.BarData{Value: values[i]}
	}
	return out
}

func categoriesOrPositions(categories []string, series []render.Series, categoryOf func(render.Series) []any) []string {
	if categories != nil {
		return categories
	}
	if len(series) == 0 {
		return nil
	}
	values := categoryOf(series[0])
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = render.Label(v)
	}
	return out
}

func visualMap(fig figure.Figure, series []render.Series) (opts.VisualMap, bool) {
	var values [][]float64
	for _, s := range series {
		if s.ColorValues != nil {
			values = append(values, s.ColorValues)
		}
	}
	if len(values) == 0 {
		return opts.VisualMap{}, false
	}
	stops, lo, hi := render.ColorScale(fig, values...)
	palette := make([]string, len(stops))
	for i, stop := range stops {
		palette[i] = stop.Color
	}
	return opts.VisualMap{
		Show:       opts.Bool(true),
		Calculable: opts.Bool(true),
		Min:        float32(lo),
		Max:        float32(hi),
		Dimension:  "2",
		InRange:    &opts.VisualMapInRange{Color: palette},
	}, true
}

func dominantKind(series []render.Series) render.SeriesKind {
	kind := render.SeriesScatter
	for _, s := range series {
		switch s.Kind {
		case render.SeriesBar:
			return render.SeriesBar
		case render.SeriesLine, render.SeriesArea:
			kind = render.SeriesLine
		}
	}
	return kind
}

func subplotsOf(series []render.Series) []figure.Subplot {
	seen := map[figure.Subplot]struct{}{}
	var out []figure.Subplot
	for _, s := range series {
		if _, ok := seen[s.Subplot]; ok {
			continue
		}
		seen[s.Subplot] = struct{}{}
		out = append(out, s.Subplot)
	}
	return out
}

func filterSubplot(series []render.Series, subplot figure.Subplot) []render.Series {
	var out []render.Series
	for _, s := range series {
		if s.Subplot == subplot {
			out = append(out, s)
		}
	}
	return out
}

func hasLegend(series []render.Series) bool {
	for _, s := range series {
		if s.Name != "" {
			return true
		}
	}
	return false
}

func axisTitle(fig figure.Figure, ref string) string {
	axis, ok := fig.Layout.Axes[figure.LayoutKey(ref)]
	if !ok || axis == nil || axis.Title == nil {
		return ""
	}
	return axis.Title.Text
}

func pageTitle(fig figure.Figure, options render.RenderOptions) string {
	if options.Title != "" {
		return options.Title
	}
	if fig.Layout.Title != nil && fig.Layout.Title.Text != "" {
		return fig.Layout.Title.Text
	}
	return "chart"
}
