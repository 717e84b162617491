// Package static renders cartesian figures to PNG or SVG images with
// gonum/plot. Facet subplots are tiled on a single canvas.
package static

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/goliatone/go-chartgen/pkg/colors"
	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
)

// Format is an image encoding supported by the renderer.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

const (
	defaultWidth  = 800
	defaultHeight = 500
)

// Renderer draws scatter, line, area and bar traces into an image.
type Renderer struct {
	format Format
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer for the given format.
func New(format Format) (*Renderer, error) {
	switch format {
	case FormatPNG, FormatSVG:
		return &Renderer{format: format}, nil
	default:
		return nil, fmt.Errorf("static: unsupported format %q", format)
	}
}

// Name returns the format name ("png" or "svg").
func (r *Renderer) Name() string { return string(r.format) }

// ContentType returns the image MIME type.
func (r *Renderer) ContentType() string {
	if r.format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render draws the figure.
func (r *Renderer) Render(ctx context.Context, fig figure.Figure, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	series, err := render.CartesianSeries(r.Name(), fig)
	if err != nil {
		return nil, err
	}

	grid := layoutGrid(fig, series)
	plots := make([][]*plot.Plot, grid.rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, grid.cols)
	}

	background := parseColor(fig.Layout.PlotBGColor, options.Token("background", "#ffffff"))
	for _, cell := range grid.cells {
		p, err := r.subplot(fig, cell.subplot, filterSubplot(series, cell.subplot), background)
		if err != nil {
			return nil, err
		}
		plots[cell.row][cell.col] = p
	}
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] == nil {
				empty := plot.New()
				empty.HideAxes()
				plots[i][j] = empty
			}
		}
	}
	if fig.Layout.Title != nil && fig.Layout.Title.Text != "" {
		plots[0][0].Title.Text = fig.Layout.Title.Text
	}

	width, height := options.Size(fig.Layout, defaultWidth, defaultHeight)
	canvas, err := draw.NewFormattedCanvas(pixels(width), pixels(height), string(r.format))
	if err != nil {
		return nil, fmt.Errorf("static: create canvas: %w", err)
	}
	tiles := draw.Tiles{
		Rows: grid.rows,
		Cols: grid.cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, draw.New(canvas))
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	var buf bytes.Buffer
	if _, err := canvas.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("static: encode %s: %w", r.format, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) subplot(fig figure.Figure, subplot figure.Subplot, series []render.Series, background color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.BackgroundColor = background
	p.X.Label.Text = axisTitle(fig, subplot.XAxis)
	p.Y.Label.Text = axisTitle(fig, subplot.YAxis)
	p.Legend.Top = true

	xCategories := render.Categories(series, func(s render.Series) []any { return s.X })
	yCategories := render.Categories(series, func(s render.Series) []any { return s.Y })

	var stops []colors.Stop
	var lo, hi float64
	if values := colorValues(series); len(values) > 0 {
		stops, lo, hi = render.ColorScale(fig, values...)
	}

	bars := 0
	for _, s := range series {
		if s.Kind == render.SeriesBar {
			bars++
		}
	}
	barIndex := 0

	for i, s := range series {
		fallback := colors.Plotly[i%len(colors.Plotly)]
		stroke := parseColor(s.Color, fallback)

		switch s.Kind {
		case render.SeriesBar:
			chart, err := barChart(s, xCategories, yCategories, barIndex, bars, stroke)
			if err != nil {
				return nil, fmt.Errorf("static: bar %q: %w", s.Name, err)
			}
			barIndex++
			p.Add(chart)
			addLegend(p, s, chart)
			if s.Horizontal {
				p.NominalY(labels(series, yCategories, func(s render.Series) []any { return s.Y })...)
			} else {
				p.NominalX(labels(series, xCategories, func(s render.Series) []any { return s.X })...)
			}
		case render.SeriesLine, render.SeriesArea:
			line, err := plotter.NewLine(points(s, xCategories, yCategories))
			if err != nil {
				return nil, fmt.Errorf("static: line %q: %w", s.Name, err)
			}
			line.LineStyle.Color = stroke
			line.LineStyle.Width = vg.Points(1.5)
			line.LineStyle.Dashes = dashes(s.Dash)
			if s.Kind == render.SeriesArea {
				line.FillColor = withAlpha(stroke, 0x80)
			}
			p.Add(line)
			addLegend(p, s, line)
		default:
			xys, indexes := pointsWithIndex(s, xCategories, yCategories)
			scatter, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("static: scatter %q: %w", s.Name, err)
			}
			scatter.GlyphStyle.Color = stroke
			scatter.GlyphStyle.Radius = vg.Points(3)
			scatter.GlyphStyle.Shape = glyph(s.Symbol)
			if s.ColorValues != nil {
				base := scatter.GlyphStyle
				values := s.ColorValues
				scatter.GlyphStyleFunc = func(k int) draw.GlyphStyle {
					style := base
					if c, err := colors.Sample(stops, render.Normalize(values[indexes[k]], lo, hi)); err == nil {
						style.Color = c
					}
					return style
				}
			}
			p.Add(scatter)
			addLegend(p, s, scatter)
		}
	}

	if xCategories != nil && !hasBars(series) {
		p.NominalX(xCategories...)
	}
	if yCategories != nil && !hasBars(series) {
		p.NominalY(yCategories...)
	}
	return p, nil
}

func barChart(s render.Series, xCategories, yCategories []string, index, total int, fill color.Color) (*plotter.BarChart, error) {
	categories, positions, values := xCategories, s.X, s.Y
	if s.Horizontal {
		categories, positions, values = yCategories, s.Y, s.X
	}
	heights := render.Floats(values)
	slots := render.Positions(positions, categories)

	size := len(categories)
	if categories == nil {
		size = len(heights)
	}
	bars := make(plotter.Values, size)
	for i, h := range heights {
		if math.IsNaN(h) {
			continue
		}
		slot := i
		if categories != nil {
			if i >= len(slots) || math.IsNaN(slots[i]) {
				continue
			}
			slot = int(slots[i])
		}
		bars[slot] += h
	}

	width := vg.Points(20)
	if total > 1 {
		width = vg.Points(40 / float64(total))
	}
	chart, err := plotter.NewBarChart(bars, width)
	if err != nil {
		return nil, err
	}
	chart.Color = fill
	chart.LineStyle.Width = 0
	chart.Horizontal = s.Horizontal
	chart.Offset = vg.Length(float64(index)-float64(total-1)/2) * width
	return chart, nil
}

func points(s render.Series, xCategories, yCategories []string) plotter.XYs {
	xys, _ := pointsWithIndex(s, xCategories, yCategories)
	return xys
}

// pointsWithIndex drops rows with a missing coordinate and returns, for each
// kept point, its row in the series.
func pointsWithIndex(s render.Series, xCategories, yCategories []string) (plotter.XYs, []int) {
	xs := render.Positions(s.X, xCategories)
	ys := render.Positions(s.Y, yCategories)
	xys := make(plotter.XYs, 0, len(xs))
	indexes := make([]int, 0, len(xs))
	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		xys = append(xys, plotter.XY{X: xs[i], Y: ys[i]})
		indexes = append(indexes, i)
	}
	return xys, indexes
}

func labels(series []render.Series, categories []string, values func(render.Series) []any) []string {
	if categories != nil {
		return categories
	}
	for _, s := range series {
		if s.Kind != render.SeriesBar {
			continue
		}
		raw := values(s)
		out := make([]string, len(raw))
		for i, v := range raw {
			out[i] = render.Label(v)
		}
		return out
	}
	return nil
}

func addLegend(p *plot.Plot, s render.Series, thumb plot.Thumbnailer) {
	if s.ShowLegend && s.Name != "" {
		p.Legend.Add(s.Name, thumb)
	}
}

func hasBars(series []render.Series) bool {
	for _, s := range series {
		if s.Kind == render.SeriesBar {
			return true
		}
	}
	return false
}

func colorValues(series []render.Series) [][]float64 {
	var out [][]float64
	for _, s := range series {
		if s.ColorValues != nil {
			out = append(out, s.ColorValues)
		}
	}
	return out
}

func glyph(symbol string) draw.GlyphDrawer {
	switch symbol {
	case "square":
		return draw.SquareGlyph{}
	case "diamond":
		return draw.BoxGlyph{}
	case "x":
		return draw.CrossGlyph{}
	case "cross":
		return draw.PlusGlyph{}
	case "triangle-up":
		return draw.TriangleGlyph{}
	case "circle-open":
		return draw.RingGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

func dashes(dash string) []vg.Length {
	pattern := map[string][]float64{
		"dot":         {1, 3},
		"dash":        {5, 3},
		"longdash":    {10, 4},
		"dashdot":     {6, 3, 1, 3},
		"longdashdot": {10, 3, 1, 3},
	}[dash]
	out := make([]vg.Length, len(pattern))
	for i, v := range pattern {
		out[i] = vg.Points(v)
	}
	return out
}

func parseColor(value, fallback string) color.Color {
	if value != "" {
		if c, err := colors.Parse(value); err == nil {
			return c
		}
	}
	c, err := colors.Parse(fallback)
	if err != nil {
		return color.Black
	}
	return c
}

func withAlpha(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}

func axisTitle(fig figure.Figure, ref string) string {
	axis, ok := fig.Layout.Axes[figure.LayoutKey(ref)]
	if !ok || axis == nil || axis.Title == nil {
		return ""
	}
	return axis.Title.Text
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

type gridCell struct {
	subplot  figure.Subplot
	row, col int
}

type tileGrid struct {
	rows, cols int
	cells      []gridCell
}

// layoutGrid places each subplot on a row/column grid derived from its axis
// domains: distinct x-domain starts are columns, distinct y-domain starts
// (top first) are rows.
func layoutGrid(fig figure.Figure, series []render.Series) tileGrid {
	var subplots []figure.Subplot
	seen := map[figure.Subplot]struct{}{}
	for _, s := range series {
		if _, ok := seen[s.Subplot]; ok {
			continue
		}
		seen[s.Subplot] = struct{}{}
		subplots = append(subplots, s.Subplot)
	}
	if len(subplots) == 0 {
		return tileGrid{rows: 1, cols: 1}
	}

	domainStart := func(ref string) float64 {
		axis, ok := fig.Layout.Axes[figure.LayoutKey(ref)]
		if !ok || axis == nil || len(axis.Domain) == 0 {
			return 0
		}
		return axis.Domain[0]
	}

	xs := distinct(subplots, func(s figure.Subplot) float64 { return domainStart(s.XAxis) })
	ys := distinct(subplots, func(s figure.Subplot) float64 { return domainStart(s.YAxis) })
	sort.Float64s(xs)
	sort.Sort(sort.Reverse(sort.Float64Slice(ys)))

	grid := tileGrid{rows: len(ys), cols: len(xs)}
	for _, s := range subplots {
		grid.cells = append(grid.cells, gridCell{
			subplot: s,
			row:     indexOf(ys, domainStart(s.YAxis)),
			col:     indexOf(xs, domainStart(s.XAxis)),
		})
	}
	return grid
}

func distinct(subplots []figure.Subplot, key func(figure.Subplot) float64) []float64 {
	seen := map[float64]struct{}{}
	var out []float64
	for _, s := range subplots {
		k := key(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func indexOf(values []float64, target float64) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return 0
}
