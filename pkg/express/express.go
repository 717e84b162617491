package express

import (
	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/figure"
)

var (
	groupedMarkers = []figure.Channel{figure.ChannelColor, figure.ChannelSymbol, figure.ChannelFacetRow, figure.ChannelFacetCol, figure.ChannelAnimationFrame}
	groupedLines   = []figure.Channel{figure.ChannelColor, figure.ChannelLineDash, figure.ChannelFacetRow, figure.ChannelFacetCol, figure.ChannelAnimationFrame}
	groupedColor   = []figure.Channel{figure.ChannelColor, figure.ChannelFacetRow, figure.ChannelFacetCol, figure.ChannelAnimationFrame}
	groupedFacets  = []figure.Channel{figure.ChannelFacetRow, figure.ChannelFacetCol, figure.ChannelAnimationFrame}

	groupedMarkersNoFacet = []figure.Channel{figure.ChannelColor, figure.ChannelSymbol, figure.ChannelAnimationFrame}
	groupedLinesNoFacet   = []figure.Channel{figure.ChannelColor, figure.ChannelLineDash, figure.ChannelAnimationFrame}
	groupedColorNoFacet   = []figure.Channel{figure.ChannelColor, figure.ChannelAnimationFrame}
)

// Scatter draws one marker per row.
func Scatter(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.Scatter, mode("markers"), groupedMarkers, nil)
}

// Line connects rows with lines, one line per group.
func Line(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.Scatter, mode("lines"), groupedLines, nil)
}

// Area draws stacked filled lines.
func Area(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := mode("lines")
	patch["stackgroup"] = "1"
	return figure.MakeFigure(frame, args, figure.Scatter, patch, groupedColor, nil)
}

// Bar draws one bar per row, stacked per position.
func Bar(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := map[string]any{"textposition": "auto"}
	layout := map[string]any{"barmode": orDefault(args.BarMode, "relative")}
	if args.BarNorm != "" {
		layout["barnorm"] = args.BarNorm
	}
	return figure.MakeFigure(frame, args, figure.Bar, withOrientation(patch, args), groupedColor, layout)
}

// Histogram bins one positional column; the other, when given, is
// aggregated with HistFunc.
func Histogram(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := map[string]any{}
	if args.HistNorm != "" {
		patch["histnorm"] = args.HistNorm
	}
	if args.HistFunc != "" {
		patch["histfunc"] = args.HistFunc
	}
	if args.Cumulative {
		patch["cumulative"] = map[string]any{"enabled": true}
	}
	if args.NBins > 0 {
		patch["nbins"] = args.NBins
	}
	layout := map[string]any{"barmode": orDefault(args.BarMode, "relative")}
	if args.BarNorm != "" {
		layout["barnorm"] = args.BarNorm
	}
	return figure.MakeFigure(frame, args, figure.Histogram, withOrientation(patch, args), groupedColor, layout)
}

// Violin draws a kernel density outline per group.
func Violin(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := map[string]any{
		"box":       map[string]any{"visible": args.Box},
		"scalemode": "count",
	}
	if args.Points != "" {
		patch["points"] = pointsValue(args.Points)
	}
	layout := map[string]any{"violinmode": orDefault(args.ViolinMode, "group")}
	return figure.MakeFigure(frame, args, figure.Violin, withOrientation(patch, args), groupedColor, layout)
}

// Box draws quartile boxes per group.
func Box(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := map[string]any{"notched": args.Notched}
	if args.Points != "" {
		patch["boxpoints"] = pointsValue(args.Points)
	}
	layout := map[string]any{"boxmode": orDefault(args.BoxMode, "group")}
	return figure.MakeFigure(frame, args, figure.Box, withOrientation(patch, args), groupedColor, layout)
}

// Strip draws jittered points per group without boxes.
func Strip(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := map[string]any{
		"boxpoints": "all",
		"pointpos":  0,
		"jitter":    1,
		"fillcolor": "rgba(255,255,255,0)",
		"line":      map[string]any{"color": "rgba(255,255,255,0)", "width": 0},
		"hoveron":   "points",
	}
	layout := map[string]any{"boxmode": orDefault(args.StripMode, "group")}
	return figure.MakeFigure(frame, args, figure.Box, withOrientation(patch, args), groupedColor, layout)
}

// DensityHeatmap bins x and y into a 2D heatmap.
func DensityHeatmap(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.Histogram2D, histogram2DPatch(args), groupedFacets, nil)
}

// DensityContour draws 2D density contours, one set per color group.
func DensityContour(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := histogram2DPatch(args)
	patch["contours"] = map[string]any{"coloring": "none"}
	return figure.MakeFigure(frame, args, figure.Histogram2DContour, patch, groupedColor, nil)
}

// ScatterPolar draws markers in polar coordinates.
func ScatterPolar(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.ScatterPolar, mode("markers"), groupedMarkersNoFacet, polarLayout(args))
}

// LinePolar connects rows in polar coordinates.
func LinePolar(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.ScatterPolar, mode("lines"), groupedLinesNoFacet, polarLayout(args))
}

// BarPolar draws wind-rose style bars.
func BarPolar(frame *dataset.Frame, args Args) (figure.Figure, error) {
	layout := polarLayout(args)
	layout["barmode"] = orDefault(args.BarMode, "relative")
	return figure.MakeFigure(frame, args, figure.BarPolar, nil, groupedColorNoFacet, layout)
}

// Scatter3D draws markers in a 3D scene.
func Scatter3D(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.Scatter3D, mode("markers"), groupedMarkersNoFacet, nil)
}

// Line3D connects rows in a 3D scene.
func Line3D(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.Scatter3D, mode("lines"), groupedLinesNoFacet, nil)
}

// ScatterTernary draws markers on a ternary plot.
func ScatterTernary(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.ScatterTernary, mode("markers"), groupedMarkersNoFacet, nil)
}

// LineTernary connects rows on a ternary plot.
func LineTernary(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.ScatterTernary, mode("lines"), groupedLinesNoFacet, nil)
}

// ScatterMatrix draws a scatter plot for every pair of dimensions.
func ScatterMatrix(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := map[string]any{"diagonal": map[string]any{"visible": false}}
	layout := map[string]any{"dragmode": "select"}
	grouped := []figure.Channel{figure.ChannelColor, figure.ChannelSymbol}
	return figure.MakeFigure(frame, args, figure.Splom, patch, grouped, layout)
}

// ParallelCoordinates draws one polyline per row across numeric dimensions.
func ParallelCoordinates(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.Parcoords, nil, nil, nil)
}

// ParallelCategories draws ribbons across categorical dimensions.
func ParallelCategories(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.Parcats, nil, nil, nil)
}

// ScatterGeo draws markers on a geographic map.
func ScatterGeo(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.ScatterGeo, mode("markers"), groupedMarkersNoFacet, geoLayout(args))
}

// LineGeo connects rows on a geographic map.
func LineGeo(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.ScatterGeo, mode("lines"), groupedLinesNoFacet, geoLayout(args))
}

// Choropleth fills regions by a numeric color column.
func Choropleth(frame *dataset.Frame, args Args) (figure.Figure, error) {
	patch := map[string]any{}
	if args.LocationMode != "" {
		patch["locationmode"] = args.LocationMode
	}
	if args.GeoJSON != nil {
		patch["geojson"] = args.GeoJSON
	}
	if args.FeatureIDKey != "" {
		patch["featureidkey"] = args.FeatureIDKey
	}
	grouped := []figure.Channel{figure.ChannelAnimationFrame}
	return figure.MakeFigure(frame, args, figure.Choropleth, patch, grouped, geoLayout(args))
}

// ScatterMapbox draws markers on a tile map.
func ScatterMapbox(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.ScatterMapbox, mode("markers"), groupedColorNoFacet, mapboxLayout(args))
}

// LineMapbox connects rows on a tile map.
func LineMapbox(frame *dataset.Frame, args Args) (figure.Figure, error) {
	return figure.MakeFigure(frame, args, figure.ScatterMapbox, mode("lines"), groupedColorNoFacet, mapboxLayout(args))
}

func mode(value string) map[string]any {
	return map[string]any{"mode": value}
}

func withOrientation(patch map[string]any, args Args) map[string]any {
	if args.Orientation != "" {
		patch["orientation"] = args.Orientation
	}
	return patch
}

func histogram2DPatch(args Args) map[string]any {
	patch := map[string]any{}
	if args.HistFunc != "" {
		patch["histfunc"] = args.HistFunc
	}
	if args.HistNorm != "" {
		patch["histnorm"] = args.HistNorm
	}
	if args.NBinsX > 0 {
		patch["nbinsx"] = args.NBinsX
	}
	if args.NBinsY > 0 {
		patch["nbinsy"] = args.NBinsY
	}
	return patch
}

func polarLayout(args Args) map[string]any {
	layout := map[string]any{}
	if args.Direction != "" {
		layout["polar.angularaxis.direction"] = args.Direction
	}
	if args.StartAngle != nil {
		layout["polar.angularaxis.rotation"] = *args.StartAngle
	}
	return layout
}

func geoLayout(args Args) map[string]any {
	layout := map[string]any{}
	if args.Projection != "" {
		layout["geo.projection.type"] = args.Projection
	}
	if args.Scope != "" {
		layout["geo.scope"] = args.Scope
	}
	return layout
}

func mapboxLayout(args Args) map[string]any {
	layout := map[string]any{}
	if args.Zoom > 0 {
		layout["mapbox.zoom"] = args.Zoom
	}
	if args.MapboxStyle != "" {
		layout["mapbox.style"] = args.MapboxStyle
	}
	return layout
}

// pointsValue maps the "false" spelling to the boolean the renderer expects.
func pointsValue(points string) any {
	if points == "false" {
		return false
	}
	return points
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
