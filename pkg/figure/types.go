package figure

import "github.com/goliatone/go-chartgen/internal/figure"

type (
	Figure      = figure.Figure
	Frame       = figure.Frame
	Trace       = figure.Trace
	Marker      = figure.Marker
	Line        = figure.Line
	ErrorBar    = figure.ErrorBar
	Dimension   = figure.Dimension
	Subplot     = figure.Subplot
	Layout      = figure.Layout
	Title       = figure.Title
	Legend      = figure.Legend
	Axis        = figure.Axis
	Annotation  = figure.Annotation
	ColorAxis   = figure.ColorAxis
	ColorBar    = figure.ColorBar
	Font        = figure.Font
	Margin      = figure.Margin
	Args        = figure.Args
	LatLon      = figure.LatLon
	Channel     = figure.Channel
	Constructor = figure.Constructor
	Template    = figure.Template
)

const (
	ChannelColor          = figure.ChannelColor
	ChannelSymbol         = figure.ChannelSymbol
	ChannelLineDash       = figure.ChannelLineDash
	ChannelFacetRow       = figure.ChannelFacetRow
	ChannelFacetCol       = figure.ChannelFacetCol
	ChannelAnimationFrame = figure.ChannelAnimationFrame
)

const (
	Scatter            = figure.Scatter
	Bar                = figure.Bar
	Histogram          = figure.Histogram
	Violin             = figure.Violin
	Box                = figure.Box
	Histogram2D        = figure.Histogram2D
	Histogram2DContour = figure.Histogram2DContour
	ScatterPolar       = figure.ScatterPolar
	BarPolar           = figure.BarPolar
	Scatter3D          = figure.Scatter3D
	ScatterTernary     = figure.ScatterTernary
	Splom              = figure.Splom
	Parcoords          = figure.Parcoords
	Parcats            = figure.Parcats
	ScatterGeo         = figure.ScatterGeo
	Choropleth         = figure.Choropleth
	ScatterMapbox      = figure.ScatterMapbox
)

const (
	MarginalHistogram = figure.MarginalHistogram
	MarginalBox       = figure.MarginalBox
	MarginalViolin    = figure.MarginalViolin
	MarginalRug       = figure.MarginalRug
)

// LayoutKey converts a trace axis reference ("x2") into its layout key.
func LayoutKey(ref string) string { return figure.LayoutKey(ref) }

// MergePatch deep-merges patch into dst, expanding dotted keys.
func MergePatch(dst, patch map[string]any) { figure.MergePatch(dst, patch) }

// RegisterTemplate adds or replaces a named presentation template.
func RegisterTemplate(tmpl Template) { figure.RegisterTemplate(tmpl) }

// LookupTemplate returns a registered template.
func LookupTemplate(name string) (Template, bool) { return figure.LookupTemplate(name) }

// TemplateNames lists the registered templates.
func TemplateNames() []string { return figure.TemplateNames() }
