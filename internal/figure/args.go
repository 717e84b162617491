package figure

import "github.com/goliatone/go-chartgen/pkg/colors"

// Package defaults applied when neither the arguments nor the template
// provide a value.
var (
	DefaultSymbolSequence   = []string{"circle", "diamond", "square", "x", "cross"}
	DefaultLineDashSequence = []string{"solid", "dot", "dash", "longdash", "dashdot", "longdashdot"}
)

const (
	DefaultSizeMax                  = 20.0
	DefaultFacetColSpacing          = 0.02
	DefaultFacetRowSpacing          = 0.03
	DefaultFacetRowSpacingWrapped   = 0.07
	DefaultDimensionsMaxCardinality = 50
	DefaultStartAngle               = 90.0
	DefaultDirection                = "clockwise"
	DefaultMapboxZoom               = 8.0
	DefaultMapboxStyle              = "open-street-map"
)

// Marginal plot kinds.
const (
	MarginalHistogram = "histogram"
	MarginalBox       = "box"
	MarginalViolin    = "violin"
	MarginalRug       = "rug"
)

// Args carries every column mapping and presentation option accepted by the
// chart entry points. Column-valued fields hold column names; empty means
// unset.
type Args struct {
	X, Y, Z  string
	R, Theta string
	A, B, C  string

	Lat, Lon     string
	Locations    string
	LocationMode string
	GeoJSON      any
	FeatureIDKey string

	Color          string
	Symbol         string
	Size           string
	LineDash       string
	LineGroup      string
	Text           string
	HoverName      string
	HoverData      []string
	CustomData     []string
	AnimationFrame string
	AnimationGroup string

	FacetRow        string
	FacetCol        string
	FacetColWrap    int
	FacetRowSpacing float64
	FacetColSpacing float64

	ErrorX, ErrorXMinus string
	ErrorY, ErrorYMinus string
	ErrorZ, ErrorZMinus string

	Dimensions               []string
	DimensionsMaxCardinality int

	CategoryOrders map[string][]string
	Labels         map[string]string

	ColorDiscreteSequence   []string
	ColorDiscreteMap        map[string]string
	ColorContinuousScale    []string
	RangeColor              []float64
	ColorContinuousMidpoint *float64
	SymbolSequence          []string
	SymbolMap               map[string]string
	LineDashSequence        []string
	LineDashMap             map[string]string

	Opacity   *float64
	SizeMax   float64
	LineShape string

	MarginalX string
	MarginalY string

	LogX, LogY, LogZ, LogR bool
	RangeX, RangeY, RangeZ []float64
	RangeR, RangeTheta     []float64

	Orientation string
	BarMode     string
	BoxMode     string
	ViolinMode  string
	StripMode   string

	HistFunc   string
	HistNorm   string
	BarNorm    string
	Cumulative bool
	NBins      int
	NBinsX     int
	NBinsY     int

	Points  string
	Notched bool
	Box     bool

	Direction  string
	StartAngle *float64
	LineClose  bool

	Projection  string
	Scope       string
	FitBounds   string
	Center      *LatLon
	Zoom        float64
	MapboxStyle string

	Title    string
	Template string
	Width    int
	Height   int
}

// LatLon is a geographic coordinate.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Channel names a visual channel that can split rows into traces.
type Channel string

const (
	ChannelColor          Channel = "color"
	ChannelSymbol         Channel = "symbol"
	ChannelLineDash       Channel = "line_dash"
	ChannelFacetRow       Channel = "facet_row"
	ChannelFacetCol       Channel = "facet_col"
	ChannelAnimationFrame Channel = "animation_frame"
)

// Column returns the column mapped to the channel, or "".
func (a Args) Column(ch Channel) string {
	switch ch {
	case ChannelColor:
		return a.Color
	case ChannelSymbol:
		return a.Symbol
	case ChannelLineDash:
		return a.LineDash
	case ChannelFacetRow:
		return a.FacetRow
	case ChannelFacetCol:
		return a.FacetCol
	case ChannelAnimationFrame:
		return a.AnimationFrame
	}
	return ""
}

// Label returns the display label for a column.
func (a Args) Label(column string) string {
	if label, ok := a.Labels[column]; ok && label != "" {
		return label
	}
	return column
}

type columnRef struct {
	arg    string
	column string
}

// columnRefs lists every column-valued argument that is set.
func (a Args) columnRefs() []columnRef {
	var refs []columnRef
	add := func(arg, column string) {
		if column != "" {
			refs = append(refs, columnRef{arg: arg, column: column})
		}
	}
	add("x", a.X)
	add("y", a.Y)
	add("z", a.Z)
	add("r", a.R)
	add("theta", a.Theta)
	add("a", a.A)
	add("b", a.B)
	add("c", a.C)
	add("lat", a.Lat)
	add("lon", a.Lon)
	add("locations", a.Locations)
	add("color", a.Color)
	add("symbol", a.Symbol)
	add("size", a.Size)
	add("line_dash", a.LineDash)
	add("line_group", a.LineGroup)
	add("text", a.Text)
	add("hover_name", a.HoverName)
	add("animation_frame", a.AnimationFrame)
	add("animation_group", a.AnimationGroup)
	add("facet_row", a.FacetRow)
	add("facet_col", a.FacetCol)
	add("error_x", a.ErrorX)
	add("error_x_minus", a.ErrorXMinus)
	add("error_y", a.ErrorY)
	add("error_y_minus", a.ErrorYMinus)
	add("error_z", a.ErrorZ)
	add("error_z_minus", a.ErrorZMinus)
	for _, col := range a.HoverData {
		add("hover_data", col)
	}
	for _, col := range a.CustomData {
		add("custom_data", col)
	}
	for _, col := range a.Dimensions {
		add("dimensions", col)
	}
	return refs
}

// withDefaults fills unset options from the template and package defaults.
func (a Args) withDefaults(tmpl Template) Args {
	if len(a.ColorDiscreteSequence) == 0 {
		a.ColorDiscreteSequence = tmpl.Colorway
	}
	if len(a.ColorDiscreteSequence) == 0 {
		a.ColorDiscreteSequence = colors.Plotly
	}
	if len(a.ColorContinuousScale) == 0 {
		a.ColorContinuousScale = tmpl.ContinuousScale
	}
	if len(a.ColorContinuousScale) == 0 {
		a.ColorContinuousScale = colors.Plasma
	}
	if len(a.SymbolSequence) == 0 {
		a.SymbolSequence = DefaultSymbolSequence
	}
	if len(a.LineDashSequence) == 0 {
		a.LineDashSequence = DefaultLineDashSequence
	}
	if a.SizeMax <= 0 {
		a.SizeMax = DefaultSizeMax
	}
	if a.FacetRow != "" {
		a.FacetColWrap = 0
	}
	if a.FacetColSpacing <= 0 {
		a.FacetColSpacing = DefaultFacetColSpacing
	}
	if a.FacetRowSpacing <= 0 {
		a.FacetRowSpacing = DefaultFacetRowSpacing
		if a.FacetColWrap > 0 {
			a.FacetRowSpacing = DefaultFacetRowSpacingWrapped
		}
	}
	if a.DimensionsMaxCardinality <= 0 {
		a.DimensionsMaxCardinality = DefaultDimensionsMaxCardinality
	}
	if a.Direction == "" {
		a.Direction = DefaultDirection
	}
	if a.StartAngle == nil {
		a.StartAngle = floatPtr(DefaultStartAngle)
	}
	if a.Zoom <= 0 {
		a.Zoom = DefaultMapboxZoom
	}
	if a.MapboxStyle == "" {
		a.MapboxStyle = DefaultMapboxStyle
	}
	return a
}
