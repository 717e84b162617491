package chartdoc

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-chartgen/pkg/colors"
	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/express"
)

// fsPrefix marks sources resolved relative to the document inside the
// loaded fs.FS.
const fsPrefix = "fs:"

// Document is the decoded form of one chart document file.
type Document struct {
	Defaults Defaults `json:"defaults"`
	Charts   []Chart  `json:"charts"`
}

// Defaults apply to every chart of a document that leaves the field empty.
type Defaults struct {
	Source   string `json:"source,omitempty"`
	Renderer string `json:"renderer,omitempty"`
	Theme    string `json:"theme,omitempty"`
	Variant  string `json:"variant,omitempty"`
	Template string `json:"template,omitempty"`
}

// Chart describes one named chart.
type Chart struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	// Description is markdown shown below the chart by page renderers.
	Description string    `json:"description,omitempty"`
	Kind        string    `json:"kind"`
	Source      string    `json:"source,omitempty"`
	Filter      string    `json:"filter,omitempty"`
	Renderer    string    `json:"renderer,omitempty"`
	Theme       string    `json:"theme,omitempty"`
	Variant     string    `json:"variant,omitempty"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	Spec        ChartArgs `json:"args"`

	// Document is the path of the file that declared the chart.
	Document string `json:"-"`
}

// ChartKind returns the normalised chart kind.
func (c Chart) ChartKind() (express.Kind, error) {
	return express.ParseKind(c.Kind)
}

// DataSource resolves the chart source. "fs:" references are resolved
// relative to the declaring document; other references follow
// dataset.ParseSource.
func (c Chart) DataSource() (dataset.Source, error) {
	ref := strings.TrimSpace(c.Source)
	if rest, ok := strings.CutPrefix(ref, fsPrefix); ok {
		name := strings.TrimPrefix(rest, "/")
		if !strings.HasPrefix(rest, "/") && c.Document != "" {
			name = path.Join(path.Dir(c.Document), rest)
		}
		return dataset.SourceFromFS(name), nil
	}
	src, err := dataset.ParseSource(ref)
	if err != nil {
		return nil, fmt.Errorf("chartdoc: chart %q: %w", c.ID, err)
	}
	return src, nil
}

// Args converts the declared mappings into entry point arguments. Named
// palettes are resolved against the colors package.
func (c Chart) Args() (express.Args, error) {
	spec := c.Spec
	args := express.Args{
		X: spec.X, Y: spec.Y, Z: spec.Z,
		R: spec.R, Theta: spec.Theta,
		A: spec.A, B: spec.B, C: spec.C,

		Lat: spec.Lat, Lon: spec.Lon,
		Locations:    spec.Locations,
		LocationMode: spec.LocationMode,
		GeoJSON:      spec.GeoJSON,
		FeatureIDKey: spec.FeatureIDKey,

		Color:          spec.Color,
		Symbol:         spec.Symbol,
		Size:           spec.Size,
		LineDash:       spec.LineDash,
		LineGroup:      spec.LineGroup,
		Text:           spec.Text,
		HoverName:      spec.HoverName,
		HoverData:      spec.HoverData,
		CustomData:     spec.CustomData,
		AnimationFrame: spec.AnimationFrame,
		AnimationGroup: spec.AnimationGroup,

		FacetRow:        spec.FacetRow,
		FacetCol:        spec.FacetCol,
		FacetColWrap:    spec.FacetColWrap,
		FacetRowSpacing: spec.FacetRowSpacing,
		FacetColSpacing: spec.FacetColSpacing,

		ErrorX: spec.ErrorX, ErrorXMinus: spec.ErrorXMinus,
		ErrorY: spec.ErrorY, ErrorYMinus: spec.ErrorYMinus,
		ErrorZ: spec.ErrorZ, ErrorZMinus: spec.ErrorZMinus,

		Dimensions:               spec.Dimensions,
		DimensionsMaxCardinality: spec.DimensionsMaxCardinality,

		CategoryOrders: spec.CategoryOrders,
		Labels:         spec.Labels,

		ColorDiscreteMap:        spec.ColorDiscreteMap,
		RangeColor:              spec.RangeColor,
		ColorContinuousMidpoint: spec.ColorContinuousMidpoint,
		SymbolSequence:          spec.SymbolSequence,
		SymbolMap:               spec.SymbolMap,
		LineDashSequence:        spec.LineDashSequence,
		LineDashMap:             spec.LineDashMap,

		Opacity:   spec.Opacity,
		SizeMax:   spec.SizeMax,
		LineShape: spec.LineShape,

		MarginalX: spec.MarginalX,
		MarginalY: spec.MarginalY,

		LogX: spec.LogX, LogY: spec.LogY, LogZ: spec.LogZ, LogR: spec.LogR,
		RangeX: spec.RangeX, RangeY: spec.RangeY, RangeZ: spec.RangeZ,
		RangeR: spec.RangeR, RangeTheta: spec.RangeTheta,

		Orientation: spec.Orientation,
		BarMode:     spec.BarMode,
		BoxMode:     spec.BoxMode,
		ViolinMode:  spec.ViolinMode,
		StripMode:   spec.StripMode,

		HistFunc:   spec.HistFunc,
		HistNorm:   spec.HistNorm,
		BarNorm:    spec.BarNorm,
		Cumulative: spec.Cumulative,
		NBins:      spec.NBins,
		NBinsX:     spec.NBinsX,
		NBinsY:     spec.NBinsY,

		Points:  spec.Points,
		Notched: spec.Notched,
		Box:     spec.Box,

		Direction:  spec.Direction,
		StartAngle: spec.StartAngle,
		LineClose:  spec.LineClose,

		Projection:  spec.Projection,
		Scope:       spec.Scope,
		FitBounds:   spec.FitBounds,
		Zoom:        spec.Zoom,
		MapboxStyle: spec.MapboxStyle,

		Title:    c.Title,
		Template: spec.Template,
		Width:    c.Width,
		Height:   c.Height,
	}
	if spec.Center != nil {
		args.Center = &express.LatLon{Lat: spec.Center.Lat, Lon: spec.Center.Lon}
	}

	sequence, err := spec.ColorDiscreteSequence.resolve(colors.Sequence)
	if err != nil {
		return express.Args{}, fmt.Errorf("chartdoc: chart %q: color_discrete_sequence: %w", c.ID, err)
	}
	args.ColorDiscreteSequence = sequence

	scale, err := spec.ColorContinuousScale.resolve(colors.Continuous)
	if err != nil {
		return express.Args{}, fmt.Errorf("chartdoc: chart %q: color_continuous_scale: %w", c.ID, err)
	}
	args.ColorContinuousScale = scale
	return args, nil
}

// ChartArgs mirrors express.Args with document field names.
type ChartArgs struct {
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
	Z     string `json:"z,omitempty"`
	R     string `json:"r,omitempty"`
	Theta string `json:"theta,omitempty"`
	A     string `json:"a,omitempty"`
	B     string `json:"b,omitempty"`
	C     string `json:"c,omitempty"`

	Lat          string `json:"lat,omitempty"`
	Lon          string `json:"lon,omitempty"`
	Locations    string `json:"locations,omitempty"`
	LocationMode string `json:"locationmode,omitempty"`
	GeoJSON      any    `json:"geojson,omitempty"`
	FeatureIDKey string `json:"featureidkey,omitempty"`

	Color          string   `json:"color,omitempty"`
	Symbol         string   `json:"symbol,omitempty"`
	Size           string   `json:"size,omitempty"`
	LineDash       string   `json:"line_dash,omitempty"`
	LineGroup      string   `json:"line_group,omitempty"`
	Text           string   `json:"text,omitempty"`
	HoverName      string   `json:"hover_name,omitempty"`
	HoverData      []string `json:"hover_data,omitempty"`
	CustomData     []string `json:"custom_data,omitempty"`
	AnimationFrame string   `json:"animation_frame,omitempty"`
	AnimationGroup string   `json:"animation_group,omitempty"`

	FacetRow        string  `json:"facet_row,omitempty"`
	FacetCol        string  `json:"facet_col,omitempty"`
	FacetColWrap    int     `json:"facet_col_wrap,omitempty"`
	FacetRowSpacing float64 `json:"facet_row_spacing,omitempty"`
	FacetColSpacing float64 `json:"facet_col_spacing,omitempty"`

	ErrorX      string `json:"error_x,omitempty"`
	ErrorXMinus string `json:"error_x_minus,omitempty"`
	ErrorY      string `json:"error_y,omitempty"`
	ErrorYMinus string `json:"error_y_minus,omitempty"`
	ErrorZ      string `json:"error_z,omitempty"`
	ErrorZMinus string `json:"error_z_minus,omitempty"`

	Dimensions               []string `json:"dimensions,omitempty"`
	DimensionsMaxCardinality int      `json:"dimensions_max_cardinality,omitempty"`

	CategoryOrders map[string][]string `json:"category_orders,omitempty"`
	Labels         map[string]string   `json:"labels,omitempty"`

	ColorDiscreteSequence   Palette           `json:"color_discrete_sequence,omitempty"`
	ColorDiscreteMap        map[string]string `json:"color_discrete_map,omitempty"`
	ColorContinuousScale    Palette           `json:"color_continuous_scale,omitempty"`
	RangeColor              []float64         `json:"range_color,omitempty"`
	ColorContinuousMidpoint *float64          `json:"color_continuous_midpoint,omitempty"`
	SymbolSequence          []string          `json:"symbol_sequence,omitempty"`
	SymbolMap               map[string]string `json:"symbol_map,omitempty"`
	LineDashSequence        []string          `json:"line_dash_sequence,omitempty"`
	LineDashMap             map[string]string `json:"line_dash_map,omitempty"`

	Opacity   *float64 `json:"opacity,omitempty"`
	SizeMax   float64  `json:"size_max,omitempty"`
	LineShape string   `json:"line_shape,omitempty"`

	MarginalX string `json:"marginal_x,omitempty"`
	MarginalY string `json:"marginal_y,omitempty"`

	LogX       bool      `json:"log_x,omitempty"`
	LogY       bool      `json:"log_y,omitempty"`
	LogZ       bool      `json:"log_z,omitempty"`
	LogR       bool      `json:"log_r,omitempty"`
	RangeX     []float64 `json:"range_x,omitempty"`
	RangeY     []float64 `json:"range_y,omitempty"`
	RangeZ     []float64 `json:"range_z,omitempty"`
	RangeR     []float64 `json:"range_r,omitempty"`
	RangeTheta []float64 `json:"range_theta,omitempty"`

	Orientation string `json:"orientation,omitempty"`
	BarMode     string `json:"barmode,omitempty"`
	BoxMode     string `json:"boxmode,omitempty"`
	ViolinMode  string `json:"violinmode,omitempty"`
	StripMode   string `json:"stripmode,omitempty"`

	HistFunc   string `json:"histfunc,omitempty"`
	HistNorm   string `json:"histnorm,omitempty"`
	BarNorm    string `json:"barnorm,omitempty"`
	Cumulative bool   `json:"cumulative,omitempty"`
	NBins      int    `json:"nbins,omitempty"`
	NBinsX     int    `json:"nbinsx,omitempty"`
	NBinsY     int    `json:"nbinsy,omitempty"`

	Points  string `json:"points,omitempty"`
	Notched bool   `json:"notched,omitempty"`
	Box     bool   `json:"box,omitempty"`

	Direction  string   `json:"direction,omitempty"`
	StartAngle *float64 `json:"start_angle,omitempty"`
	LineClose  bool     `json:"line_close,omitempty"`

	Projection  string  `json:"projection,omitempty"`
	Scope       string  `json:"scope,omitempty"`
	FitBounds   string  `json:"fitbounds,omitempty"`
	Center      *Center `json:"center,omitempty"`
	Zoom        float64 `json:"zoom,omitempty"`
	MapboxStyle string  `json:"mapbox_style,omitempty"`

	Template string `json:"template,omitempty"`
}

// Center is a map centre.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Palette is either a palette name ("Plotly", "Viridis_r") or an explicit
// list of colors.
type Palette struct {
	Name   string
	Colors []string
}

// UnmarshalJSON accepts a string or an array of strings.
func (p *Palette) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.Name = name
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("palette must be a name or a list of colors: %w", err)
	}
	p.Colors = values
	return nil
}

// MarshalJSON writes the palette back in its declared form.
func (p Palette) MarshalJSON() ([]byte, error) {
	if p.Name != "" {
		return json.Marshal(p.Name)
	}
	return json.Marshal(p.Colors)
}

// IsZero reports whether no palette was declared.
func (p Palette) IsZero() bool {
	return p.Name == "" && len(p.Colors) == 0
}

func (p Palette) resolve(lookup func(string) ([]string, bool)) ([]string, error) {
	if p.Name == "" {
		return p.Colors, nil
	}
	values, ok := lookup(p.Name)
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", p.Name)
	}
	return values, nil
}
