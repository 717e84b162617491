package figure

// Figure is the complete chart specification handed to a renderer: the traces,
// the layout and, for animated charts, the per-frame trace sets.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames,omitempty"`
}

// Frame is one step of an animation.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

// Trace is a single renderable data series. Core attributes are typed; keys
// supplied through trace patches land in Attrs and are merged into the JSON
// object, overriding typed fields with the same key.
type Trace struct {
	Type           string      `json:"type"`
	Name           string      `json:"name,omitempty"`
	LegendGroup    string      `json:"legendgroup,omitempty"`
	ShowLegend     *bool       `json:"showlegend,omitempty"`
	Mode           string      `json:"mode,omitempty"`
	Orientation    string      `json:"orientation,omitempty"`
	X              []any       `json:"x,omitempty"`
	Y              []any       `json:"y,omitempty"`
	Z              []any       `json:"z,omitempty"`
	R              []any       `json:"r,omitempty"`
	Theta          []any       `json:"theta,omitempty"`
	A              []any       `json:"a,omitempty"`
	B              []any       `json:"b,omitempty"`
	C              []any       `json:"c,omitempty"`
	Lat            []any       `json:"lat,omitempty"`
	Lon            []any       `json:"lon,omitempty"`
	Locations      []any       `json:"locations,omitempty"`
	Text           []any       `json:"text,omitempty"`
	HoverText      []any       `json:"hovertext,omitempty"`
	HoverTemplate  string      `json:"hovertemplate,omitempty"`
	CustomData     [][]any     `json:"customdata,omitempty"`
	IDs            []string    `json:"ids,omitempty"`
	Marker         *Marker     `json:"marker,omitempty"`
	Line           *Line       `json:"line,omitempty"`
	ErrorX         *ErrorBar   `json:"error_x,omitempty"`
	ErrorY         *ErrorBar   `json:"error_y,omitempty"`
	ErrorZ         *ErrorBar   `json:"error_z,omitempty"`
	XAxis          string      `json:"xaxis,omitempty"`
	YAxis          string      `json:"yaxis,omitempty"`
	Dimensions     []Dimension `json:"dimensions,omitempty"`
	AlignmentGroup string      `json:"alignmentgroup,omitempty"`
	OffsetGroup    string      `json:"offsetgroup,omitempty"`

	Attrs map[string]any `json:"-"`
}

// Marker styles point-like glyphs and bar fills.
type Marker struct {
	Color     any      `json:"color,omitempty"`
	Symbol    string   `json:"symbol,omitempty"`
	Size      any      `json:"size,omitempty"`
	SizeMode  string   `json:"sizemode,omitempty"`
	SizeRef   float64  `json:"sizeref,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
	ColorAxis string   `json:"coloraxis,omitempty"`
}

// Line styles connecting lines and outlines.
type Line struct {
	Color     any      `json:"color,omitempty"`
	Dash      string   `json:"dash,omitempty"`
	Width     *float64 `json:"width,omitempty"`
	Shape     string   `json:"shape,omitempty"`
	ColorAxis string   `json:"coloraxis,omitempty"`
}

// ErrorBar carries per-point error magnitudes.
type ErrorBar struct {
	Array      []any `json:"array,omitempty"`
	ArrayMinus []any `json:"arrayminus,omitempty"`
	Symmetric  *bool `json:"symmetric,omitempty"`
}

// Dimension is one axis of a scatter matrix or parallel plot.
type Dimension struct {
	Label  string `json:"label"`
	Values []any  `json:"values"`
}

// Subplot identifies a cartesian (xaxis, yaxis) pair.
type Subplot struct {
	XAxis string
	YAxis string
}

// Subplots lists the distinct cartesian axis pairs referenced by the traces in
// order of first use.
func (f Figure) Subplots() []Subplot {
	seen := make(map[Subplot]struct{})
	var out []Subplot
	for _, trace := range f.Data {
		if trace.XAxis == "" && trace.YAxis == "" {
			continue
		}
		key := Subplot{XAxis: orDefault(trace.XAxis, "x"), YAxis: orDefault(trace.YAxis, "y")}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// LayoutKey converts a trace axis reference ("x2") into its layout key
// ("xaxis2").
func LayoutKey(ref string) string {
	if ref == "" {
		return ""
	}
	return ref[:1] + "axis" + ref[1:]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }
