package figure

import "github.com/goliatone/go-chartgen/pkg/colors"

// Layout holds the figure-level configuration. Axes are keyed by their layout
// name ("xaxis", "yaxis2") and flattened into the JSON object. Attrs carries
// layout patch keys (polar, scene, geo, mapbox...) and wins over typed fields.
type Layout struct {
	Title        *Title           `json:"title,omitempty"`
	Width        int              `json:"width,omitempty"`
	Height       int              `json:"height,omitempty"`
	Legend       *Legend          `json:"legend,omitempty"`
	BarMode      string           `json:"barmode,omitempty"`
	BoxMode      string           `json:"boxmode,omitempty"`
	ViolinMode   string           `json:"violinmode,omitempty"`
	DragMode     string           `json:"dragmode,omitempty"`
	Annotations  []Annotation     `json:"annotations,omitempty"`
	ColorAxis    *ColorAxis       `json:"coloraxis,omitempty"`
	Sliders      []map[string]any `json:"sliders,omitempty"`
	UpdateMenus  []map[string]any `json:"updatemenus,omitempty"`
	Colorway     []string         `json:"colorway,omitempty"`
	Font         *Font            `json:"font,omitempty"`
	PaperBGColor string           `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string           `json:"plot_bgcolor,omitempty"`
	Margin       *Margin          `json:"margin,omitempty"`

	// Template names the theme requested by the caller. It is resolved by
	// decorators and not serialised.
	Template string `json:"-"`

	Axes  map[string]*Axis `json:"-"`
	Attrs map[string]any   `json:"-"`
}

// Title is a text title with optional placement.
type Title struct {
	Text string   `json:"text"`
	X    *float64 `json:"x,omitempty"`
}

// Legend configures the legend box.
type Legend struct {
	Title         *Title   `json:"title,omitempty"`
	TraceGroupGap *float64 `json:"tracegroupgap,omitempty"`
	ItemSizing    string   `json:"itemsizing,omitempty"`
}

// Axis is a cartesian axis.
type Axis struct {
	Title          *Title    `json:"title,omitempty"`
	Type           string    `json:"type,omitempty"`
	Range          []float64 `json:"range,omitempty"`
	Domain         []float64 `json:"domain,omitempty"`
	Anchor         string    `json:"anchor,omitempty"`
	Matches        string    `json:"matches,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	ShowGrid       *bool     `json:"showgrid,omitempty"`
	CategoryOrder  string    `json:"categoryorder,omitempty"`
	CategoryArray  []string  `json:"categoryarray,omitempty"`
	GridColor      string    `json:"gridcolor,omitempty"`
}

// Annotation is a paper-anchored label, used for facet titles.
type Annotation struct {
	Text      string   `json:"text"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	XRef      string   `json:"xref"`
	YRef      string   `json:"yref"`
	XAnchor   string   `json:"xanchor,omitempty"`
	YAnchor   string   `json:"yanchor,omitempty"`
	ShowArrow bool     `json:"showarrow"`
	TextAngle *float64 `json:"textangle,omitempty"`
}

// ColorAxis is the shared continuous color scale referenced by traces.
type ColorAxis struct {
	ColorScale []colors.Stop `json:"colorscale"`
	CMin       *float64      `json:"cmin,omitempty"`
	CMax       *float64      `json:"cmax,omitempty"`
	CMid       *float64      `json:"cmid,omitempty"`
	ColorBar   *ColorBar     `json:"colorbar,omitempty"`
}

// ColorBar labels a color axis.
type ColorBar struct {
	Title *Title `json:"title,omitempty"`
}

// Font sets the global font.
type Font struct {
	Family string  `json:"family,omitempty"`
	Color  string  `json:"color,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

// Margin sets plot margins in pixels.
type Margin struct {
	T int `json:"t"`
	R int `json:"r"`
	B int `json:"b"`
	L int `json:"l"`
}

// Axis returns the named axis, creating it when missing.
func (l *Layout) Axis(key string) *Axis {
	if l.Axes == nil {
		l.Axes = make(map[string]*Axis)
	}
	axis, ok := l.Axes[key]
	if !ok {
		axis = &Axis{}
		l.Axes[key] = axis
	}
	return axis
}

// SetAttr stores a layout attribute, expanding dotted paths.
func (l *Layout) SetAttr(path string, value any) {
	if l.Attrs == nil {
		l.Attrs = make(map[string]any)
	}
	MergePatch(l.Attrs, map[string]any{path: value})
}
