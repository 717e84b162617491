package figure

import (
	"strings"
)

var textModes = map[Constructor]bool{
	Scatter: true, ScatterPolar: true, Scatter3D: true, ScatterTernary: true,
	ScatterGeo: true, ScatterMapbox: true,
}

var offsetGrouped = map[Constructor]bool{
	Bar: true, Histogram: true, Box: true, Violin: true,
}

func (a *assembly) buildTraces(fig *Figure) error {
	var frameValues []string
	if a.args.AnimationFrame != "" {
		frameValues = a.orders[a.args.AnimationFrame]
	}
	byFrame := make(map[string][]Trace, len(frameValues))
	seen := make(map[string]map[string]bool)
	for _, g := range a.groups {
		frameKey := g.value(a.args.AnimationFrame)
		if seen[frameKey] == nil {
			seen[frameKey] = make(map[string]bool)
		}
		trace, err := a.trace(g)
		if err != nil {
			return err
		}
		a.name(&trace, g, seen[frameKey])
		byFrame[frameKey] = append(byFrame[frameKey], trace)
		byFrame[frameKey] = append(byFrame[frameKey], a.marginalTraces(trace, g)...)
	}

	if len(frameValues) == 0 {
		fig.Data = byFrame[""]
		if fig.Data == nil {
			fig.Data = []Trace{}
		}
		return nil
	}
	for _, value := range frameValues {
		fig.Frames = append(fig.Frames, Frame{Name: value, Data: byFrame[value]})
	}
	fig.Data = fig.Frames[0].Data
	return nil
}

func (a *assembly) trace(g group) (Trace, error) {
	args := a.args
	rows := g.rows
	t := Trace{
		Type:        string(a.constructor),
		Mode:        a.mode,
		Orientation: a.orientation,
	}
	if len(a.patch) > 0 {
		t.Attrs = ClonePatch(a.patch)
	}

	switch a.info.family {
	case familyCartesian:
		if args.X != "" {
			t.X = a.values(args.X, rows)
		}
		if args.Y != "" {
			t.Y = a.values(args.Y, rows)
		}
		if args.Z != "" {
			t.Z = a.values(args.Z, rows)
		}
		cell := a.grid.cell(g.value(args.FacetRow), g.value(args.FacetCol))
		t.XAxis, t.YAxis = cell.xref, cell.yref
	case familyPolar:
		t.R = a.values(args.R, rows)
		if args.Theta != "" {
			t.Theta = a.values(args.Theta, rows)
		}
		if args.LineClose && len(t.R) > 0 {
			t.R = append(t.R, t.R[0])
			if t.Theta != nil {
				t.Theta = append(t.Theta, t.Theta[0])
			}
		}
	case familyScene:
		t.X = a.values(args.X, rows)
		t.Y = a.values(args.Y, rows)
		t.Z = a.values(args.Z, rows)
	case familyTernary:
		t.A = a.values(args.A, rows)
		t.B = a.values(args.B, rows)
		t.C = a.values(args.C, rows)
	case familyGeo:
		if args.Locations != "" {
			t.Locations = a.labels(args.Locations, rows)
			if args.LocationMode != "" {
				t.defaultAttr("locationmode", args.LocationMode)
			}
		} else {
			t.Lat = a.values(args.Lat, rows)
			t.Lon = a.values(args.Lon, rows)
		}
		if args.GeoJSON != nil {
			t.defaultAttr("geojson", args.GeoJSON)
		}
		if args.FeatureIDKey != "" {
			t.defaultAttr("featureidkey", args.FeatureIDKey)
		}
	case familyMapbox:
		t.Lat = a.values(args.Lat, rows)
		t.Lon = a.values(args.Lon, rows)
	case familyDimensions:
		for _, name := range a.dimensions {
			values := a.values(name, rows)
			if a.constructor == Parcats {
				values = a.labels(name, rows)
			}
			t.Dimensions = append(t.Dimensions, Dimension{Label: args.Label(name), Values: values})
		}
	}

	a.applyColor(&t, g)
	if args.Symbol != "" {
		t.marker().Symbol = a.symbolMap[g.value(args.Symbol)]
	}
	if args.LineDash != "" {
		t.line().Dash = a.dashMap[g.value(args.LineDash)]
	}
	if args.LineShape != "" {
		t.line().Shape = args.LineShape
	}
	if args.Size != "" {
		m := t.marker()
		m.Size = a.values(args.Size, rows)
		m.SizeMode = "area"
		m.SizeRef = a.sizeRef
	}
	if args.Opacity != nil {
		if a.info.markers {
			t.marker().Opacity = floatPtr(*args.Opacity)
		} else {
			t.defaultAttr("opacity", *args.Opacity)
		}
	}
	if args.Text != "" {
		t.Text = a.values(args.Text, rows)
		if textModes[a.constructor] && t.Mode != "" && !strings.Contains(t.Mode, "text") {
			if t.Mode == "lines" {
				t.Mode = "lines+markers"
			}
			t.Mode += "+text"
		}
	}
	if args.HoverName != "" {
		t.HoverText = a.labels(args.HoverName, rows)
	}
	if custom := append(append([]string(nil), args.HoverData...), args.CustomData...); len(custom) > 0 {
		t.CustomData = make([][]any, len(rows))
		for i, r := range rows {
			row := make([]any, len(custom))
			for j, name := range custom {
				row[j] = a.column(name).Value(r)
			}
			t.CustomData[i] = row
		}
	}
	if args.AnimationGroup != "" {
		ids := a.labels(args.AnimationGroup, rows)
		t.IDs = make([]string, len(ids))
		for i, id := range ids {
			t.IDs[i] = id.(string)
		}
	}
	if a.info.errorBars {
		t.ErrorX = a.errorBar(args.ErrorX, args.ErrorXMinus, rows)
		t.ErrorY = a.errorBar(args.ErrorY, args.ErrorYMinus, rows)
		t.ErrorZ = a.errorBar(args.ErrorZ, args.ErrorZMinus, rows)
	}
	if offsetGrouped[a.constructor] && a.discreteColor() {
		t.AlignmentGroup = "True"
		t.OffsetGroup = g.value(args.Color)
	}
	a.applyHistogram(&t)
	t.HoverTemplate = a.hoverTemplate(g)
	return t, nil
}

// applyColor sets the discrete or continuous color of a trace.
func (a *assembly) applyColor(t *Trace, g group) {
	args := a.args
	switch {
	case a.continuous:
		values := a.values(args.Color, g.rows)
		switch a.constructor {
		case Parcoords, Parcats:
			t.line().Color = values
			t.line().ColorAxis = "coloraxis"
		case Choropleth:
			t.Z = values
			t.defaultAttr("coloraxis", "coloraxis")
		default:
			t.marker().Color = values
			t.marker().ColorAxis = "coloraxis"
		}
	case a.constructor == Histogram2D:
		t.defaultAttr("coloraxis", "coloraxis")
	case a.constructor == Choropleth:
		fill := a.args.ColorDiscreteSequence[0]
		t.Z = make([]any, len(g.rows))
		for i := range t.Z {
			t.Z[i] = 1
		}
		t.defaultAttr("colorscale", [][2]any{{0, fill}, {1, fill}})
		t.defaultAttr("showscale", false)
	case a.constructor == Parcoords || a.constructor == Parcats:
	default:
		color := a.args.ColorDiscreteSequence[0]
		if a.discreteColor() {
			color = a.colorMap[g.value(args.Color)]
		}
		if a.linesOnly() {
			t.line().Color = color
		} else {
			t.marker().Color = color
		}
	}
}

// applyHistogram fills the aggregation attributes of histogram traces.
func (a *assembly) applyHistogram(t *Trace) {
	switch a.constructor {
	case Histogram:
		if a.args.X != "" && a.args.Y != "" {
			t.defaultAttr("histfunc", "sum")
		}
		if nbins, ok := t.Attrs["nbins"]; ok {
			delete(t.Attrs, "nbins")
			if a.orientation == "h" {
				t.defaultAttr("nbinsy", nbins)
			} else {
				t.defaultAttr("nbinsx", nbins)
			}
		}
	case Histogram2D, Histogram2DContour:
		if a.args.Z != "" {
			t.defaultAttr("histfunc", "sum")
		}
	}
}

func (a *assembly) errorBar(plus, minus string, rows []int) *ErrorBar {
	if plus == "" {
		return nil
	}
	bar := &ErrorBar{Array: a.values(plus, rows)}
	if minus != "" {
		bar.ArrayMinus = a.values(minus, rows)
		bar.Symmetric = boolPtr(false)
	}
	return bar
}

// name sets name, legendgroup and showlegend from the legend-bearing group
// values. seen tracks legend groups already shown in the same frame.
func (a *assembly) name(t *Trace, g group, seen map[string]bool) {
	if len(a.legendColumns) == 0 {
		t.ShowLegend = boolPtr(false)
		return
	}
	names := make([]string, len(a.legendColumns))
	pairs := make([]string, len(a.legendColumns))
	for i, column := range a.legendColumns {
		names[i] = g.value(column)
		pairs[i] = a.args.Label(column) + "=" + g.value(column)
	}
	t.Name = strings.Join(names, ", ")
	t.LegendGroup = strings.Join(pairs, ", ")
	t.ShowLegend = boolPtr(!seen[t.LegendGroup])
	seen[t.LegendGroup] = true
}

func (t *Trace) marker() *Marker {
	if t.Marker == nil {
		t.Marker = &Marker{}
	}
	return t.Marker
}

func (t *Trace) line() *Line {
	if t.Line == nil {
		t.Line = &Line{}
	}
	return t.Line
}

// defaultAttr stores an attribute unless the trace patch already set it.
func (t *Trace) defaultAttr(key string, value any) {
	if t.Attrs == nil {
		t.Attrs = make(map[string]any)
	}
	if _, ok := t.Attrs[key]; !ok {
		t.Attrs[key] = value
	}
}
