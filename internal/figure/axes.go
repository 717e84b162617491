package figure

import (
	"math"
	"strings"

	"github.com/goliatone/go-chartgen/pkg/colors"
	"gonum.org/v1/gonum/stat"
)

func (a *assembly) buildLayout(fig *Figure) {
	args := a.args
	l := &fig.Layout
	if args.Title != "" {
		l.Title = &Title{Text: args.Title}
	}
	l.Width, l.Height = args.Width, args.Height
	l.Template = args.Template
	if a.template.Name != "" && a.template.Name != "none" {
		l.Colorway = append([]string(nil), a.template.Colorway...)
		l.PaperBGColor = a.template.PaperBGColor
		l.PlotBGColor = a.template.PlotBGColor
		if a.template.FontColor != "" {
			l.Font = &Font{Color: a.template.FontColor}
		}
	}

	legend := &Legend{TraceGroupGap: floatPtr(0)}
	if len(a.legendColumns) > 0 {
		labels := make([]string, len(a.legendColumns))
		for i, column := range a.legendColumns {
			labels[i] = args.Label(column)
		}
		legend.Title = &Title{Text: strings.Join(labels, ", ")}
	}
	if args.Size != "" {
		legend.ItemSizing = "constant"
	}
	l.Legend = legend

	switch a.info.family {
	case familyCartesian:
		a.cartesianAxes(l)
		if a.args.MarginalX != "" || a.args.MarginalY != "" {
			a.marginalAxes(l)
		}
	case familyPolar:
		a.polarAxes(l)
	case familyScene:
		for _, ax := range []struct {
			key, column string
			log         bool
			rng         []float64
		}{
			{"xaxis", args.X, args.LogX, args.RangeX},
			{"yaxis", args.Y, args.LogY, args.RangeY},
			{"zaxis", args.Z, args.LogZ, args.RangeZ},
		} {
			l.SetAttr("scene."+ax.key+".title.text", args.Label(ax.column))
			if ax.log {
				l.SetAttr("scene."+ax.key+".type", "log")
			}
			if ax.rng != nil {
				l.SetAttr("scene."+ax.key+".range", axisRange(ax.rng, ax.log))
			}
		}
	case familyTernary:
		l.SetAttr("ternary.aaxis.title.text", args.Label(args.A))
		l.SetAttr("ternary.baxis.title.text", args.Label(args.B))
		l.SetAttr("ternary.caxis.title.text", args.Label(args.C))
	case familyGeo:
		if args.FitBounds != "" {
			l.SetAttr("geo.fitbounds", args.FitBounds)
		}
		if args.Center != nil {
			l.SetAttr("geo.center", map[string]any{"lat": args.Center.Lat, "lon": args.Center.Lon})
		}
	case familyMapbox:
		center := args.Center
		if center == nil {
			center = &LatLon{
				Lat: meanOf(a.column(args.Lat).Floats()),
				Lon: meanOf(a.column(args.Lon).Floats()),
			}
		}
		l.SetAttr("mapbox.center", map[string]any{"lat": center.Lat, "lon": center.Lon})
		l.SetAttr("mapbox.zoom", args.Zoom)
		l.SetAttr("mapbox.style", args.MapboxStyle)
	}

	if a.continuous || a.constructor == Histogram2D {
		a.colorAxis(l)
	}
	if !a.grid.single() {
		l.Annotations = a.grid.annotations(args)
	}
	a.animationControls(l, fig.Frames)
}

// cartesianAxes creates the x/y axis pair of every facet cell.
func (a *assembly) cartesianAxes(l *Layout) {
	args := a.args
	xTitle, yTitle := a.axisTitles()
	multi := !a.grid.single()
	for _, cell := range a.grid.ordered {
		x := l.Axis(LayoutKey(cell.xref))
		y := l.Axis(LayoutKey(cell.yref))
		xd, yd := a.grid.xDomains[cell.col], a.grid.yDomains[cell.row]
		x.Domain = []float64{xd[0], xd[1]}
		y.Domain = []float64{yd[0], yd[1]}
		x.Anchor, y.Anchor = cell.yref, cell.xref
		if multi && cell.index > 1 {
			x.Matches, y.Matches = "x", "y"
		}
		if a.grid.bottom(cell) {
			if xTitle != "" {
				x.Title = &Title{Text: xTitle}
			}
		} else {
			x.ShowTickLabels = boolPtr(false)
		}
		if cell.col == 0 {
			if yTitle != "" {
				y.Title = &Title{Text: yTitle}
			}
		} else {
			y.ShowTickLabels = boolPtr(false)
		}
		a.scaleAxis(x, args.X, args.LogX, args.RangeX)
		a.scaleAxis(y, args.Y, args.LogY, args.RangeY)
	}
}

func (a *assembly) scaleAxis(axis *Axis, column string, log bool, rng []float64) {
	if log {
		axis.Type = "log"
	}
	if rng != nil {
		axis.Range = axisRange(rng, log)
	}
	if listed, ok := a.args.CategoryOrders[column]; ok && column != "" && len(listed) > 0 {
		axis.CategoryOrder = "array"
		axis.CategoryArray = append([]string(nil), listed...)
	}
}

// axisTitles returns the x and y titles, substituting the aggregate label on
// the counted axis of a histogram.
func (a *assembly) axisTitles() (string, string) {
	args := a.args
	xTitle, yTitle := labelOrEmpty(args, args.X), labelOrEmpty(args, args.Y)
	if a.constructor == Histogram {
		if a.orientation == "h" {
			xTitle = a.histLabel(args.X)
		} else {
			yTitle = a.histLabel(args.Y)
		}
	}
	return xTitle, yTitle
}

func (a *assembly) polarAxes(l *Layout) {
	args := a.args
	l.SetAttr("polar.angularaxis.direction", args.Direction)
	l.SetAttr("polar.angularaxis.rotation", *args.StartAngle)
	if args.LogR {
		l.SetAttr("polar.radialaxis.type", "log")
	}
	if args.RangeR != nil {
		l.SetAttr("polar.radialaxis.range", axisRange(args.RangeR, args.LogR))
	}
	if args.RangeTheta != nil {
		l.SetAttr("polar.sector", append([]float64(nil), args.RangeTheta...))
	}
}

func (a *assembly) colorAxis(l *Layout) {
	args := a.args
	ca := &ColorAxis{ColorScale: colors.Scale(args.ColorContinuousScale)}
	if args.RangeColor != nil {
		ca.CMin, ca.CMax = floatPtr(args.RangeColor[0]), floatPtr(args.RangeColor[1])
	}
	if args.ColorContinuousMidpoint != nil {
		ca.CMid = floatPtr(*args.ColorContinuousMidpoint)
	}
	title := a.histLabel(args.Z)
	if a.continuous {
		title = args.Label(args.Color)
	}
	ca.ColorBar = &ColorBar{Title: &Title{Text: title}}
	l.ColorAxis = ca
}

func axisRange(rng []float64, log bool) []float64 {
	out := []float64{rng[0], rng[1]}
	if log {
		out[0], out[1] = math.Log10(out[0]), math.Log10(out[1])
	}
	return out
}

func labelOrEmpty(args Args, column string) string {
	if column == "" {
		return ""
	}
	return args.Label(column)
}

// meanOf averages the finite values, ignoring missing ones.
func meanOf(values []float64) float64 {
	finiteValues := make([]float64, 0, len(values))
	for _, v := range values {
		if finite(v) {
			finiteValues = append(finiteValues, v)
		}
	}
	if len(finiteValues) == 0 {
		return 0
	}
	return stat.Mean(finiteValues, nil)
}

// applyLayoutPatch merges a layout patch: known top-level keys go to typed
// fields, everything else into Attrs.
func applyLayoutPatch(l *Layout, patch map[string]any) {
	rest := make(map[string]any, len(patch))
	for key, value := range patch {
		s, isString := value.(string)
		switch {
		case key == "barmode" && isString:
			l.BarMode = s
		case key == "boxmode" && isString:
			l.BoxMode = s
		case key == "violinmode" && isString:
			l.ViolinMode = s
		case key == "dragmode" && isString:
			l.DragMode = s
		default:
			rest[key] = value
		}
	}
	if len(rest) == 0 {
		return
	}
	if l.Attrs == nil {
		l.Attrs = make(map[string]any)
	}
	MergePatch(l.Attrs, rest)
}
