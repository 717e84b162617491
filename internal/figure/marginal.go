package figure

const (
	mainDomainEnd       = 0.7
	marginalDomainStart = 0.72
)

// marginalTraces returns the distribution traces drawn above (x) and to the
// right (y) of the main subplot for one group.
func (a *assembly) marginalTraces(main Trace, g group) []Trace {
	var out []Trace
	color := a.groupColor(g)
	if a.args.MarginalX != "" {
		values := a.values(a.args.X, g.rows)
		out = append(out, marginalTrace(a.args.MarginalX, "x", values, color, main))
	}
	if a.args.MarginalY != "" {
		values := a.values(a.args.Y, g.rows)
		out = append(out, marginalTrace(a.args.MarginalY, "y", values, color, main))
	}
	return out
}

func marginalTrace(kind, axis string, values []any, color string, main Trace) Trace {
	t := Trace{
		Name:        main.Name,
		LegendGroup: main.LegendGroup,
		ShowLegend:  boolPtr(false),
		Marker:      &Marker{Color: color},
	}
	if axis == "x" {
		t.X = values
		t.XAxis, t.YAxis = "x2", "y2"
	} else {
		t.Y = values
		t.XAxis, t.YAxis = "x3", "y3"
	}
	switch kind {
	case MarginalHistogram:
		t.Type = "histogram"
		t.OffsetGroup = main.OffsetGroup
		t.defaultAttr("bingroup", axis)
	case MarginalBox:
		t.Type = "box"
		t.defaultAttr("notched", true)
	case MarginalViolin:
		t.Type = "violin"
	case MarginalRug:
		t.Type = "box"
		t.Marker.Symbol = "line-ns-open"
		if axis == "y" {
			t.Marker.Symbol = "line-ew-open"
		}
		t.defaultAttr("boxpoints", "all")
		t.defaultAttr("jitter", 0)
		t.defaultAttr("fillcolor", "rgba(255,255,255,0)")
		t.defaultAttr("line", map[string]any{"color": "rgba(255,255,255,0)"})
		t.defaultAttr("hoveron", "points")
	}
	return t
}

// groupColor is the discrete color of a group, or the first palette color.
func (a *assembly) groupColor(g group) string {
	if a.discreteColor() {
		return a.colorMap[g.value(a.args.Color)]
	}
	return a.args.ColorDiscreteSequence[0]
}

// marginalAxes shrinks the main subplot and adds the marginal axes.
func (a *assembly) marginalAxes(l *Layout) {
	x, y := l.Axis("xaxis"), l.Axis("yaxis")
	if a.args.MarginalY != "" {
		x.Domain = []float64{0, mainDomainEnd}
	}
	if a.args.MarginalX != "" {
		y.Domain = []float64{0, mainDomainEnd}
		top := l.Axis("xaxis2")
		top.Domain = append([]float64(nil), x.Domain...)
		top.Anchor = "y2"
		top.Matches = "x"
		top.ShowTickLabels = boolPtr(false)
		topY := l.Axis("yaxis2")
		topY.Domain = []float64{marginalDomainStart, 1}
		topY.Anchor = "x2"
		topY.ShowTickLabels = boolPtr(a.args.MarginalX == MarginalHistogram)
	}
	if a.args.MarginalY != "" {
		right := l.Axis("yaxis3")
		right.Domain = append([]float64(nil), y.Domain...)
		right.Anchor = "x3"
		right.Matches = "y"
		right.ShowTickLabels = boolPtr(false)
		rightX := l.Axis("xaxis3")
		rightX.Domain = []float64{marginalDomainStart, 1}
		rightX.Anchor = "y3"
		rightX.ShowTickLabels = boolPtr(a.args.MarginalY == MarginalHistogram)
	}
	if l.BarMode == "" && (a.args.MarginalX == MarginalHistogram || a.args.MarginalY == MarginalHistogram) {
		l.BarMode = "overlay"
	}
	if l.ViolinMode == "" && (a.args.MarginalX == MarginalViolin || a.args.MarginalY == MarginalViolin) {
		l.ViolinMode = "overlay"
	}
}
