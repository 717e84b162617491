package figure

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-chartgen/pkg/dataset"
)

// MakeFigure turns a frame and a set of column mappings into a Figure. The
// constructor selects the trace type, tracePatch is merged onto every trace,
// grouped lists the channels allowed to split rows into traces and
// layoutPatch is merged onto the layout last.
func MakeFigure(frame *dataset.Frame, args Args, constructor Constructor, tracePatch map[string]any, grouped []Channel, layoutPatch map[string]any) (Figure, error) {
	if frame == nil {
		return Figure{}, errors.New("figure: data frame is required")
	}
	info, ok := constructors[constructor]
	if !ok {
		return Figure{}, fmt.Errorf("figure: unknown constructor %q", constructor)
	}
	tmpl, ok := LookupTemplate(args.Template)
	if !ok && strings.TrimSpace(args.Template) != "" {
		return Figure{}, fmt.Errorf("figure: unknown template %q", args.Template)
	}

	a := &assembly{
		frame:       frame,
		args:        args.withDefaults(tmpl),
		constructor: constructor,
		info:        info,
		patch:       ClonePatch(tracePatch),
		order:       grouped,
		grouped:     make(map[Channel]bool, len(grouped)),
		template:    tmpl,
	}
	if a.patch == nil {
		a.patch = map[string]any{}
	}
	for _, ch := range grouped {
		a.grouped[ch] = true
	}

	if err := a.validate(); err != nil {
		return Figure{}, err
	}
	if err := a.prepare(); err != nil {
		return Figure{}, err
	}

	var fig Figure
	if err := a.buildTraces(&fig); err != nil {
		return Figure{}, err
	}
	a.buildLayout(&fig)
	if len(layoutPatch) > 0 {
		applyLayoutPatch(&fig.Layout, layoutPatch)
	}
	return fig, nil
}

// assembly carries the state shared by the build steps of one figure.
type assembly struct {
	frame       *dataset.Frame
	args        Args
	constructor Constructor
	info        constructorInfo
	patch       map[string]any
	order       []Channel
	grouped     map[Channel]bool
	template    Template

	mode        string
	orientation string
	continuous  bool

	groupColumns  []string
	legendColumns []string
	orders        map[string][]string
	groups        []group

	colorMap  map[string]string
	symbolMap map[string]string
	dashMap   map[string]string

	grid       facetGrid
	dimensions []string
	sizeRef    float64
}

func (a *assembly) prepare() error {
	if mode, ok := a.patch["mode"].(string); ok {
		a.mode = mode
		delete(a.patch, "mode")
	}
	if orientation, ok := a.patch["orientation"].(string); ok {
		if a.args.Orientation == "" {
			a.args.Orientation = orientation
		}
		delete(a.patch, "orientation")
	}
	a.orientation = a.resolveOrientation()

	if a.args.Color != "" {
		numeric := a.frame.MustColumn(a.args.Color).Numeric()
		switch a.info.color {
		case colorContinuousOnly:
			a.continuous = true
		case colorEither:
			a.continuous = numeric && !a.linesOnly()
		}
	}

	a.orders = make(map[string][]string)
	addColumn := func(column string) {
		if column == "" {
			return
		}
		if slices.Contains(a.groupColumns, column) {
			return
		}
		a.groupColumns = append(a.groupColumns, column)
	}
	for _, ch := range a.order {
		column := a.args.Column(ch)
		if column == "" || (ch == ChannelColor && a.continuous) {
			continue
		}
		addColumn(column)
		switch ch {
		case ChannelColor, ChannelSymbol, ChannelLineDash:
			if !slices.Contains(a.legendColumns, column) {
				a.legendColumns = append(a.legendColumns, column)
			}
		}
	}
	if a.args.LineGroup != "" && a.info.family != familyDimensions {
		addColumn(a.args.LineGroup)
	}
	for _, column := range a.groupColumns {
		a.orders[column] = orderValues(a.frame.MustColumn(column), a.args.CategoryOrders[column])
	}

	if a.discreteColor() {
		a.colorMap = assignDiscrete(a.orders[a.args.Color], a.args.ColorDiscreteMap, a.args.ColorDiscreteSequence)
	}
	if a.args.Symbol != "" {
		a.symbolMap = assignDiscrete(a.orders[a.args.Symbol], a.args.SymbolMap, a.args.SymbolSequence)
	}
	if a.args.LineDash != "" {
		a.dashMap = assignDiscrete(a.orders[a.args.LineDash], a.args.LineDashMap, a.args.LineDashSequence)
	}

	a.grid = newFacetGrid(a.args, a.orders[a.args.FacetRow], a.orders[a.args.FacetCol])

	if a.args.Size != "" {
		a.sizeRef = sizeRef(a.frame.MustColumn(a.args.Size), a.args.SizeMax)
	}
	if a.info.family == familyDimensions {
		dims, err := a.dimensionColumns()
		if err != nil {
			return err
		}
		a.dimensions = dims
	}

	a.groups = groupRows(a.frame, a.groupColumns, a.orders)
	return nil
}

// resolveOrientation picks "h" or "v" for bar-like constructors: an explicit
// orientation wins, otherwise horizontal when x is numeric and y categorical
// or absent. Histograms are horizontal only when y alone is given.
func (a *assembly) resolveOrientation() string {
	if !a.info.oriented {
		return ""
	}
	if a.args.Orientation != "" {
		return a.args.Orientation
	}
	x, y := a.args.X, a.args.Y
	if a.constructor == Histogram {
		if x == "" && y != "" {
			return "h"
		}
		return "v"
	}
	switch {
	case x != "" && y == "":
		return "h"
	case x == "" && y != "":
		return "v"
	}
	xNumeric := a.frame.MustColumn(x).Numeric()
	yNumeric := a.frame.MustColumn(y).Numeric()
	if xNumeric && !yNumeric {
		return "h"
	}
	return "v"
}

// linesOnly reports whether the trace draws lines without markers, in which
// case discrete colors go to line.color.
func (a *assembly) linesOnly() bool {
	if a.constructor == Histogram2DContour {
		return true
	}
	return strings.Contains(a.mode, "lines") && !strings.Contains(a.mode, "markers")
}

func (a *assembly) discreteColor() bool {
	return a.args.Color != "" && !a.continuous && a.grouped[ChannelColor]
}

func (a *assembly) column(name string) *dataset.Column {
	return a.frame.MustColumn(name)
}

func (a *assembly) values(name string, rows []int) []any {
	col := a.column(name)
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = col.Value(r)
	}
	return out
}

func (a *assembly) labels(name string, rows []int) []any {
	col := a.column(name)
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = col.String(r)
	}
	return out
}

func sizeRef(col *dataset.Column, sizeMax float64) float64 {
	peak := 0.0
	for i := 0; i < col.Len(); i++ {
		if v, ok := col.Float(i); ok && finite(v) && v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return 1
	}
	return 2 * peak / (sizeMax * sizeMax)
}
