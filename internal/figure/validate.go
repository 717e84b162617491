package figure

import (
	"fmt"
	"math"
	"slices"
)

func (a *assembly) validate() error {
	for _, ref := range a.args.columnRefs() {
		if _, err := a.frame.Column(ref.column); err != nil {
			return fmt.Errorf("figure: argument %s: %w", ref.arg, err)
		}
	}
	if err := a.validateRequired(); err != nil {
		return err
	}
	if err := a.validateChannels(); err != nil {
		return err
	}
	if err := a.validateMarginals(); err != nil {
		return err
	}
	if a.args.Size != "" {
		col := a.frame.MustColumn(a.args.Size)
		if !col.Numeric() {
			return fmt.Errorf("figure: size column %q must be numeric", a.args.Size)
		}
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Float(i); ok && v < 0 {
				return fmt.Errorf("figure: size column %q has negative value %v at row %d", a.args.Size, v, i)
			}
		}
	}
	for _, dim := range []struct {
		name  string
		value []float64
	}{
		{"range_x", a.args.RangeX}, {"range_y", a.args.RangeY}, {"range_z", a.args.RangeZ},
		{"range_r", a.args.RangeR}, {"range_theta", a.args.RangeTheta}, {"range_color", a.args.RangeColor},
	} {
		if dim.value != nil && len(dim.value) != 2 {
			return fmt.Errorf("figure: %s expects two values, got %d", dim.name, len(dim.value))
		}
	}
	switch a.args.Orientation {
	case "", "h", "v":
	default:
		return fmt.Errorf("figure: orientation must be \"h\" or \"v\", got %q", a.args.Orientation)
	}
	return nil
}

func (a *assembly) validateRequired() error {
	args := a.args
	need := func(names ...string) error {
		return fmt.Errorf("figure: %s requires %s", a.constructor, joinArgs(names))
	}
	switch a.info.family {
	case familyCartesian:
		switch a.constructor {
		case Histogram2D, Histogram2DContour:
			if args.X == "" || args.Y == "" {
				return need("x", "y")
			}
		default:
			if args.X == "" && args.Y == "" {
				return need("x or y")
			}
		}
	case familyPolar:
		if args.R == "" {
			return need("r")
		}
	case familyScene:
		if args.X == "" || args.Y == "" || args.Z == "" {
			return need("x", "y", "z")
		}
	case familyTernary:
		if args.A == "" || args.B == "" || args.C == "" {
			return need("a", "b", "c")
		}
	case familyGeo:
		if a.constructor == Choropleth {
			if args.Locations == "" {
				return need("locations")
			}
			break
		}
		if args.Locations == "" && (args.Lat == "" || args.Lon == "") {
			return need("locations or lat and lon")
		}
	case familyMapbox:
		if args.Lat == "" || args.Lon == "" {
			return need("lat", "lon")
		}
	}
	if a.info.family != familyCartesian && a.info.family != familyScene {
		for _, dim := range []string{args.ErrorX, args.ErrorY, args.ErrorZ} {
			if dim != "" {
				return fmt.Errorf("figure: %s does not support error bars", a.constructor)
			}
		}
	}
	return nil
}

func (a *assembly) validateChannels() error {
	for _, ch := range []Channel{ChannelSymbol, ChannelLineDash, ChannelFacetRow, ChannelFacetCol, ChannelAnimationFrame} {
		if a.args.Column(ch) != "" && !a.grouped[ch] {
			return fmt.Errorf("figure: %s does not support %s", a.constructor, ch)
		}
	}
	if a.args.Color == "" {
		return nil
	}
	col := a.frame.MustColumn(a.args.Color)
	switch a.info.color {
	case colorNone:
		return fmt.Errorf("figure: %s does not support color", a.constructor)
	case colorContinuousOnly:
		if !col.Numeric() {
			return fmt.Errorf("figure: %s requires a numeric color column, %q is %s", a.constructor, a.args.Color, col.Kind)
		}
	}
	return nil
}

func (a *assembly) validateMarginals() error {
	if a.args.MarginalX == "" && a.args.MarginalY == "" {
		return nil
	}
	if !a.info.marginals {
		return fmt.Errorf("figure: %s does not support marginals", a.constructor)
	}
	if a.args.FacetRow != "" || a.args.FacetCol != "" {
		return fmt.Errorf("figure: marginals and facets are mutually exclusive")
	}
	kinds := []string{MarginalHistogram, MarginalBox, MarginalViolin, MarginalRug}
	for _, m := range []string{a.args.MarginalX, a.args.MarginalY} {
		if m != "" && !slices.Contains(kinds, m) {
			return fmt.Errorf("figure: unknown marginal %q", m)
		}
	}
	if a.args.MarginalX != "" && a.args.X == "" {
		return fmt.Errorf("figure: marginal_x requires x")
	}
	if a.args.MarginalY != "" && a.args.Y == "" {
		return fmt.Errorf("figure: marginal_y requires y")
	}
	return nil
}

func joinArgs(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	out := ""
	for i, name := range names {
		switch {
		case i == 0:
		case i == len(names)-1:
			out += " and "
		default:
			out += ", "
		}
		out += name
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
