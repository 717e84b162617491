package figure

import (
	"fmt"
	"slices"
)

// dimensionColumns returns the explicit dimensions, or every eligible
// column not already mapped to another channel: numeric columns for
// scatter matrices and parallel coordinates, low-cardinality columns for
// parallel categories.
func (a *assembly) dimensionColumns() ([]string, error) {
	args := a.args
	if len(args.Dimensions) > 0 {
		if a.constructor == Parcoords {
			for _, name := range args.Dimensions {
				if !a.column(name).Numeric() {
					return nil, fmt.Errorf("figure: parcoords dimension %q must be numeric", name)
				}
			}
		}
		return append([]string(nil), args.Dimensions...), nil
	}

	used := []string{args.Color, args.Symbol, args.Size, args.HoverName, args.Text, args.AnimationFrame, args.AnimationGroup, args.LineGroup}
	used = append(used, args.HoverData...)
	used = append(used, args.CustomData...)

	var dims []string
	for _, col := range a.frame.Columns() {
		if slices.Contains(used, col.Name) {
			continue
		}
		switch a.constructor {
		case Parcats:
			if col.Cardinality() <= args.DimensionsMaxCardinality {
				dims = append(dims, col.Name)
			}
		default:
			if col.Numeric() {
				dims = append(dims, col.Name)
			}
		}
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("figure: %s found no eligible dimensions", a.constructor)
	}
	return dims, nil
}
