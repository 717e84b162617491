package express

import "github.com/goliatone/go-chartgen/pkg/figure"

// Args carries every channel argument and option. Defaults applied when a
// field is left at its zero value:
//
//   - ColorDiscreteSequence: the template colorway, else colors.Plotly.
//   - ColorContinuousScale: the template scale, else colors.Plasma.
//   - SymbolSequence: circle, diamond, square, x, cross.
//   - LineDashSequence: solid, dot, dash, longdash, dashdot, longdashdot.
//   - SizeMax: 20.
//   - FacetColSpacing 0.02, FacetRowSpacing 0.03 (0.07 when wrapping).
//   - DimensionsMaxCardinality: 50.
//   - Direction clockwise, StartAngle 90 for polar charts.
//   - Zoom 8 and MapboxStyle open-street-map for mapbox charts; the centre
//     defaults to the mean of the lat/lon columns.
//   - BarMode relative, BoxMode/ViolinMode/StripMode group.
type Args = figure.Args

// LatLon is a geographic coordinate used for map centres.
type LatLon = figure.LatLon
