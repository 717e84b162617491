package figure

import (
	"math"
	"strconv"
)

type facetCell struct {
	row, col int
	index    int
	xref     string
	yref     string
}

// facetGrid places facet values into a grid of subplots. Without facets it
// holds a single cell spanning the whole plot area.
type facetGrid struct {
	rows, cols int
	wrap       bool
	rowValues  []string
	colValues  []string
	cells      map[[2]string]facetCell
	ordered    []facetCell
	xDomains   [][2]float64
	yDomains   [][2]float64
}

func newFacetGrid(args Args, rowValues, colValues []string) facetGrid {
	g := facetGrid{
		rowValues: rowValues,
		colValues: colValues,
		cells:     make(map[[2]string]facetCell),
	}
	if args.FacetColWrap > 0 && len(colValues) > 0 {
		g.wrap = true
		g.cols = min(args.FacetColWrap, len(colValues))
		g.rows = (len(colValues) + g.cols - 1) / g.cols
		for k, cv := range colValues {
			g.add("", cv, k/g.cols, k%g.cols)
		}
	} else {
		rv := rowValues
		if len(rv) == 0 {
			rv = []string{""}
		}
		cv := colValues
		if len(cv) == 0 {
			cv = []string{""}
		}
		g.rows, g.cols = len(rv), len(cv)
		for r, rowValue := range rv {
			for c, colValue := range cv {
				g.add(rowValue, colValue, r, c)
			}
		}
	}
	g.xDomains = domains(g.cols, args.FacetColSpacing, false)
	g.yDomains = domains(g.rows, args.FacetRowSpacing, true)
	return g
}

func (g *facetGrid) add(rowValue, colValue string, r, c int) {
	index := r*g.cols + c + 1
	cell := facetCell{row: r, col: c, index: index, xref: axisRef("x", index), yref: axisRef("y", index)}
	g.cells[[2]string{rowValue, colValue}] = cell
	g.ordered = append(g.ordered, cell)
}

func (g facetGrid) cell(rowValue, colValue string) facetCell {
	return g.cells[[2]string{rowValue, colValue}]
}

func (g facetGrid) exists(r, c int) bool {
	for _, cell := range g.ordered {
		if cell.row == r && cell.col == c {
			return true
		}
	}
	return false
}

// bottom reports whether no subplot sits below the cell.
func (g facetGrid) bottom(cell facetCell) bool {
	return cell.row == g.rows-1 || !g.exists(cell.row+1, cell.col)
}

func (g facetGrid) single() bool {
	return len(g.ordered) == 1
}

// domains splits [0, 1] into n slots separated by spacing. Vertical domains
// run top to bottom.
func domains(n int, spacing float64, vertical bool) [][2]float64 {
	if n <= 1 {
		return [][2]float64{{0, 1}}
	}
	size := (1 - spacing*float64(n-1)) / float64(n)
	out := make([][2]float64, n)
	for i := range out {
		lo := float64(i) * (size + spacing)
		hi := lo + size
		if vertical {
			lo, hi = 1-hi, 1-lo
		}
		out[i] = [2]float64{round6(lo), round6(hi)}
	}
	return out
}

func axisRef(prefix string, index int) string {
	if index <= 1 {
		return prefix
	}
	return prefix + strconv.Itoa(index)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// annotations returns the facet labels placed above columns and to the right
// of rows.
func (g facetGrid) annotations(args Args) []Annotation {
	var out []Annotation
	if g.wrap {
		for _, cv := range g.colValues {
			cell := g.cell("", cv)
			out = append(out, Annotation{
				Text: args.Label(args.FacetCol) + "=" + cv,
				X:    round6(mid(g.xDomains[cell.col])), Y: g.yDomains[cell.row][1],
				XRef: "paper", YRef: "paper", XAnchor: "center", YAnchor: "bottom",
			})
		}
		return out
	}
	for c, cv := range g.colValues {
		out = append(out, Annotation{
			Text: args.Label(args.FacetCol) + "=" + cv,
			X:    round6(mid(g.xDomains[c])), Y: 1,
			XRef: "paper", YRef: "paper", XAnchor: "center", YAnchor: "bottom",
		})
	}
	for r, rv := range g.rowValues {
		out = append(out, Annotation{
			Text: args.Label(args.FacetRow) + "=" + rv,
			X:    1, Y: round6(mid(g.yDomains[r])),
			XRef: "paper", YRef: "paper", XAnchor: "left", YAnchor: "middle",
			TextAngle: floatPtr(90),
		})
	}
	return out
}

func mid(d [2]float64) float64 {
	return (d[0] + d[1]) / 2
}
