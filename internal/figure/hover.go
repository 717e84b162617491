package figure

import (
	"slices"
	"strconv"
	"strings"
)

// hoverLines accumulates "label=value" entries of a hover template.
type hoverLines struct {
	args  Args
	parts []string
}

func (h *hoverLines) column(name, placeholder string) {
	if name == "" {
		return
	}
	h.raw(h.args.Label(name), placeholder)
}

func (h *hoverLines) raw(label, placeholder string) {
	h.parts = append(h.parts, label+"="+placeholder)
}

// hoverTemplate lists the constant group values followed by one
// label=%{placeholder} entry per mapped channel.
func (a *assembly) hoverTemplate(g group) string {
	args := a.args
	switch a.constructor {
	case Parcoords, Parcats:
		return ""
	case Splom:
		return "%{xaxis.title.text}=%{x}<br>%{yaxis.title.text}=%{y}<extra></extra>"
	}

	h := &hoverLines{args: args}
	for _, column := range a.groupColumns {
		if column == args.LineGroup && !slices.Contains(a.legendColumns, column) && !a.isFacetOrFrame(column) {
			continue
		}
		h.column(column, g.value(column))
	}

	switch a.info.family {
	case familyCartesian:
		a.cartesianHover(h)
	case familyPolar:
		h.column(args.R, "%{r}")
		h.column(args.Theta, "%{theta}")
	case familyScene:
		h.column(args.X, "%{x}")
		h.column(args.Y, "%{y}")
		h.column(args.Z, "%{z}")
	case familyTernary:
		h.column(args.A, "%{a}")
		h.column(args.B, "%{b}")
		h.column(args.C, "%{c}")
	case familyGeo:
		if args.Locations != "" {
			h.column(args.Locations, "%{location}")
		} else {
			h.column(args.Lat, "%{lat}")
			h.column(args.Lon, "%{lon}")
		}
	case familyMapbox:
		h.column(args.Lat, "%{lat}")
		h.column(args.Lon, "%{lon}")
	}

	h.column(args.Size, "%{marker.size}")
	if a.continuous {
		if a.constructor == Choropleth {
			h.column(args.Color, "%{z}")
		} else {
			h.column(args.Color, "%{marker.color}")
		}
	}
	h.column(args.Text, "%{text}")
	for i, column := range args.HoverData {
		h.column(column, "%{customdata["+strconv.Itoa(i)+"]}")
	}

	body := strings.Join(h.parts, "<br>")
	if args.HoverName != "" {
		body = "<b>%{hovertext}</b><br><br>" + body
	}
	return body + "<extra></extra>"
}

func (a *assembly) cartesianHover(h *hoverLines) {
	args := a.args
	switch a.constructor {
	case Histogram:
		if a.orientation == "h" {
			h.column(args.Y, "%{y}")
			h.raw(a.histLabel(args.X), "%{x}")
			return
		}
		h.column(args.X, "%{x}")
		h.raw(a.histLabel(args.Y), "%{y}")
	case Histogram2D:
		h.column(args.X, "%{x}")
		h.column(args.Y, "%{y}")
		h.raw(a.histLabel(args.Z), "%{z}")
	default:
		h.column(args.X, "%{x}")
		h.column(args.Y, "%{y}")
	}
}

// histLabel names the aggregated axis of a histogram: "count", "sum of y",
// or the normalisation when counting.
func (a *assembly) histLabel(column string) string {
	fn, _ := a.patch["histfunc"].(string)
	if fn == "" {
		fn = "count"
		if column != "" {
			fn = "sum"
		}
	}
	norm, _ := a.patch["histnorm"].(string)
	if fn == "count" {
		if norm != "" {
			return norm
		}
		return "count"
	}
	label := fn + " of " + a.args.Label(column)
	if norm != "" {
		label += " (" + norm + ")"
	}
	return label
}

func (a *assembly) isFacetOrFrame(column string) bool {
	return column == a.args.FacetRow || column == a.args.FacetCol || column == a.args.AnimationFrame
}
