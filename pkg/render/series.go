package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-chartgen/pkg/colors"
	"github.com/goliatone/go-chartgen/pkg/figure"
)

// SeriesKind is the drawing primitive a static or alternative renderer uses
// for a trace.
type SeriesKind string

const (
	SeriesScatter SeriesKind = "scatter"
	SeriesLine    SeriesKind = "line"
	SeriesArea    SeriesKind = "area"
	SeriesBar     SeriesKind = "bar"
)

// Series is a cartesian trace reduced to what non-browser renderers draw.
type Series struct {
	Name       string
	Kind       SeriesKind
	Subplot    figure.Subplot
	Horizontal bool
	ShowLegend bool
	X          []any
	Y          []any
	// Color is the single series color. Empty when ColorValues is set.
	Color string
	// ColorValues holds per-point values mapped through the figure coloraxis.
	ColorValues []float64
	Symbol      string
	Dash        string
}

// CartesianSeries flattens the figure data into series. Trace types other
// than scatter and bar yield an error wrapping ErrUnsupportedTrace.
func CartesianSeries(renderer string, fig figure.Figure) ([]Series, error) {
	out := make([]Series, 0, len(fig.Data))
	for _, trace := range fig.Data {
		s, err := seriesOf(trace)
		if err != nil {
			return nil, UnsupportedTrace(renderer, trace.Type)
		}
		out = append(out, s)
	}
	return out, nil
}

func seriesOf(trace figure.Trace) (Series, error) {
	s := Series{
		Name:       trace.Name,
		Subplot:    figure.Subplot{XAxis: defaultRef(trace.XAxis, "x"), YAxis: defaultRef(trace.YAxis, "y")},
		ShowLegend: trace.ShowLegend == nil || *trace.ShowLegend,
		X:          trace.X,
		Y:          trace.Y,
	}
	switch trace.Type {
	case "scatter":
		switch {
		case !strings.Contains(trace.Mode, "lines"):
			s.Kind = SeriesScatter
		case trace.Attrs["stackgroup"] != nil:
			s.Kind = SeriesArea
		default:
			s.Kind = SeriesLine
		}
	case "bar":
		s.Kind = SeriesBar
		s.Horizontal = trace.Orientation == "h"
	default:
		return Series{}, ErrUnsupportedTrace
	}

	if trace.Marker != nil {
		s.Symbol = trace.Marker.Symbol
		s.applyColor(trace.Marker.Color)
	}
	if trace.Line != nil {
		s.Dash = trace.Line.Dash
		if s.Color == "" && s.ColorValues == nil {
			s.applyColor(trace.Line.Color)
		}
	}
	return s, nil
}

func (s *Series) applyColor(value any) {
	switch v := value.(type) {
	case string:
		s.Color = v
	case []any:
		s.ColorValues = Floats(v)
	}
}

// Categories returns the category labels shared by the series along one axis,
// in order of first appearance, or nil when every value is numeric.
func Categories(series []Series, values func(Series) []any) []string {
	categorical := false
	for _, s := range series {
		for _, v := range values(s) {
			if _, ok := toFloat(v); !ok && v != nil {
				categorical = true
				break
			}
		}
	}
	if !categorical {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, s := range series {
		for _, v := range values(s) {
			if v == nil {
				continue
			}
			label := Label(v)
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			out = append(out, label)
		}
	}
	return out
}

// Positions converts values to coordinates. With categories, each value maps
// to its category index. Missing values become NaN.
func Positions(values []any, categories []string) []float64 {
	if categories == nil {
		return Floats(values)
	}
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c] = i
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.NaN()
		if v == nil {
			continue
		}
		if pos, ok := index[Label(v)]; ok {
			out[i] = float64(pos)
		}
	}
	return out
}

// Floats converts values to float64, NaN where a value is missing or not
// numeric.
func Floats(values []any) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := toFloat(v)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}

// Label formats a value for axis ticks and category names.
func Label(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		f, ok := toFloat(v)
		if ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return ""
	}
}

// ColorScale returns the figure's continuous scale and the value range it
// spans. The range defaults to the extent of the supplied values.
func ColorScale(fig figure.Figure, values ...[]float64) ([]colors.Stop, float64, float64) {
	stops := colors.Scale(colors.Plasma)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, set := range values {
		for _, v := range set {
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if axis := fig.Layout.ColorAxis; axis != nil {
		if len(axis.ColorScale) > 0 {
			stops = axis.ColorScale
		}
		if axis.CMin != nil {
			lo = *axis.CMin
		}
		if axis.CMax != nil {
			hi = *axis.CMax
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		lo, hi = 0, 1
	}
	return stops, lo, hi
}

// Normalize maps v into [0, 1] over [lo, hi].
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo || math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
}

func toFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, !math.IsNaN(value)
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case bool:
		if value {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(value, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func defaultRef(ref, fallback string) string {
	if ref == "" {
		return fallback
	}
	return ref
}
