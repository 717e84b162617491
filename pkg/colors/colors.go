package colors

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Sequence returns a named qualitative sequence. Names are case-insensitive
// and a "_r" suffix reverses the sequence.
func Sequence(name string) ([]string, bool) {
	return lookup(qualitative, name)
}

// Continuous returns a named continuous scale as an ordered list of colors.
// Names are case-insensitive and a "_r" suffix reverses the scale.
func Continuous(name string) ([]string, bool) {
	return lookup(sequential, name)
}

// Names lists the registered qualitative and continuous names.
func Names() (qualitativeNames, continuousNames []string) {
	for name := range qualitative {
		qualitativeNames = append(qualitativeNames, name)
	}
	for name := range sequential {
		continuousNames = append(continuousNames, name)
	}
	sort.Strings(qualitativeNames)
	sort.Strings(continuousNames)
	return qualitativeNames, continuousNames
}

func lookup(table map[string][]string, name string) ([]string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	reversed := strings.HasSuffix(key, "_r")
	key = strings.TrimSuffix(key, "_r")
	values, ok := table[key]
	if !ok {
		return nil, false
	}
	out := append([]string(nil), values...)
	if reversed {
		Reverse(out)
	}
	return out, true
}

// Reverse flips a color list in place.
func Reverse(values []string) {
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
}

// Stop is a colorscale entry: a position in [0, 1] and a color.
type Stop struct {
	Position float64
	Color    string
}

// MarshalJSON encodes the stop as the [position, color] pair expected by the
// rendering library.
func (s Stop) MarshalJSON() ([]byte, error) {
	return []byte("[" + strconv.FormatFloat(s.Position, 'g', -1, 64) + "," + strconv.Quote(s.Color) + "]"), nil
}

// Scale spreads colors evenly over [0, 1].
func Scale(values []string) []Stop {
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return []Stop{{Position: 0, Color: values[0]}, {Position: 1, Color: values[0]}}
	}
	out := make([]Stop, len(values))
	step := 1 / float64(len(values)-1)
	for i, c := range values {
		pos := float64(i) * step
		if i == len(values)-1 {
			pos = 1
		}
		out[i] = Stop{Position: pos, Color: c}
	}
	return out
}

// Sample interpolates the scale at t (clamped to [0, 1]) in CIE-Lab space.
func Sample(stops []Stop, t float64) (color.Color, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("colors: empty scale")
	}
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	if len(stops) == 1 || t <= stops[0].Position {
		return Parse(stops[0].Color)
	}
	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.Position && i < len(stops)-1 {
			continue
		}
		lo := stops[i-1]
		from, err := parseColorful(lo.Color)
		if err != nil {
			return nil, err
		}
		to, err := parseColorful(hi.Color)
		if err != nil {
			return nil, err
		}
		span := hi.Position - lo.Position
		frac := 0.0
		if span > 0 {
			frac = (t - lo.Position) / span
		}
		return from.BlendLab(to, math.Max(0, math.Min(1, frac))).Clamped(), nil
	}
	return Parse(stops[len(stops)-1].Color)
}

// SampleHex is Sample returning a "#rrggbb" string.
func SampleHex(stops []Stop, t float64) (string, error) {
	c, err := Sample(stops, t)
	if err != nil {
		return "", err
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex(), nil
}

// Parse converts "#rgb", "#rrggbb", "rgb(r,g,b)" or "rgba(r,g,b,a)" into a
// color.Color.
func Parse(value string) (color.Color, error) {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "rgb") {
		return parseRGB(lower)
	}
	if lower == "transparent" {
		return color.NRGBA{}, nil
	}
	c, err := parseColorful(trimmed)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func parseColorful(value string) (colorful.Color, error) {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(strings.ToLower(trimmed), "rgb") {
		c, err := parseRGB(strings.ToLower(trimmed))
		if err != nil {
			return colorful.Color{}, err
		}
		cf, _ := colorful.MakeColor(c)
		return cf, nil
	}
	if len(trimmed) == 4 && trimmed[0] == '#' {
		trimmed = "#" + strings.Repeat(trimmed[1:2], 2) + strings.Repeat(trimmed[2:3], 2) + strings.Repeat(trimmed[3:4], 2)
	}
	c, err := colorful.Hex(trimmed)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("colors: parse %q: %w", value, err)
	}
	return c, nil
}

func parseRGB(value string) (color.Color, error) {
	open := strings.IndexByte(value, '(')
	closing := strings.LastIndexByte(value, ')')
	if open < 0 || closing < open {
		return nil, fmt.Errorf("colors: parse %q: malformed rgb()", value)
	}
	parts := strings.Split(value[open+1:closing], ",")
	if len(parts) < 3 || len(parts) > 4 {
		return nil, fmt.Errorf("colors: parse %q: expected 3 or 4 components", value)
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("colors: parse %q: %w", value, err)
		}
		channels[i] = uint8(math.Max(0, math.Min(255, math.Round(f))))
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("colors: parse %q: %w", value, err)
		}
		alpha = uint8(math.Max(0, math.Min(255, math.Round(f*255))))
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}
