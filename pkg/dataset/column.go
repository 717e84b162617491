package dataset

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Column is a named, typed vector of values. Exactly one of the storage slices
// is populated, selected by Kind. Missing numbers are NaN and missing times are
// the zero time.
type Column struct {
	Name string
	Kind Kind

	numbers []float64
	strings []string
	times   []time.Time
	bools   []bool
	missing []bool
}

// NewNumberColumn builds a numeric column. NaN marks a missing value.
func NewNumberColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: KindNumber, numbers: append([]float64(nil), values...)}
}

// NewStringColumn builds a categorical column.
func NewStringColumn(name string, values []string) *Column {
	return &Column{Name: name, Kind: KindString, strings: append([]string(nil), values...)}
}

// NewTimeColumn builds a temporal column. Zero times are treated as missing.
func NewTimeColumn(name string, values []time.Time) *Column {
	return &Column{Name: name, Kind: KindTime, times: append([]time.Time(nil), values...)}
}

// NewBoolColumn builds a boolean column. The optional missing mask flags rows
// that carried no value in the source.
func NewBoolColumn(name string, values []bool, missing []bool) *Column {
	col := &Column{Name: name, Kind: KindBool, bools: append([]bool(nil), values...)}
	if len(missing) == len(values) {
		col.missing = append([]bool(nil), missing...)
	}
	return col
}

// Len returns the number of rows held by the column.
func (c *Column) Len() int {
	if c == nil {
		return 0
	}
	switch c.Kind {
	case KindNumber:
		return len(c.numbers)
	case KindString:
		return len(c.strings)
	case KindTime:
		return len(c.times)
	case KindBool:
		return len(c.bools)
	default:
		return 0
	}
}

// Numeric reports whether the column holds numbers.
func (c *Column) Numeric() bool {
	return c != nil && c.Kind == KindNumber
}

// Missing reports whether row i has no value.
func (c *Column) Missing(i int) bool {
	switch c.Kind {
	case KindNumber:
		return math.IsNaN(c.numbers[i])
	case KindString:
		return false
	case KindTime:
		return c.times[i].IsZero()
	case KindBool:
		return c.missing != nil && c.missing[i]
	default:
		return true
	}
}

// Value returns row i as a JSON friendly value: float64, string, RFC3339
// string or bool. Missing values are returned as nil.
func (c *Column) Value(i int) any {
	if c.Missing(i) {
		return nil
	}
	switch c.Kind {
	case KindNumber:
		return c.numbers[i]
	case KindString:
		return c.strings[i]
	case KindTime:
		return formatTime(c.times[i])
	case KindBool:
		return c.bools[i]
	default:
		return nil
	}
}

// Key returns a comparable representation of row i, suitable for grouping.
// Times are normalised to UTC so equal instants share a key.
func (c *Column) Key(i int) any {
	if c.Missing(i) {
		return nil
	}
	switch c.Kind {
	case KindNumber:
		return c.numbers[i]
	case KindString:
		return c.strings[i]
	case KindTime:
		return c.times[i].UTC()
	case KindBool:
		return c.bools[i]
	default:
		return nil
	}
}

// Values returns every row through Value.
func (c *Column) Values() []any {
	out := make([]any, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}

// Float returns row i as a float64. Booleans map to 0/1 and times to Unix
// milliseconds; strings are parsed. The second result is false when the row
// is missing or not convertible.
func (c *Column) Float(i int) (float64, bool) {
	if c.Missing(i) {
		return 0, false
	}
	switch c.Kind {
	case KindNumber:
		return c.numbers[i], true
	case KindTime:
		return float64(c.times[i].UnixMilli()), true
	case KindBool:
		if c.bools[i] {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := strconv.ParseFloat(c.strings[i], 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Floats returns the numeric storage (NaN for missing). Non-numeric columns are
// converted through Float.
func (c *Column) Floats() []float64 {
	if c.Kind == KindNumber {
		return append([]float64(nil), c.numbers...)
	}
	out := make([]float64, c.Len())
	for i := range out {
		f, ok := c.Float(i)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}

// String returns row i formatted for labels and legend entries.
func (c *Column) String(i int) string {
	if c.Missing(i) {
		return ""
	}
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.numbers[i], 'g', -1, 64)
	case KindString:
		return c.strings[i]
	case KindTime:
		return formatTime(c.times[i])
	case KindBool:
		return strconv.FormatBool(c.bools[i])
	default:
		return ""
	}
}

// Time returns row i for temporal columns.
func (c *Column) Time(i int) (time.Time, bool) {
	if c.Kind != KindTime || c.Missing(i) {
		return time.Time{}, false
	}
	return c.times[i], true
}

// Bool returns row i for boolean columns.
func (c *Column) Bool(i int) (bool, bool) {
	if c.Kind != KindBool || c.Missing(i) {
		return false, false
	}
	return c.bools[i], true
}

// Distinct returns the distinct keys of the column in order of first
// appearance. Missing values are skipped.
func (c *Column) Distinct() []any {
	seen := make(map[any]struct{})
	var out []any
	for i := 0; i < c.Len(); i++ {
		key := c.Key(i)
		if key == nil {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// Cardinality returns the number of distinct non-missing values.
func (c *Column) Cardinality() int {
	return len(c.Distinct())
}

// Select returns a new column holding only the given rows, in order.
func (c *Column) Select(rows []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	switch c.Kind {
	case KindNumber:
		out.numbers = make([]float64, len(rows))
		for i, r := range rows {
			out.numbers[i] = c.numbers[r]
		}
	case KindString:
		out.strings = make([]string, len(rows))
		for i, r := range rows {
			out.strings[i] = c.strings[r]
		}
	case KindTime:
		out.times = make([]time.Time, len(rows))
		for i, r := range rows {
			out.times[i] = c.times[r]
		}
	case KindBool:
		out.bools = make([]bool, len(rows))
		if c.missing != nil {
			out.missing = make([]bool, len(rows))
		}
		for i, r := range rows {
			out.bools[i] = c.bools[r]
			if c.missing != nil {
				out.missing[i] = c.missing[r]
			}
		}
	}
	return out
}

// Rename returns a copy of the column carrying a new name.
func (c *Column) Rename(name string) *Column {
	clone := *c
	clone.Name = name
	return &clone
}

// GoString keeps fmt %#v output readable in test failures.
func (c *Column) GoString() string {
	return fmt.Sprintf("dataset.Column{Name:%q, Kind:%q, Len:%d}", c.Name, c.Kind, c.Len())
}

// KeyString formats a grouping key produced by Key.
func KeyString(key any) string {
	switch v := key.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return formatTime(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
