package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IsMissing reports whether a raw value should be treated as absent.
func IsMissing(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "na", "n/a", "nan", "null", "none":
			return true
		}
		return false
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	default:
		return false
	}
}

// InferKind picks the narrowest kind able to represent every non-missing
// value: number, then time, then bool, falling back to string.
func InferKind(values []any) Kind {
	number, temporal, boolean := true, true, true
	seen := false
	for _, value := range values {
		if IsMissing(value) {
			continue
		}
		seen = true
		if number {
			if _, ok := toFloat(value); !ok {
				number = false
			}
		}
		if temporal {
			if _, ok := toTime(value); !ok {
				temporal = false
			}
		}
		if boolean {
			if _, ok := toBool(value); !ok {
				boolean = false
			}
		}
		if !number && !temporal && !boolean {
			return KindString
		}
	}
	switch {
	case !seen:
		return KindString
	case number:
		return KindNumber
	case temporal:
		return KindTime
	case boolean:
		return KindBool
	default:
		return KindString
	}
}

// ColumnFromValues builds a column of the inferred kind from raw values.
func ColumnFromValues(name string, values []any) *Column {
	return ColumnOfKind(name, InferKind(values), values)
}

// ColumnOfKind converts raw values into a column of the requested kind.
// Values that cannot be converted become missing.
func ColumnOfKind(name string, kind Kind, values []any) *Column {
	switch kind {
	case KindNumber:
		out := make([]float64, len(values))
		for i, value := range values {
			f, ok := toFloat(value)
			if !ok || IsMissing(value) {
				f = math.NaN()
			}
			out[i] = f
		}
		return NewNumberColumn(name, out)
	case KindTime:
		out := make([]time.Time, len(values))
		for i, value := range values {
			if t, ok := toTime(value); ok {
				out[i] = t
			}
		}
		return NewTimeColumn(name, out)
	case KindBool:
		out := make([]bool, len(values))
		missing := make([]bool, len(values))
		for i, value := range values {
			b, ok := toBool(value)
			out[i] = b
			missing[i] = !ok || IsMissing(value)
		}
		return NewBoolColumn(name, out, missing)
	default:
		out := make([]string, len(values))
		for i, value := range values {
			if IsMissing(value) {
				continue
			}
			out[i] = stringify(value)
		}
		return NewStringColumn(name, out)
	}
}

// FrameFromRecords builds a frame from row maps. order fixes the column order;
// columns not listed are appended in first-seen order.
func FrameFromRecords(records []map[string]any, order []string) (*Frame, error) {
	names := append([]string(nil), order...)
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}
	for _, record := range records {
		extra := make([]string, 0)
		for key := range record {
			if _, ok := known[key]; ok {
				continue
			}
			extra = append(extra, key)
		}
		sort.Strings(extra)
		for _, key := range extra {
			known[key] = struct{}{}
			names = append(names, key)
		}
	}

	columns := make(map[string][]any, len(names))
	for _, name := range names {
		values := make([]any, len(records))
		for i, record := range records {
			values[i] = record[name]
		}
		columns[name] = values
	}
	return FrameFromColumns(columns, names)
}

// FrameFromColumns builds a frame from raw column slices, inferring kinds.
func FrameFromColumns(columns map[string][]any, order []string) (*Frame, error) {
	names := append([]string(nil), order...)
	if len(names) == 0 {
		for name := range columns {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	built := make([]*Column, 0, len(names))
	for _, name := range names {
		values, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		built = append(built, ColumnFromValues(name, values))
	}
	return NewFrame(built...)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		trimmed := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case []byte:
		return toTime(string(v))
	default:
		return time.Time{}, false
	}
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return formatTime(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
