package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumnNotFound is returned when a frame lookup names an unknown column.
var ErrColumnNotFound = errors.New("dataset: column not found")

// Frame is an ordered collection of equally sized columns. Frames are treated
// as immutable once built; row selections return new frames.
type Frame struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewFrame assembles columns into a frame, rejecting empty or duplicate names
// and ragged lengths.
func NewFrame(columns ...*Column) (*Frame, error) {
	frame := &Frame{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col == nil {
			return nil, fmt.Errorf("dataset: column %d is nil", i)
		}
		name := strings.TrimSpace(col.Name)
		if name == "" {
			return nil, fmt.Errorf("dataset: column %d has an empty name", i)
		}
		if !col.Kind.Valid() {
			return nil, fmt.Errorf("dataset: column %q has unsupported kind %q", name, col.Kind)
		}
		if _, exists := frame.index[name]; exists {
			return nil, fmt.Errorf("dataset: duplicate column %q", name)
		}
		if i == 0 {
			frame.rows = col.Len()
		} else if col.Len() != frame.rows {
			return nil, fmt.Errorf("dataset: column %q has %d rows, expected %d", name, col.Len(), frame.rows)
		}
		frame.index[name] = len(frame.columns)
		frame.columns = append(frame.columns, col)
	}
	return frame, nil
}

// MustNewFrame panics when NewFrame fails. Useful for fixtures.
func MustNewFrame(columns ...*Column) *Frame {
	frame, err := NewFrame(columns...)
	if err != nil {
		panic(err)
	}
	return frame
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return f.rows
}

// Columns returns the columns in declaration order.
func (f *Frame) Columns() []*Column {
	if f == nil {
		return nil
	}
	return append([]*Column(nil), f.columns...)
}

// Names returns the column names in declaration order.
func (f *Frame) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// Has reports whether the frame holds a column called name.
func (f *Frame) Has(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.index[name]
	return ok
}

// Column returns the named column or ErrColumnNotFound.
func (f *Frame) Column(name string) (*Column, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	idx, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return f.columns[idx], nil
}

// MustColumn panics when the column is missing.
func (f *Frame) MustColumn(name string) *Column {
	col, err := f.Column(name)
	if err != nil {
		panic(err)
	}
	return col
}

// Row returns row i keyed by column name using Column.Value.
func (f *Frame) Row(i int) map[string]any {
	row := make(map[string]any, len(f.columns))
	for _, col := range f.columns {
		row[col.Name] = col.Value(i)
	}
	return row
}

// Select returns a frame restricted to the given rows.
func (f *Frame) Select(rows []int) *Frame {
	columns := make([]*Column, len(f.columns))
	for i, col := range f.columns {
		columns[i] = col.Select(rows)
	}
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col.Name] = i
	}
	return &Frame{columns: columns, index: index, rows: len(rows)}
}

// Filter keeps the rows for which keep returns true. The first error aborts
// the scan.
func (f *Frame) Filter(keep func(row int) (bool, error)) (*Frame, error) {
	rows := make([]int, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		ok, err := keep(i)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, i)
		}
	}
	return f.Select(rows), nil
}

// Distinct returns the distinct keys of a column in order of first appearance.
func (f *Frame) Distinct(name string) ([]any, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	return col.Distinct(), nil
}

// With returns a frame carrying an extra (or replaced) column.
func (f *Frame) With(col *Column) (*Frame, error) {
	columns := make([]*Column, 0, len(f.columns)+1)
	replaced := false
	for _, existing := range f.columns {
		if existing.Name == col.Name {
			columns = append(columns, col)
			replaced = true
			continue
		}
		columns = append(columns, existing)
	}
	if !replaced {
		columns = append(columns, col)
	}
	return NewFrame(columns...)
}
