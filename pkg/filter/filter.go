// Package filter narrows a dataset frame to the rows matching a boolean
// expression before figures are assembled.
package filter

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-chartgen/pkg/dataset"
)

// Row exposes the values of a single dataset row to an Evaluator.
type Row interface {
	Lookup(column string) (any, bool)
}

// Evaluator decides whether a row satisfies an expression.
type Evaluator interface {
	Eval(expression string, row Row) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(expression string, row Row) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(expression string, row Row) (bool, error) {
	return fn(expression, row)
}

// Apply returns the rows of frame for which expression holds. An empty
// expression returns frame unchanged.
func Apply(frame *dataset.Frame, expression string, evaluator Evaluator) (*dataset.Frame, error) {
	if strings.TrimSpace(expression) == "" {
		return frame, nil
	}
	if frame == nil {
		return nil, fmt.Errorf("filter: frame is nil")
	}
	if evaluator == nil {
		return nil, fmt.Errorf("filter: evaluator is nil")
	}
	out, err := frame.Filter(func(i int) (bool, error) {
		return evaluator.Eval(expression, frameRow{frame: frame, index: i})
	})
	if err != nil {
		return nil, fmt.Errorf("filter: %q: %w", expression, err)
	}
	return out, nil
}

type frameRow struct {
	frame *dataset.Frame
	index int
}

func (r frameRow) Lookup(column string) (any, bool) {
	col, err := r.frame.Column(column)
	if err != nil {
		return nil, false
	}
	return col.Value(r.index), true
}

// MapRow adapts a plain map into a Row.
type MapRow map[string]any

// Lookup returns the value stored under column.
func (m MapRow) Lookup(column string) (any, bool) {
	v, ok := m[column]
	return v, ok
}
