package filter_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/filter"
	"github.com/goliatone/go-chartgen/pkg/filter/expr"
)

func frame(t *testing.T) *dataset.Frame {
	t.Helper()
	return dataset.MustNewFrame(
		dataset.NewStringColumn("region", []string{"north", "south", "north"}),
		dataset.NewNumberColumn("revenue", []float64{120, 90, 200}),
	)
}

func TestApplyWithExpressions(t *testing.T) {
	source := frame(t)
	out, err := filter.Apply(source, `region == "north" && revenue > 150`, expr.New())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff([]any{200.0}, out.MustColumn("revenue").Values()); diff != "" {
		t.Fatalf("filtered revenue (-want +got):\n%s", diff)
	}
	if source.Len() != 3 {
		t.Fatalf("source frame should be untouched")
	}
}

func TestApplyEmptyExpressionIsIdentity(t *testing.T) {
	source := frame(t)
	out, err := filter.Apply(source, "   ", nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out != source {
		t.Fatalf("empty expression should return the frame unchanged")
	}
}

func TestApplyErrors(t *testing.T) {
	if _, err := filter.Apply(nil, "a", expr.New()); err == nil {
		t.Fatalf("expected nil frame error")
	}
	if _, err := filter.Apply(frame(t), "a", nil); err == nil {
		t.Fatalf("expected nil evaluator error")
	}

	boom := errors.New("boom")
	failing := filter.EvaluatorFunc(func(string, filter.Row) (bool, error) { return false, boom })
	_, err := filter.Apply(frame(t), "anything", failing)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped evaluator error, got %v", err)
	}
	if err.Error() != `filter: "anything": boom` {
		t.Fatalf("unexpected message %q", err)
	}

	if _, err := filter.Apply(frame(t), "profit > 1", expr.New()); err == nil {
		t.Fatalf("expected unknown column error")
	}
}

func TestEvaluatorFuncSeesRowValues(t *testing.T) {
	var seen []any
	record := filter.EvaluatorFunc(func(_ string, row filter.Row) (bool, error) {
		v, ok := row.Lookup("region")
		if !ok {
			return false, errors.New("region missing")
		}
		if _, ok := row.Lookup("nope"); ok {
			return false, errors.New("unexpected column")
		}
		seen = append(seen, v)
		return true, nil
	})
	if _, err := filter.Apply(frame(t), "x", record); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff([]any{"north", "south", "north"}, seen); diff != "" {
		t.Fatalf("row values (-want +got):\n%s", diff)
	}
}
