package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartgen/pkg/dataset"
)

func parse(t *testing.T, location, raw string, options ...dataset.ParserOption) *dataset.Frame {
	t.Helper()
	doc, err := dataset.NewDocument(dataset.SourceFromFile(location), []byte(raw))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	frame, err := New(dataset.NewParserOptions(options...)).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return frame
}

func TestParseCSV(t *testing.T) {
	raw := "\xef\xbb\xbfmonth, region,revenue,promo\n2024-01-01,north,120,true\n2024-02-01,south,NA,false\n2024-03-01,north,200\n"
	frame := parse(t, "sales.csv", raw)

	if diff := cmp.Diff([]string{"month", "region", "revenue", "promo"}, frame.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	kinds := map[string]dataset.Kind{}
	for _, col := range frame.Columns() {
		kinds[col.Name] = col.Kind
	}
	want := map[string]dataset.Kind{
		"month":   dataset.KindTime,
		"region":  dataset.KindString,
		"revenue": dataset.KindNumber,
		"promo":   dataset.KindBool,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{120.0, nil, 200.0}, frame.MustColumn("revenue").Values()); diff != "" {
		t.Fatalf("revenue (-want +got):\n%s", diff)
	}
	if !frame.MustColumn("promo").Missing(2) {
		t.Fatalf("short record should leave promo missing")
	}
}

func TestParseCSVOptions(t *testing.T) {
	frame := parse(t, "codes.txt", "code;label\n001;a\n002;b\n",
		dataset.WithComma(';'),
		dataset.WithColumnKind("code", dataset.KindString),
	)
	if diff := cmp.Diff([]any{"001", "002"}, frame.MustColumn("code").Values()); diff != "" {
		t.Fatalf("pinned string column (-want +got):\n%s", diff)
	}

	tsv := parse(t, "sales.tsv", "a\tb\n1\t2\n")
	if diff := cmp.Diff([]string{"a", "b"}, tsv.Names()); diff != "" {
		t.Fatalf("tsv names (-want +got):\n%s", diff)
	}

	headerOnly := parse(t, "empty.csv", "a,,c\n")
	if headerOnly.Len() != 0 || headerOnly.Names()[1] != "column_1" {
		t.Fatalf("unexpected header-only frame %v", headerOnly.Names())
	}
}

func TestParseJSONRecordsKeepsKeyOrder(t *testing.T) {
	raw := `[{"zeta": "a", "alpha": 1, "mid": true}, {"zeta": "b", "alpha": 2.5, "extra": "x"}]`
	frame := parse(t, "rows.json", raw)
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid", "extra"}, frame.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{1.0, 2.5}, frame.MustColumn("alpha").Values()); diff != "" {
		t.Fatalf("alpha (-want +got):\n%s", diff)
	}
}

func TestParseJSONColumnsAndData(t *testing.T) {
	columns := parse(t, "cols.json", `{"y": [3, 4], "x": ["a", "b"]}`)
	if diff := cmp.Diff([]string{"y", "x"}, columns.Names()); diff != "" {
		t.Fatalf("column object order (-want +got):\n%s", diff)
	}

	wrapped := parse(t, "wrapped.json", `{"meta": {}, "data": [{"b": 1, "a": 2}]}`)
	if diff := cmp.Diff([]string{"b", "a"}, wrapped.Names()); diff != "" {
		t.Fatalf("data envelope order (-want +got):\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	raw := "- city: Oslo\n  temp: -3\n- city: Lima\n  temp: 19\n"
	frame := parse(t, "weather.yaml", raw)
	if diff := cmp.Diff([]string{"city", "temp"}, frame.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if frame.MustColumn("temp").Kind != dataset.KindNumber {
		t.Fatalf("temp should be numeric")
	}

	columns := parse(t, "cols.yml", "b: [1, 2]\na: [x, y]\n")
	if diff := cmp.Diff([]string{"b", "a"}, columns.Names()); diff != "" {
		t.Fatalf("yaml column order (-want +got):\n%s", diff)
	}
}

func TestParseRecordsDocument(t *testing.T) {
	doc, err := dataset.NewRecordsDocument(dataset.SourceFromSQL("app.db", "select"), []map[string]any{
		{"id": int64(1), "name": "a"},
		{"id": int64(2), "name": "b"},
	}, []string{"name", "id"})
	if err != nil {
		t.Fatalf("NewRecordsDocument: %v", err)
	}
	frame, err := New(dataset.NewParserOptions()).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "id"}, frame.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, frame.MustColumn("id").Values()); diff != "" {
		t.Fatalf("id (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		location string
		raw      string
		want     string
	}{
		"duplicate header": {"a.csv", "a,a\n1,2\n", "duplicate header"},
		"bad quote":        {"a.csv", "a\n\"x\n", "line 2"},
		"json scalar":      {"a.json", `"text"`, "expected an array"},
		"json not record":  {"a.json", `[1, 2]`, "record 0 is not an object"},
		"ragged columns":   {"a.json", `{"a": [1], "b": [1, 2]}`, "expected 1"},
		"column not array": {"a.json", `{"a": 1}`, "is not an array"},
		"bad yaml":         {"a.yaml", "a: [1, 2\n", "yaml"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := dataset.NewDocument(dataset.SourceFromFile(tc.location), []byte(tc.raw))
			if err != nil {
				t.Fatalf("NewDocument: %v", err)
			}
			_, err = New(dataset.ParserOptions{}).Parse(context.Background(), doc)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
			if !strings.Contains(err.Error(), tc.location) {
				t.Fatalf("error should name the source: %v", err)
			}
		})
	}
}

func TestParseCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := dataset.MustNewDocument(dataset.SourceFromFile("a.csv"), []byte("a\n1\n"))
	if _, err := New(dataset.ParserOptions{}).Parse(ctx, doc); err == nil {
		t.Fatalf("expected context error")
	}
}
