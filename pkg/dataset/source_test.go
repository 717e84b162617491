package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		raw      string
		kind     SourceKind
		location string
	}{
		{"data/sales.csv", SourceKindFile, "data/sales.csv"},
		{" ./data//sales.csv ", SourceKindFile, "data/sales.csv"},
		{"https://example.com/sales.json", SourceKindURL, "https://example.com/sales.json"},
		{"sqlite:sales.db?query=select+*+from+sales", SourceKindSQL, "sales.db"},
	}
	for _, tc := range cases {
		src, err := ParseSource(tc.raw)
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", tc.raw, err)
		}
		if src.Kind() != tc.kind || src.Location() != tc.location {
			t.Fatalf("ParseSource(%q) = %s %q", tc.raw, src.Kind(), src.Location())
		}
	}

	src, _ := ParseSource("sqlite:sales.db?query=select+region%2C+revenue+from+sales")
	if diff := cmp.Diff(SQLSource{DSN: "sales.db", Query: "select region, revenue from sales"}, src); diff != "" {
		t.Fatalf("sql source (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"", "  ", "sqlite:sales.db", "sqlite:sales.db?query="} {
		if _, err := ParseSource(bad); err == nil {
			t.Fatalf("ParseSource(%q) should fail", bad)
		}
	}
}

func TestSourceFromURLPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid URL")
		}
	}()
	SourceFromURL("not a url")
}

func TestDocumentFormatDetection(t *testing.T) {
	cases := []struct {
		location string
		raw      string
		want     Format
	}{
		{"sales.csv", "a,b\n1,2", FormatCSV},
		{"sales.TSV", "a\tb", FormatCSV},
		{"https://host/sales.json?token=1", "[]", FormatJSON},
		{"sales.yml", "- a: 1", FormatYAML},
		{"stdin", `{"a":[1]}`, FormatJSON},
		{"stdin", "- a: 1", FormatYAML},
		{"stdin", "a,b", FormatCSV},
	}
	for _, tc := range cases {
		doc, err := NewDocument(SourceFromFile(tc.location), []byte(tc.raw))
		if err != nil {
			t.Fatalf("NewDocument(%q): %v", tc.location, err)
		}
		if doc.Format() != tc.want {
			t.Fatalf("format for %q = %q, want %q", tc.location, doc.Format(), tc.want)
		}
	}

	if _, err := NewDocument(nil, []byte("a")); err == nil {
		t.Fatalf("expected missing source error")
	}
	if _, err := NewDocument(SourceFromFile("x.csv"), []byte("  \n")); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestDocumentCopiesPayload(t *testing.T) {
	raw := []byte("a,b\n1,2")
	doc := MustNewDocument(SourceFromFile("x.csv"), raw)
	raw[0] = 'z'
	if string(doc.Raw()) != "a,b\n1,2" {
		t.Fatalf("document should copy its payload")
	}
	out := doc.Raw()
	out[0] = 'q'
	if doc.Raw()[0] != 'a' {
		t.Fatalf("Raw should return a copy")
	}
	if doc.WithFormat(FormatJSON).Format() != FormatJSON || doc.Format() != FormatCSV {
		t.Fatalf("WithFormat should not mutate the receiver")
	}
}

func TestRecordsDocument(t *testing.T) {
	src := SourceFromSQL(" app.db ", " select 1 ")
	doc, err := NewRecordsDocument(src, []map[string]any{{"a": 1}}, []string{"a"})
	if err != nil {
		t.Fatalf("NewRecordsDocument: %v", err)
	}
	records, order := doc.Records()
	if doc.Format() != FormatRecords || len(records) != 1 || order[0] != "a" {
		t.Fatalf("unexpected records document %v %v", records, order)
	}
	if doc.Location() != "app.db" {
		t.Fatalf("location = %q", doc.Location())
	}
}

func TestLoaderOptionsDefaults(t *testing.T) {
	opts := NewLoaderOptions(nil, WithSQLDriver(""), WithMaxRows(10))
	if opts.SQLDriver != "sqlite" || opts.MaxRows != 10 || opts.AllowHTTPFallback {
		t.Fatalf("unexpected options %+v", opts)
	}
	parser := NewParserOptions(WithComma(';'), WithColumnKind("id", KindString))
	if parser.Comma != ';' || parser.Kinds["id"] != KindString {
		t.Fatalf("unexpected parser options %+v", parser)
	}
}
