package chartdoc

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartgen/pkg/colors"
	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/express"
)

func loadFixtures(t *testing.T) *Store {
	t.Helper()
	store, err := LoadFS(context.Background(), os.DirFS("testdata/charts"))
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	return store
}

func TestLoadFSIndexesCharts(t *testing.T) {
	store := loadFixtures(t)

	want := []string{"revenue-by-region", "revenue-trend", "stores"}
	if diff := cmp.Diff(want, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if store.Len() != 3 || len(store.All()) != 3 {
		t.Fatalf("expected 3 charts, got %d", store.Len())
	}
}

func TestLoadFSAppliesDefaultsAndNormalises(t *testing.T) {
	store := loadFixtures(t)

	chart, err := store.Get("revenue-by-region")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if chart.Kind != string(express.KindBar) {
		t.Fatalf("expected normalised kind bar, got %q", chart.Kind)
	}
	if chart.Title != "Revenue <b>2024</b>" {
		t.Fatalf("unexpected sanitised title %q", chart.Title)
	}
	if chart.Renderer != "html" || chart.Theme != "corporate" {
		t.Fatalf("defaults not applied: renderer=%q theme=%q", chart.Renderer, chart.Theme)
	}
	if chart.Document != "sales.yaml" {
		t.Fatalf("unexpected document path %q", chart.Document)
	}

	trend, err := store.Get("revenue-trend")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if trend.Description != "Monthly revenue, **net** of refunds." {
		t.Fatalf("unexpected description %q", trend.Description)
	}
	if trend.Renderer != "png" {
		t.Fatalf("chart renderer should win over defaults, got %q", trend.Renderer)
	}
	if trend.Width != 640 || trend.Height != 360 {
		t.Fatalf("unexpected size %dx%d", trend.Width, trend.Height)
	}
}

func TestChartArgsResolvesPalettes(t *testing.T) {
	store := loadFixtures(t)

	chart, _ := store.Get("revenue-by-region")
	args, err := chart.Args()
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	set2, _ := colors.Sequence("Set2")
	if diff := cmp.Diff(set2, args.ColorDiscreteSequence); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}
	if args.X != "region" || args.Y != "revenue" || args.Color != "segment" || args.BarMode != "group" {
		t.Fatalf("unexpected mappings %+v", args)
	}
	if args.Title != "Revenue <b>2024</b>" {
		t.Fatalf("title not forwarded: %q", args.Title)
	}

	stores, _ := store.Get("stores")
	args, err = stores.Args()
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	if diff := cmp.Diff([]string{"#000000", "#ffffff"}, args.ColorContinuousScale); diff != "" {
		t.Fatalf("scale mismatch (-want +got):\n%s", diff)
	}
	if args.Center == nil || args.Center.Lat != 40.4 || args.Center.Lon != -3.7 {
		t.Fatalf("unexpected center %+v", args.Center)
	}
	if args.Zoom != 4 {
		t.Fatalf("unexpected zoom %v", args.Zoom)
	}

	trend, _ := store.Get("revenue-trend")
	args, _ = trend.Args()
	if diff := cmp.Diff([]float64{0, 500}, args.RangeY); diff != "" {
		t.Fatalf("range mismatch (-want +got):\n%s", diff)
	}
	if args.Width != 640 {
		t.Fatalf("width not forwarded: %d", args.Width)
	}
}

func TestChartArgsRejectsUnknownPalette(t *testing.T) {
	chart := Chart{ID: "c", Spec: ChartArgs{ColorDiscreteSequence: Palette{Name: "NoSuchPalette"}}}
	if _, err := chart.Args(); err == nil || !strings.Contains(err.Error(), "NoSuchPalette") {
		t.Fatalf("expected unknown palette error, got %v", err)
	}
}

func TestChartDataSource(t *testing.T) {
	store := loadFixtures(t)

	chart, _ := store.Get("revenue-by-region")
	src, err := chart.DataSource()
	if err != nil {
		t.Fatalf("DataSource: %v", err)
	}
	if src.Kind() != dataset.SourceKindFS || src.Location() != "data/sales.csv" {
		t.Fatalf("unexpected source %s %s", src.Kind(), src.Location())
	}

	stores, _ := store.Get("stores")
	src, err = stores.DataSource()
	if err != nil {
		t.Fatalf("DataSource: %v", err)
	}
	sql, ok := src.(dataset.SQLSource)
	if !ok {
		t.Fatalf("expected SQL source, got %T", src)
	}
	if sql.DSN != "stores.db" || sql.Query != "SELECT lat, lon FROM stores" {
		t.Fatalf("unexpected sql source %+v", sql)
	}

	nested := Chart{ID: "n", Source: "fs:points.csv", Document: "nested/geo.json"}
	src, _ = nested.DataSource()
	if src.Location() != "nested/points.csv" {
		t.Fatalf("relative fs source should resolve next to the document, got %q", src.Location())
	}
	rooted := Chart{ID: "r", Source: "fs:/points.csv", Document: "nested/geo.json"}
	src, _ = rooted.DataSource()
	if src.Location() != "points.csv" {
		t.Fatalf("rooted fs source should ignore the document dir, got %q", src.Location())
	}

	if _, err := (Chart{ID: "empty"}).DataSource(); err == nil {
		t.Fatalf("expected error for missing source")
	}
}

func TestLoadFSRejectsDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("charts:\n  - id: dup\n    kind: scatter\n")},
		"b.yml":  {Data: []byte("charts:\n  - id: dup\n    kind: line\n")},
	}
	_, err := LoadFS(context.Background(), fsys)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestParseReportsSchemaViolations(t *testing.T) {
	raw := []byte(`
charts:
  - id: bad
    kind: scatter
    args:
      x: a
      orientation: diagonal
      unknown_option: true
      range_x: [1]
`)
	_, err := Parse(context.Background(), "bad.yaml", raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Document != "bad.yaml" {
		t.Fatalf("unexpected document %q", verr.Document)
	}
	if len(verr.Issues) < 3 {
		t.Fatalf("expected every violation reported, got %v", verr.Issues)
	}
	joined := strings.Join(verr.Issues, "\n")
	for _, fragment := range []string{"orientation", "unknown_option", "range_x"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected issue mentioning %q in:\n%s", fragment, joined)
		}
	}
}

func TestParseRejectsMissingFields(t *testing.T) {
	cases := map[string]string{
		"no charts":  "defaults:\n  renderer: json\n",
		"no kind":    "charts:\n  - id: a\n",
		"bad id":     "charts:\n  - id: '-a'\n    kind: bar\n",
		"empty list": "charts: []\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(context.Background(), "doc.yaml", []byte(raw))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := Parse(context.Background(), "doc.yaml", []byte("charts:\n  - id: a\n    kind: sunburst\n"))
	if err == nil || !strings.Contains(err.Error(), "sunburst") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	if _, err := Parse(context.Background(), "empty.yaml", []byte("  \n")); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore()
	if _, err := store.Get("missing"); !errors.Is(err, ErrChartNotFound) {
		t.Fatalf("expected ErrChartNotFound, got %v", err)
	}
}

func TestSanitizeTitle(t *testing.T) {
	cases := map[string]string{
		"":                                     "",
		"  plain  ":                            "plain",
		"<script>alert(1)</script>Totals":      "Totals",
		`<span style="x">x<sup>2</sup></span>`: "x<sup>2</sup>",
	}
	for in, want := range cases {
		if got := SanitizeTitle(in); got != want {
			t.Fatalf("SanitizeTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSchemaSourceIsOpenAPI(t *testing.T) {
	if !strings.HasPrefix(string(SchemaSource()), "openapi: 3.0.3") {
		t.Fatalf("unexpected schema header")
	}
}

func TestDescriptionHTML(t *testing.T) {
	if got := DescriptionHTML("   "); got != "" {
		t.Fatalf("expected empty description, got %q", got)
	}

	got := DescriptionHTML("Revenue is **net** of refunds.\n\n<script>alert(1)</script>\n\nSee [the ledger](https://example.com/ledger).")
	for _, want := range []string{"<strong>net</strong>", `href="https://example.com/ledger"`, `target="_blank"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("description %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "<script") {
		t.Fatalf("script survived sanitising: %q", got)
	}
}
