package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-chartgen/pkg/dataset"
)

// Parser implements dataset.Parser for CSV, JSON, YAML and pre-materialised
// record documents.
type Parser struct {
	opts dataset.ParserOptions
}

var _ dataset.Parser = (*Parser)(nil)

// New constructs a Parser from resolved options.
func New(options dataset.ParserOptions) *Parser {
	return &Parser{opts: options}
}

// Parse decodes the document into a frame.
func (p *Parser) Parse(ctx context.Context, doc dataset.Document) (*dataset.Frame, error) {
	if ctx == nil {
		return nil, errors.New("dataset parser: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		columns map[string][]any
		order   []string
		err     error
	)

	switch doc.Format() {
	case dataset.FormatCSV:
		columns, order, err = decodeCSV(doc.Raw(), p.comma(doc.Location()))
	case dataset.FormatJSON:
		columns, order, err = decodeJSON(doc.Raw())
	case dataset.FormatYAML:
		columns, order, err = decodeYAML(doc.Raw())
	case dataset.FormatRecords:
		records, recordOrder := doc.Records()
		columns, order = recordsToColumns(records, recordOrder)
	default:
		return nil, fmt.Errorf("dataset parser: unsupported format %q for %s", doc.Format(), doc.Location())
	}
	if err != nil {
		return nil, fmt.Errorf("dataset parser: %s: %w", doc.Location(), err)
	}

	built := make([]*dataset.Column, 0, len(order))
	for _, name := range order {
		values := columns[name]
		if kind, ok := p.opts.Kinds[name]; ok && kind.Valid() {
			built = append(built, dataset.ColumnOfKind(name, kind, values))
			continue
		}
		built = append(built, dataset.ColumnFromValues(name, values))
	}

	frame, err := dataset.NewFrame(built...)
	if err != nil {
		return nil, fmt.Errorf("dataset parser: %s: %w", doc.Location(), err)
	}
	return frame, nil
}

func (p *Parser) comma(location string) rune {
	if p.opts.Comma != 0 {
		return p.opts.Comma
	}
	if strings.HasSuffix(strings.ToLower(location), ".tsv") {
		return '\t'
	}
	return ','
}

func recordsToColumns(records []map[string]any, order []string) (map[string][]any, []string) {
	names := append([]string(nil), order...)
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}
	for _, record := range records {
		for _, key := range sortedKeys(record) {
			if _, ok := known[key]; ok {
				continue
			}
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
	return columns, names
}
