package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// Format names the encoding of a raw dataset payload.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatRecords Format = "records"
	FormatUnknown Format = ""
)

// Document wraps a raw dataset payload and its origin. Loaders that already
// hold structured rows (SQL) attach them as Records instead of Raw bytes.
type Document struct {
	source  Source
	format  Format
	raw     []byte
	records []map[string]any
	order   []string
}

// NewDocument constructs a Document from bytes, detecting the format from the
// source location first and the payload second.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("dataset: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("dataset: raw document is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: DetectFormat(src.Location(), clone)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// NewRecordsDocument wraps rows that were materialised by the loader.
func NewRecordsDocument(src Source, records []map[string]any, order []string) (Document, error) {
	if src == nil {
		return Document{}, errors.New("dataset: source is required")
	}
	return Document{
		source:  src,
		format:  FormatRecords,
		records: records,
		order:   append([]string(nil), order...),
	}, nil
}

// WithFormat returns a copy of the document with an explicit format.
func (d Document) WithFormat(format Format) Document {
	d.format = format
	return d
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source { return d.source }

// Format returns the detected or assigned format.
func (d Document) Format() Format { return d.format }

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Records returns the structured rows attached by the loader, if any.
func (d Document) Records() ([]map[string]any, []string) {
	return d.records, append([]string(nil), d.order...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// DetectFormat guesses the payload encoding from a file extension, falling
// back to sniffing the first non-space byte.
func DetectFormat(location string, raw []byte) Format {
	switch strings.ToLower(filepath.Ext(stripQuery(location))) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".json", ".ndjson":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	switch trimmed[0] {
	case '[', '{':
		return FormatJSON
	case '-':
		return FormatYAML
	}
	return FormatCSV
}

func stripQuery(location string) string {
	if idx := strings.IndexAny(location, "?#"); idx >= 0 {
		return location[:idx]
	}
	return location
}
