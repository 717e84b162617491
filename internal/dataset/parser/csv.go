package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

func decodeCSV(raw []byte, comma rune) (map[string][]any, []string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))))
	reader.Comma = comma
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("csv: missing header row")
		}
		return nil, nil, fmt.Errorf("csv: read header: %w", err)
	}

	order := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		if _, dup := seen[name]; dup {
			return nil, nil, fmt.Errorf("csv: duplicate header %q", name)
		}
		seen[name] = struct{}{}
		order[i] = name
	}

	columns := make(map[string][]any, len(order))
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		for i, name := range order {
			var value any
			if i < len(record) {
				value = record[i]
			}
			columns[name] = append(columns[name], value)
		}
	}
	for _, name := range order {
		if columns[name] == nil {
			columns[name] = []any{}
		}
	}
	return columns, order, nil
}
