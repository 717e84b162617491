package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the pure Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

func loadSQL(ctx context.Context, driver, dsn, query string, maxRows int) ([]map[string]any, []string, error) {
	if dsn == "" {
		return nil, nil, errors.New("sql dsn is required")
	}
	if query == "" {
		return nil, nil, errors.New("sql query is required")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}

	var records []map[string]any
	for rows.Next() {
		if maxRows > 0 && len(records) >= maxRows {
			break
		}
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		record := make(map[string]any, len(columns))
		for i, name := range columns {
			record[name] = normaliseSQLValue(values[i])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows: %w", err)
	}
	return records, columns, nil
}

func normaliseSQLValue(value any) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	default:
		return v
	}
}
