package dataset

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a dataset lives so loaders can operate on files,
// fs.FS entries, URLs or SQL queries without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
	SourceKindSQL  SourceKind = "sql"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("dataset: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("dataset: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// SQLSource describes a query executed against a SQLite database.
type SQLSource struct {
	DSN   string
	Query string
}

// Location returns the DSN; the query is exposed separately.
func (s SQLSource) Location() string { return s.DSN }

// Kind reports SourceKindSQL.
func (s SQLSource) Kind() SourceKind { return SourceKindSQL }

// SourceFromSQL returns a Source that runs query against the SQLite database
// identified by dsn.
func SourceFromSQL(dsn, query string) Source {
	return SQLSource{DSN: strings.TrimSpace(dsn), Query: strings.TrimSpace(query)}
}

// ParseSource maps a CLI style reference onto a Source: http(s) URLs become
// URL sources, `sqlite:<path>?query=<sql>` becomes a SQL source and anything
// else is treated as a file path.
func ParseSource(raw string) (Source, error) {
	ref := strings.TrimSpace(raw)
	switch {
	case ref == "":
		return nil, fmt.Errorf("dataset: empty source reference")
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if _, err := url.ParseRequestURI(ref); err != nil {
			return nil, fmt.Errorf("dataset: invalid URL %q: %w", ref, err)
		}
		return urlSource{raw: ref}, nil
	case strings.HasPrefix(ref, "sqlite:"):
		rest := strings.TrimPrefix(ref, "sqlite:")
		dsn, query, ok := strings.Cut(rest, "?query=")
		if !ok || strings.TrimSpace(query) == "" {
			return nil, fmt.Errorf("dataset: sqlite source %q requires ?query=", ref)
		}
		unescaped, err := url.QueryUnescape(query)
		if err != nil {
			return nil, fmt.Errorf("dataset: sqlite query: %w", err)
		}
		return SourceFromSQL(dsn, unescaped), nil
	default:
		return SourceFromFile(ref), nil
	}
}
