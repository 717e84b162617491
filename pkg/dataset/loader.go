package dataset

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches dataset documents from files, fs.FS, HTTP or SQLite.
// Implementations live under internal/dataset but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading SourceKindFS entries.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour. Nil means
	// HTTP sources are disabled unless AllowHTTPFallback is true.
	HTTPClient *http.Client

	// AllowHTTPFallback toggles a default HTTP client when none is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// SQLDriver names the database/sql driver used for SQL sources. Defaults
	// to the pure Go "sqlite" driver.
	SQLDriver string

	// MaxRows caps the rows materialised from SQL sources; zero means no cap.
	MaxRows int
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceFromFS entries.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote datasets.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithSQLDriver overrides the database/sql driver name for SQL sources.
func WithSQLDriver(name string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.SQLDriver = name
	}
}

// WithMaxRows caps SQL result sets.
func WithMaxRows(n int) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxRows = n
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{SQLDriver: "sqlite"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.SQLDriver == "" {
		cfg.SQLDriver = "sqlite"
	}
	return cfg
}
