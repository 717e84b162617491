package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-chartgen/pkg/dataset"
)

// Loader implements dataset.Loader by delegating to file, fs.FS, HTTP or SQL
// strategies. Construction helpers live in the top-level chartgen package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	driver    string
	maxRows   int
}

var _ dataset.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options dataset.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	driver := options.SQLDriver
	if driver == "" {
		driver = "sqlite"
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		driver:    driver,
		maxRows:   options.MaxRows,
	}
}

// Load fetches a document from the provided source.
func (l *Loader) Load(ctx context.Context, src dataset.Source) (dataset.Document, error) {
	if src == nil {
		return dataset.Document{}, errors.New("dataset loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case dataset.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case dataset.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case dataset.SourceKindURL:
		if !l.allowHTTP {
			return dataset.Document{}, errors.New("dataset loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case dataset.SourceKindSQL:
		sqlSrc, ok := src.(dataset.SQLSource)
		if !ok {
			return dataset.Document{}, fmt.Errorf("dataset loader: sql source has unexpected type %T", src)
		}
		records, order, err := loadSQL(ctx, l.driver, sqlSrc.DSN, sqlSrc.Query, l.maxRows)
		if err != nil {
			return dataset.Document{}, fmt.Errorf("dataset loader: %w", err)
		}
		return dataset.NewRecordsDocument(src, records, order)
	default:
		err = errors.New("dataset loader: unsupported source kind")
	}
	if err != nil {
		return dataset.Document{}, err
	}

	return dataset.NewDocument(src, data)
}
