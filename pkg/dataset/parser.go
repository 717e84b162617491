package dataset

import "context"

// Parser decodes dataset documents into frames.
type Parser interface {
	Parse(ctx context.Context, doc Document) (*Frame, error)
}

// ParserOptions exposes decoding toggles.
type ParserOptions struct {
	// Comma overrides the CSV field delimiter. Zero selects ',' (or '\t' for
	// .tsv sources).
	Comma rune

	// Kinds forces the kind of specific columns instead of inferring it.
	Kinds map[string]Kind
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithComma sets the CSV delimiter.
func WithComma(r rune) ParserOption {
	return func(opts *ParserOptions) {
		opts.Comma = r
	}
}

// WithColumnKind pins the kind of a column, skipping inference.
func WithColumnKind(name string, kind Kind) ParserOption {
	return func(opts *ParserOptions) {
		if opts.Kinds == nil {
			opts.Kinds = make(map[string]Kind)
		}
		opts.Kinds[name] = kind
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
