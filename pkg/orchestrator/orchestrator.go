package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-chartgen/internal/dataset/loader"
	internalParser "github.com/goliatone/go-chartgen/internal/dataset/parser"
	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/express"
	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/filter"
	"github.com/goliatone/go-chartgen/pkg/filter/expr"
	"github.com/goliatone/go-chartgen/pkg/render"
	"github.com/goliatone/go-chartgen/pkg/renderers/echarts"
	"github.com/goliatone/go-chartgen/pkg/renderers/page"
	"github.com/goliatone/go-chartgen/pkg/renderers/plotlyjson"
	"github.com/goliatone/go-chartgen/pkg/renderers/static"
)

const (
	defaultRendererName = "html"
	defaultConcurrency  = 4
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom dataset loader.
func WithLoader(loader dataset.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom dataset parser.
func WithParser(parser dataset.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithKinds injects the chart kind registry used to dispatch requests.
func WithKinds(kinds *express.Registry) Option {
	return func(o *Orchestrator) {
		o.kinds = kinds
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that rewrites figures after the
// entry point ran but before decorators.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against every figure before
// rendering, after the theme decorator.
func WithDecorators(decorators ...figure.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithFilterEvaluator replaces the row filter expression evaluator.
func WithFilterEvaluator(evaluator filter.Evaluator) Option {
	return func(o *Orchestrator) {
		o.evaluator = evaluator
	}
}

// WithLogger routes pipeline diagnostics to logger. Nil restores the no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithConcurrency bounds how many requests GenerateAll renders at once.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		o.concurrency = n
	}
}

// Orchestrator coordinates the full pipeline from dataset source to rendered
// output. It applies sensible defaults (built-in loader and parser, the
// expression filter, every bundled renderer) while remaining open to
// dependency injection.
type Orchestrator struct {
	loader          dataset.Loader
	parser          dataset.Parser
	registry        *render.Registry
	kinds           *express.Registry
	defaultRenderer string
	transformer     Transformer
	decorators      []figure.Decorator
	evaluator       filter.Evaluator
	logger          *zap.Logger
	concurrency     int

	themeSelector  theme.ThemeSelector
	defaultTheme   string
	defaultVariant string

	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one chart to build and render.
type Request struct {
	// Source identifies where the dataset lives. Optional when Frame is
	// supplied.
	Source dataset.Source

	// Frame allows callers to bypass the loader and parser.
	Frame *dataset.Frame

	// Kind selects the chart entry point ("scatter", "bar"...).
	Kind express.Kind

	// Args carries the column mappings and options for the entry point.
	Args express.Args

	// Filter is a row filter expression applied before the entry point.
	Filter string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request presentation overrides.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant select a go-theme manifest. Empty values fall
	// back to the defaults configured with WithDefaultTheme.
	ThemeName    string
	ThemeVariant string
}

// Build runs the pipeline up to the decorated figure without rendering it.
func (o *Orchestrator) Build(ctx context.Context, req Request) (figure.Figure, error) {
	fig, _, err := o.build(ctx, req)
	return fig, err
}

// Generate executes the loader → parser → filter → entry point → transformer
// → decorators → renderer sequence and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	fig, themeCfg, err := o.build(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		options.Theme = themeCfg
	}
	o.logger.Debug("rendering figure",
		zap.String("renderer", renderer.Name()),
		zap.Int("traces", len(fig.Data)),
	)
	output, err := renderer.Render(ctx, fig, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) build(ctx context.Context, req Request) (figure.Figure, *theme.RendererConfig, error) {
	if ctx == nil {
		return figure.Figure{}, nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return figure.Figure{}, nil, err
	}
	if err := o.initialiseErr; err != nil {
		return figure.Figure{}, nil, err
	}
	if strings.TrimSpace(string(req.Kind)) == "" {
		return figure.Figure{}, nil, errors.New("orchestrator: chart kind is required")
	}

	frame, err := o.resolveFrame(ctx, req)
	if err != nil {
		return figure.Figure{}, nil, err
	}

	if req.Filter != "" {
		before := frame.Len()
		frame, err = filter.Apply(frame, req.Filter, o.evaluator)
		if err != nil {
			return figure.Figure{}, nil, fmt.Errorf("orchestrator: filter rows: %w", err)
		}
		o.logger.Debug("filtered rows",
			zap.String("filter", req.Filter),
			zap.Int("before", before),
			zap.Int("after", frame.Len()),
		)
	}

	themeCfg, err := o.resolveTheme(req)
	if err != nil {
		return figure.Figure{}, nil, err
	}

	fig, err := o.kinds.Build(req.Kind, frame, themedArgs(req.Args, themeCfg))
	if err != nil {
		return figure.Figure{}, nil, fmt.Errorf("orchestrator: build %s figure: %w", req.Kind, err)
	}
	o.logger.Debug("built figure", zap.String("kind", string(req.Kind)), zap.Int("traces", len(fig.Data)))

	if err := o.applyTransformer(ctx, &fig); err != nil {
		return figure.Figure{}, nil, err
	}

	if themeCfg != nil {
		if err := ThemeDecorator(themeCfg).Decorate(&fig); err != nil {
			return figure.Figure{}, nil, fmt.Errorf("orchestrator: apply theme: %w", err)
		}
	}
	if err := o.applyDecorators(&fig); err != nil {
		return figure.Figure{}, nil, err
	}
	return fig, themeCfg, nil
}

// LoadFrame loads and parses the dataset behind src.
func (o *Orchestrator) LoadFrame(ctx context.Context, src dataset.Source) (*dataset.Frame, error) {
	return o.resolveFrame(ctx, Request{Source: src})
}

func (o *Orchestrator) resolveFrame(ctx context.Context, req Request) (*dataset.Frame, error) {
	if req.Frame != nil {
		return req.Frame, nil
	}
	if req.Source == nil {
		return nil, errors.New("orchestrator: source or frame is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load dataset: %w", err)
	}
	frame, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse dataset: %w", err)
	}
	o.logger.Debug("loaded dataset",
		zap.String("source", req.Source.Location()),
		zap.String("kind", string(req.Source.Kind())),
		zap.Int("rows", frame.Len()),
	)
	return frame, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(fig *figure.Figure) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(fig); err != nil {
			return fmt.Errorf("orchestrator: decorate figure: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, fig *figure.Figure) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, fig); err != nil {
		return fmt.Errorf("orchestrator: transform figure: %w", err)
	}
	return nil
}

// Renderers exposes the renderer registry so callers can list or extend it.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(dataset.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(dataset.NewParserOptions())
	}
	if o.kinds == nil {
		o.kinds = express.Default()
	}
	if o.evaluator == nil {
		o.evaluator = expr.New()
	}
	if o.concurrency <= 0 {
		o.concurrency = defaultConcurrency
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			registry = render.NewRegistry()
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// DefaultRegistry returns a registry holding every bundled renderer: json,
// html, echarts, png and svg.
func DefaultRegistry() (*render.Registry, error) {
	html, err := page.New()
	if err != nil {
		return nil, err
	}
	png, err := static.New(static.FormatPNG)
	if err != nil {
		return nil, err
	}
	svg, err := static.New(static.FormatSVG)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(plotlyjson.New(), html, echarts.New(), png, svg), nil
}
