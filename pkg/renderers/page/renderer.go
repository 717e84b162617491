// Package page renders figures as standalone HTML documents (or embeddable
// fragments) that draw the chart with the browser plotting library.
package page

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
	rendertemplate "github.com/goliatone/go-chartgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-chartgen/pkg/render/template/gotemplate"
)

const (
	templateName  = "page"
	defaultHeight = 450
)

var (
	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy
)

// Option configures the page renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	scriptURL        string
	fragment         bool
	newID            func() string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide "page.tpl".
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithScriptURL sets the default plotting library URL.
func WithScriptURL(url string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(url) != "" {
			cfg.scriptURL = strings.TrimSpace(url)
		}
	}
}

// WithFragment renders only the chart container and script, without the
// surrounding document.
func WithFragment() Option {
	return func(cfg *config) {
		cfg.fragment = true
	}
}

// WithIDGenerator replaces the random container id generator.
func WithIDGenerator(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// Renderer produces HTML pages.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	scriptURL string
	fragment  bool
	newID     func() string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		scriptURL:  DefaultScriptURL,
		newID:      func() string { return "chartgen-" + uuid.NewString() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates: templates,
		scriptURL: cfg.scriptURL,
		fragment:  cfg.fragment,
		newID:     cfg.newID,
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML document for fig.
func (r *Renderer) Render(ctx context.Context, fig figure.Figure, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("page renderer: template renderer is nil")
	}

	width, height := options.Size(fig.Layout, 0, defaultHeight)
	if options.Width > 0 {
		fig.Layout.Width = options.Width
	}
	if options.Height > 0 {
		fig.Layout.Height = options.Height
	}
	if fig.Data == nil {
		fig.Data = []figure.Trace{}
	}

	config := map[string]any{"responsive": true}
	maps.Copy(config, options.Config)

	var cssVars map[string]string
	if options.Theme != nil {
		cssVars = options.Theme.CSSVars
	}

	data := map[string]any{
		"fragment":    r.fragment,
		"title":       sanitizeTitle(pageTitle(fig, options)),
		"description": options.Description,
		"script_url":  r.scriptURLFor(options),
		"css_vars":    cssVars,
		"background":  options.Token("background", "#ffffff"),
		"div_id":      r.newID(),
		"width":       width,
		"height":      height,
		"figure":      fig,
		"config":      config,
	}

	rendered, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("page renderer: render template: %w", err)
	}
	return []byte(rendered), nil
}

func (r *Renderer) scriptURLFor(options render.RenderOptions) string {
	if options.AssetURL != "" {
		return options.AssetURL
	}
	return options.Asset(ThemeAssetScript, r.scriptURL)
}

func pageTitle(fig figure.Figure, options render.RenderOptions) string {
	if options.Title != "" {
		return options.Title
	}
	if fig.Layout.Title != nil && fig.Layout.Title.Text != "" {
		return fig.Layout.Title.Text
	}
	return "chart"
}

// sanitizeTitle strips markup from titles, which the plotting library allows
// (<b>, <br>) but the document <title> must not carry.
func sanitizeTitle(raw string) string {
	titlePolicyOnce.Do(func() {
		titlePolicy = bluemonday.StrictPolicy()
	})
	cleaned := strings.TrimSpace(titlePolicy.Sanitize(strings.ReplaceAll(raw, "<br>", " ")))
	if cleaned == "" {
		return "chart"
	}
	return cleaned
}
