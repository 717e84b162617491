package render

import (
	"github.com/goliatone/go-chartgen/pkg/figure"
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the figure.
type RenderOptions struct {
	// Width and Height override the figure layout size in pixels. Zero keeps
	// the layout value, falling back to the renderer default.
	Width  int
	Height int
	// AssetURL overrides the location of the client side charting library for
	// HTML renderers.
	AssetURL string
	// Title replaces the document title of page renderers. Defaults to the
	// figure title.
	Title string
	// Description is trusted HTML shown below the chart by page renderers.
	Description string
	// Theme carries the resolved theme selection: tokens, CSS variables and an
	// asset resolver.
	Theme *theme.RendererConfig
	// Config is passed through as the client side plot configuration
	// (responsive, displayModeBar...).
	Config map[string]any
}

// Size resolves the output size, preferring explicit options over the layout
// and the layout over the provided defaults.
func (o RenderOptions) Size(layout figure.Layout, defWidth, defHeight int) (int, int) {
	width, height := defWidth, defHeight
	if layout.Width > 0 {
		width = layout.Width
	}
	if layout.Height > 0 {
		height = layout.Height
	}
	if o.Width > 0 {
		width = o.Width
	}
	if o.Height > 0 {
		height = o.Height
	}
	return width, height
}

// Token returns a theme token or the fallback when no theme is configured.
func (o RenderOptions) Token(name, fallback string) string {
	if o.Theme == nil {
		return fallback
	}
	if value, ok := o.Theme.Tokens[name]; ok && value != "" {
		return value
	}
	return fallback
}

// Asset resolves a theme asset key, falling back to the provided URL.
func (o RenderOptions) Asset(key, fallback string) string {
	if o.Theme == nil || o.Theme.AssetURL == nil {
		return fallback
	}
	if resolved := o.Theme.AssetURL(key); resolved != "" {
		return resolved
	}
	return fallback
}
