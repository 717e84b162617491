package orchestrator

import (
	"fmt"
	"maps"
	"path"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-chartgen/pkg/express"
	"github.com/goliatone/go-chartgen/pkg/figure"
)

// Theme tokens read by ThemeDecorator.
const (
	TokenColorway   = "colorway"
	TokenBackground = "background"
	TokenPaper      = "paper"
	TokenFont       = "font"
	TokenFontFamily = "font.family"
	TokenFontSize   = "font.size"
	TokenGridColor  = "gridcolor"
)

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme sets the theme and variant requested when a Request leaves
// them empty.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name := firstNonEmpty(req.ThemeName, o.defaultTheme)
	variant := firstNonEmpty(req.ThemeVariant, o.defaultVariant)
	if name == "" && variant == "" {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}
	return RendererConfig(selection), nil
}

// RendererConfig flattens a selection into renderer configuration: variant
// tokens, templates and assets override the manifest ones, and every token
// is exposed as a "--name" CSS variable.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: map[string]string{},
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	assets := map[string]string{}
	prefix := ""
	if manifest := selection.Manifest; manifest != nil {
		maps.Copy(cfg.Tokens, manifest.Tokens)
		maps.Copy(cfg.Partials, manifest.Templates)
		maps.Copy(assets, manifest.Assets.Files)
		prefix = manifest.Assets.Prefix
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			maps.Copy(cfg.Tokens, variant.Tokens)
			maps.Copy(cfg.Partials, variant.Templates)
			maps.Copy(assets, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+strings.ReplaceAll(key, ".", "-")] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := assets[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		if strings.Contains(prefix, "://") {
			return strings.TrimSuffix(prefix, "/") + "/" + file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// ThemeDecorator applies theme tokens to the figure layout: the colorway,
// plot and paper backgrounds, font color, family and size, and the grid color
// of every cartesian axis. Values already set by the figure template are
// overwritten.
func ThemeDecorator(cfg *theme.RendererConfig) figure.Decorator {
	return figure.DecoratorFunc(func(fig *figure.Figure) error {
		if cfg == nil || fig == nil {
			return nil
		}
		tokens := cfg.Tokens
		layout := &fig.Layout
		if raw := tokens[TokenColorway]; raw != "" {
			layout.Colorway = splitList(raw)
		}
		if bg := tokens[TokenBackground]; bg != "" {
			layout.PlotBGColor = bg
		}
		if paper := firstNonEmpty(tokens[TokenPaper], tokens[TokenBackground]); paper != "" {
			layout.PaperBGColor = paper
		}
		color, family, size := tokens[TokenFont], tokens[TokenFontFamily], tokens[TokenFontSize]
		if color != "" || family != "" || size != "" {
			if layout.Font == nil {
				layout.Font = &figure.Font{}
			}
			if color != "" {
				layout.Font.Color = color
			}
			if family != "" {
				layout.Font.Family = family
			}
			if size != "" {
				value, err := strconv.ParseFloat(size, 64)
				if err != nil {
					return fmt.Errorf("token %s: %w", TokenFontSize, err)
				}
				layout.Font.Size = value
			}
		}
		if grid := tokens[TokenGridColor]; grid != "" {
			for _, axis := range layout.Axes {
				if axis != nil {
					axis.GridColor = grid
				}
			}
		}
		return nil
	})
}

// themedArgs feeds the theme colorway to the discrete color sequence when the
// request did not pick one, so trace colors follow the theme.
func themedArgs(args express.Args, cfg *theme.RendererConfig) express.Args {
	if cfg == nil || len(args.ColorDiscreteSequence) > 0 {
		return args
	}
	if raw := cfg.Tokens[TokenColorway]; raw != "" {
		args.ColorDiscreteSequence = splitList(raw)
	}
	return args
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
