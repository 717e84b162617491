package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
	theme "github.com/goliatone/go-theme"
)

func stubRenderer(name string) render.Renderer {
	return render.RendererFunc{
		RendererName: name,
		Type:         "text/plain",
		Fn: func(_ context.Context, fig figure.Figure, _ render.RenderOptions) ([]byte, error) {
			return []byte(fig.Layout.Title.Text), nil
		},
	}
}

func TestRegistry_RegisterAndList(t *testing.T) {
	registry := render.NewRegistry(stubRenderer("b"), stubRenderer("a"))

	if err := registry.Register(stubRenderer("a")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if got := registry.List(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected list: %v", got)
	}
	if !registry.Has("a") || registry.Has("c") {
		t.Fatalf("Has reported wrong membership")
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	registry := render.NewRegistry()
	_, err := registry.Get("missing")
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRegistry_Render(t *testing.T) {
	registry := render.NewRegistry(stubRenderer("plain"))
	fig := figure.Figure{}
	fig.Layout.Title = &figure.Title{Text: "hello"}

	out, err := registry.Render(context.Background(), "plain", fig, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "hello" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestUnsupportedTrace(t *testing.T) {
	err := render.UnsupportedTrace("png", "parcats")
	if !errors.Is(err, render.ErrUnsupportedTrace) {
		t.Fatalf("expected ErrUnsupportedTrace, got %v", err)
	}
}

func TestRenderOptions_SizeAndTokens(t *testing.T) {
	opts := render.RenderOptions{Height: 300}
	w, h := opts.Size(figure.Layout{Width: 640, Height: 480}, 800, 600)
	if w != 640 || h != 300 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	if got := opts.Token("brand", "#000"); got != "#000" {
		t.Fatalf("expected fallback token, got %s", got)
	}

	opts.Theme = &theme.RendererConfig{
		Tokens:   map[string]string{"brand": "#123456"},
		AssetURL: func(key string) string { return "/assets/" + key },
	}
	if got := opts.Token("brand", "#000"); got != "#123456" {
		t.Fatalf("expected theme token, got %s", got)
	}
	if got := opts.Asset("plotly", "cdn"); got != "/assets/plotly" {
		t.Fatalf("unexpected asset %s", got)
	}
}
