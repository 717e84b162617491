package orchestrator

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-chartgen/pkg/figure"
	"github.com/goliatone/go-chartgen/pkg/render"
)

// captureRenderer records the last figure and options and renders the trace
// count.
type captureRenderer struct {
	mu      sync.Mutex
	fig     figure.Figure
	options render.RenderOptions
	calls   atomic.Int32
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, fig figure.Figure, options render.RenderOptions) ([]byte, error) {
	r.calls.Add(1)
	r.mu.Lock()
	r.fig = fig
	r.options = options
	r.mu.Unlock()
	return []byte(strconv.Itoa(len(fig.Data))), nil
}

func (r *captureRenderer) last() figure.Figure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fig
}

func (r *captureRenderer) lastOptions() render.RenderOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.options
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
