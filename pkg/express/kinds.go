package express

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/figure"
)

// Kind names a chart entry point.
type Kind string

const (
	KindScatter             Kind = "scatter"
	KindLine                Kind = "line"
	KindArea                Kind = "area"
	KindBar                 Kind = "bar"
	KindHistogram           Kind = "histogram"
	KindViolin              Kind = "violin"
	KindBox                 Kind = "box"
	KindStrip               Kind = "strip"
	KindDensityHeatmap      Kind = "density_heatmap"
	KindDensityContour      Kind = "density_contour"
	KindScatterPolar        Kind = "scatter_polar"
	KindLinePolar           Kind = "line_polar"
	KindBarPolar            Kind = "bar_polar"
	KindScatter3D           Kind = "scatter_3d"
	KindLine3D              Kind = "line_3d"
	KindScatterTernary      Kind = "scatter_ternary"
	KindLineTernary         Kind = "line_ternary"
	KindScatterMatrix       Kind = "scatter_matrix"
	KindParallelCoordinates Kind = "parallel_coordinates"
	KindParallelCategories  Kind = "parallel_categories"
	KindScatterGeo          Kind = "scatter_geo"
	KindLineGeo             Kind = "line_geo"
	KindChoropleth          Kind = "choropleth"
	KindScatterMapbox       Kind = "scatter_mapbox"
	KindLineMapbox          Kind = "line_mapbox"
)

// Func is the signature shared by every entry point.
type Func func(frame *dataset.Frame, args Args) (figure.Figure, error)

// Registry maps kinds to entry points. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[Kind]Func
}

// NewRegistry returns a registry holding the built-in chart kinds.
func NewRegistry() *Registry {
	reg := &Registry{funcs: make(map[Kind]Func)}
	for kind, fn := range builtins() {
		reg.funcs[kind] = fn
	}
	return reg
}

func builtins() map[Kind]Func {
	return map[Kind]Func{
		KindScatter:             Scatter,
		KindLine:                Line,
		KindArea:                Area,
		KindBar:                 Bar,
		KindHistogram:           Histogram,
		KindViolin:              Violin,
		KindBox:                 Box,
		KindStrip:               Strip,
		KindDensityHeatmap:      DensityHeatmap,
		KindDensityContour:      DensityContour,
		KindScatterPolar:        ScatterPolar,
		KindLinePolar:           LinePolar,
		KindBarPolar:            BarPolar,
		KindScatter3D:           Scatter3D,
		KindLine3D:              Line3D,
		KindScatterTernary:      ScatterTernary,
		KindLineTernary:         LineTernary,
		KindScatterMatrix:       ScatterMatrix,
		KindParallelCoordinates: ParallelCoordinates,
		KindParallelCategories:  ParallelCategories,
		KindScatterGeo:          ScatterGeo,
		KindLineGeo:             LineGeo,
		KindChoropleth:          Choropleth,
		KindScatterMapbox:       ScatterMapbox,
		KindLineMapbox:          LineMapbox,
	}
}

// Register adds or replaces an entry point.
func (r *Registry) Register(kind Kind, fn Func) error {
	if r == nil {
		return fmt.Errorf("express: registry is nil")
	}
	kind = Kind(strings.TrimSpace(string(kind)))
	if kind == "" {
		return fmt.Errorf("express: kind name is required")
	}
	if fn == nil {
		return fmt.Errorf("express: kind %q: function is nil", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[kind] = fn
	return nil
}

// Lookup resolves a kind, accepting any casing and "-", "_" or no
// separators ("Scatter-3D", "scatter3d").
func (r *Registry) Lookup(kind Kind) (Func, Kind, bool) {
	if r == nil {
		return nil, "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.funcs[kind]; ok {
		return fn, kind, true
	}
	want := squash(string(kind))
	for name, fn := range r.funcs {
		if squash(string(name)) == want {
			return fn, name, true
		}
	}
	return nil, "", false
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	kinds := make([]Kind, 0, len(r.funcs))
	for kind := range r.funcs {
		kinds = append(kinds, kind)
	}
	r.mu.RUnlock()
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Build resolves kind and runs its entry point.
func (r *Registry) Build(kind Kind, frame *dataset.Frame, args Args) (figure.Figure, error) {
	fn, _, ok := r.Lookup(kind)
	if !ok {
		return figure.Figure{}, fmt.Errorf("express: unknown chart kind %q", kind)
	}
	return fn(frame, args)
}

var defaultRegistry = NewRegistry()

// Default returns the package registry used by Lookup.
func Default() *Registry {
	return defaultRegistry
}

// Lookup resolves a kind in the default registry.
func Lookup(kind Kind) (Func, bool) {
	fn, _, ok := defaultRegistry.Lookup(kind)
	return fn, ok
}

// ParseKind normalises a user supplied name to a registered kind.
func ParseKind(name string) (Kind, error) {
	_, kind, ok := defaultRegistry.Lookup(Kind(strings.TrimSpace(name)))
	if !ok {
		return "", fmt.Errorf("express: unknown chart kind %q", name)
	}
	return kind, nil
}

// Kinds lists the kinds of the default registry.
func Kinds() []Kind {
	return defaultRegistry.Kinds()
}

func squash(name string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}
