package orchestrator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-chartgen/pkg/chartdoc"
	"github.com/goliatone/go-chartgen/pkg/express"
)

// RequestFromChart converts a chart document entry into a Request.
func RequestFromChart(chart chartdoc.Chart) (Request, error) {
	kind, err := express.ParseKind(chart.Kind)
	if err != nil {
		return Request{}, fmt.Errorf("orchestrator: chart %q: %w", chart.ID, err)
	}
	args, err := chart.Args()
	if err != nil {
		return Request{}, err
	}
	src, err := chart.DataSource()
	if err != nil {
		return Request{}, err
	}
	req := Request{
		Source:       src,
		Kind:         kind,
		Args:         args,
		Filter:       chart.Filter,
		Renderer:     chart.Renderer,
		ThemeName:    chart.Theme,
		ThemeVariant: chart.Variant,
	}
	req.RenderOptions.Title = chart.Title
	req.RenderOptions.Description = chartdoc.DescriptionHTML(chart.Description)
	return req, nil
}

// GenerateChart renders the chart registered under id in store.
func (o *Orchestrator) GenerateChart(ctx context.Context, store *chartdoc.Store, id string) ([]byte, error) {
	if store == nil {
		return nil, fmt.Errorf("orchestrator: chart store is nil")
	}
	chart, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	req, err := RequestFromChart(chart)
	if err != nil {
		return nil, err
	}
	return o.Generate(ctx, req)
}

// GenerateCharts renders every chart of store through GenerateAll and returns
// the outputs keyed by chart id.
func (o *Orchestrator) GenerateCharts(ctx context.Context, store *chartdoc.Store) (map[string][]byte, error) {
	if store == nil {
		return nil, fmt.Errorf("orchestrator: chart store is nil")
	}
	charts := store.All()
	reqs := make([]Request, len(charts))
	for i, chart := range charts {
		req, err := RequestFromChart(chart)
		if err != nil {
			return nil, err
		}
		reqs[i] = req
	}
	results, err := o.GenerateAll(ctx, reqs)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(results))
	for _, result := range results {
		out[charts[result.Index].ID] = result.Output
	}
	return out, nil
}
