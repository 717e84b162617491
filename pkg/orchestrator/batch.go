package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result pairs a rendered output with the index of the request that produced
// it.
type Result struct {
	Index  int
	Output []byte
}

// GenerateAll renders every request in parallel, at most WithConcurrency at a
// time. Outputs are returned in request order. The first failure cancels the
// remaining work.
func (o *Orchestrator) GenerateAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.concurrency)
	for i, req := range reqs {
		group.Go(func() error {
			output, err := o.Generate(groupCtx, req)
			if err != nil {
				return fmt.Errorf("orchestrator: request %d: %w", i, err)
			}
			results[i] = Result{Index: i, Output: output}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	o.logger.Debug("rendered batch", zap.Int("requests", len(reqs)))
	return results, nil
}
