// Package figure exposes the chart specification produced by the express
// entry points: traces, layout and animation frames encoded in the plotly.js
// figure format. The assembly logic lives in internal/figure; this package
// re-exports its types, the MakeFigure contract and the decorator seam used
// by the orchestrator.
package figure
