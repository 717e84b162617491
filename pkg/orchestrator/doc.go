// Package orchestrator wires the dataset loader, parser, row filter, chart
// entry points, figure decorators and renderers into a single pipeline.
package orchestrator
