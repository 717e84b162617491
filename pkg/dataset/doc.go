// Package dataset exposes the tabular input consumed by the figure builder:
// typed columns grouped into a Frame, plus the Source/Loader/Parser contracts
// used to materialise frames from CSV, JSON, YAML or SQLite. Implementations
// of the loader and parser live under internal/dataset so the public surface
// stays free of driver and codec details.
package dataset
