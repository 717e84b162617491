// Package chartdoc loads chart documents: YAML or JSON files that name charts
// and describe each one declaratively (kind, data source, row filter,
// renderer, theme and column mappings). Documents are validated against an
// embedded schema before they are decoded into a Store.
package chartdoc
