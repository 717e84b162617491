package render

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedTrace reports a trace type the renderer cannot draw.
	ErrUnsupportedTrace = errors.New("render: unsupported trace type")
	// ErrRendererNotFound is returned by Registry lookups for unknown names.
	ErrRendererNotFound = errors.New("render: renderer not found")
)

// UnsupportedTrace wraps ErrUnsupportedTrace with the renderer and trace type.
func UnsupportedTrace(renderer, traceType string) error {
	return fmt.Errorf("%w: %s cannot draw %q traces", ErrUnsupportedTrace, renderer, traceType)
}
