package figure

import (
	"github.com/goliatone/go-chartgen/internal/figure"
	"github.com/goliatone/go-chartgen/pkg/dataset"
)

// MakeFigure assembles a figure from a frame. constructor selects the trace
// type, tracePatch is merged onto every trace, grouped lists the channels
// allowed to split rows into traces and layoutPatch is merged onto the
// layout last.
func MakeFigure(frame *dataset.Frame, args Args, constructor Constructor, tracePatch map[string]any, grouped []Channel, layoutPatch map[string]any) (Figure, error) {
	return figure.MakeFigure(frame, args, constructor, tracePatch, grouped, layoutPatch)
}

// Constructors lists every supported trace type.
func Constructors() []Constructor {
	return figure.Constructors()
}
