package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-chartgen/pkg/express"
)

const none = "(none)"

// Answers is what the interactive wizard collected.
type Answers struct {
	Kind     express.Kind
	Args     express.Args
	Renderer string
	Filter   string
}

// Wizard walks the user through choosing a chart kind, column mappings and a
// renderer for a dataset with the given columns.
type Wizard struct {
	Driver    Driver
	Columns   []string
	Kinds     []express.Kind
	Renderers []string
}

// Run asks every question and returns the answers.
func (w Wizard) Run(ctx context.Context) (Answers, error) {
	if w.Driver == nil {
		return Answers{}, errors.New("prompt: driver is nil")
	}
	if len(w.Columns) == 0 {
		return Answers{}, errors.New("prompt: dataset has no columns")
	}
	kinds := w.Kinds
	if len(kinds) == 0 {
		kinds = express.Kinds()
	}

	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	idx, err := w.Driver.Select(ctx, SelectConfig{Message: "Chart kind", Options: names, PageSize: 12})
	if err != nil {
		return Answers{}, err
	}
	if idx < 0 || idx >= len(kinds) {
		return Answers{}, fmt.Errorf("prompt: no chart kind selected")
	}
	answers := Answers{Kind: kinds[idx]}

	if err := w.askPositions(ctx, &answers); err != nil {
		return Answers{}, err
	}
	if answers.Args.Color, err = w.column(ctx, "Color by", true); err != nil {
		return Answers{}, err
	}
	if answers.Args.FacetCol, err = w.column(ctx, "Facet columns by", true); err != nil {
		return Answers{}, err
	}
	if answers.Filter, err = w.Driver.Input(ctx, InputConfig{
		Message: "Row filter",
		Help:    `Expression such as: year >= 2000 && continent == "Europe". Leave empty to keep every row.`,
	}); err != nil {
		return Answers{}, err
	}
	if answers.Args.Title, err = w.Driver.Input(ctx, InputConfig{Message: "Title"}); err != nil {
		return Answers{}, err
	}

	if len(w.Renderers) > 0 {
		idx, err := w.Driver.Select(ctx, SelectConfig{Message: "Renderer", Options: w.Renderers})
		if err != nil {
			return Answers{}, err
		}
		if idx >= 0 && idx < len(w.Renderers) {
			answers.Renderer = w.Renderers[idx]
		}
	}
	return answers, nil
}

func (w Wizard) askPositions(ctx context.Context, answers *Answers) error {
	args := &answers.Args
	var err error
	ask := func(target *string, message string, optional bool) {
		if err != nil {
			return
		}
		*target, err = w.column(ctx, message, optional)
	}

	switch answers.Kind {
	case express.KindScatterPolar, express.KindLinePolar, express.KindBarPolar:
		ask(&args.R, "Radius (r)", false)
		ask(&args.Theta, "Angle (theta)", true)
	case express.KindScatter3D, express.KindLine3D:
		ask(&args.X, "X", false)
		ask(&args.Y, "Y", false)
		ask(&args.Z, "Z", false)
	case express.KindScatterTernary, express.KindLineTernary:
		ask(&args.A, "A", false)
		ask(&args.B, "B", false)
		ask(&args.C, "C", false)
	case express.KindChoropleth:
		ask(&args.Locations, "Locations", false)
	case express.KindScatterGeo, express.KindLineGeo, express.KindScatterMapbox, express.KindLineMapbox:
		ask(&args.Lat, "Latitude", false)
		ask(&args.Lon, "Longitude", false)
	case express.KindScatterMatrix, express.KindParallelCoordinates, express.KindParallelCategories:
		var picked []int
		picked, err = w.Driver.MultiSelect(ctx, SelectConfig{Message: "Dimensions", Options: w.Columns})
		for _, i := range picked {
			args.Dimensions = append(args.Dimensions, w.Columns[i])
		}
	case express.KindDensityHeatmap, express.KindDensityContour:
		ask(&args.X, "X", false)
		ask(&args.Y, "Y", false)
	default:
		ask(&args.X, "X", true)
		ask(&args.Y, "Y", true)
		if err == nil && args.X == "" && args.Y == "" {
			err = fmt.Errorf("prompt: %s needs x or y", answers.Kind)
		}
	}
	return err
}

func (w Wizard) column(ctx context.Context, message string, optional bool) (string, error) {
	options := w.Columns
	if optional {
		options = append([]string{none}, w.Columns...)
	}
	idx, err := w.Driver.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: 12})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) || options[idx] == none {
		if optional {
			return "", nil
		}
		return "", fmt.Errorf("prompt: %s is required", message)
	}
	return options[idx], nil
}
