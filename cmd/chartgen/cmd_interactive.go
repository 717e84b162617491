package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-chartgen/internal/prompt"
	"github.com/goliatone/go-chartgen/pkg/dataset"
	"github.com/goliatone/go-chartgen/pkg/express"
	"github.com/goliatone/go-chartgen/pkg/orchestrator"
)

func newInteractiveCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "interactive <source>",
		Aliases: []string{"i"},
		Short:   "Build a chart by answering prompts",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, a, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (asked for when empty)")
	return cmd
}

func runInteractive(cmd *cobra.Command, a *app, ref, output string) error {
	ctx := cmd.Context()
	src, err := dataset.ParseSource(ref)
	if err != nil {
		return err
	}
	orch, err := a.orchestratorFor(nil, "")
	if err != nil {
		return err
	}
	frame, err := orch.LoadFrame(ctx, src)
	if err != nil {
		return err
	}

	driver := a.driver
	if driver == nil {
		driver = prompt.NewSurveyDriver()
	}
	if err := driver.Info(ctx, fmt.Sprintf("Loaded %d rows with columns %v", frame.Len(), frame.Names())); err != nil {
		return err
	}

	wizard := prompt.Wizard{
		Driver:    driver,
		Columns:   frame.Names(),
		Kinds:     express.Kinds(),
		Renderers: orch.Renderers().List(),
	}
	answers, err := wizard.Run(ctx)
	if err != nil {
		return err
	}

	if output == "" {
		output, err = driver.Input(ctx, prompt.InputConfig{
			Message: "Output file",
			Default: "chart" + extensionFor(answers.Renderer),
		})
		if err != nil {
			return err
		}
	}

	options := a.renderOptions()
	options.Title = answers.Args.Title
	req := orchestrator.Request{
		Frame:         frame,
		Kind:          answers.Kind,
		Args:          answers.Args,
		Filter:        answers.Filter,
		Renderer:      answers.Renderer,
		RenderOptions: options,
	}
	rendered, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}
	if err := writeOutput(output, rendered); err != nil {
		return err
	}
	a.logger.Info("chart written", zap.String("kind", string(answers.Kind)), zap.String("path", output))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	return nil
}
