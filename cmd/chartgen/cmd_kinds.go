package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chartgen/pkg/express"
	"github.com/goliatone/go-chartgen/pkg/orchestrator"
)

func newKindsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the chart kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range express.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
			return nil
		},
	}
}

func newRenderersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List the output renderers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := orchestrator.DefaultRegistry()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range registry.List() {
				renderer := registry.MustGet(name)
				marker := ""
				if name == a.cfg.Renderer {
					marker = "(default)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, renderer.ContentType(), marker)
			}
			return w.Flush()
		},
	}
}
