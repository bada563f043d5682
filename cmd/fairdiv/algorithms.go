package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/fairdiv/divide"
)

func (a *app) algorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the division algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tAGENTS\tKIND\tAVAILABLE")
			for _, info := range divide.Catalog() {
				agents := fmt.Sprint(info.MinAgents)
				if info.MaxAgents != info.MinAgents {
					agents = fmt.Sprintf("%d-%d", info.MinAgents, info.MaxAgents)
				}
				kind := "exact"
				if !info.Exact {
					kind = "approximate"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, agents, kind, yesNo(runner.Available(info)))
			}
			return tw.Flush()
		},
	}
}
