package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fairdiv/divide"
	"github.com/katalvlaran/fairdiv/internal/input"
	"github.com/katalvlaran/fairdiv/trace"
)

type divideFlags struct {
	algorithm string
	format    string
	narrate   bool
}

func (a *app) divideCmd() *cobra.Command {
	var f divideFlags
	cmd := &cobra.Command{
		Use:   "divide [file]",
		Short: "Divide the resource described by a preference document",
		Long: `Reads a YAML or JSON preference document from file, or from stdin when file
is omitted or "-", runs the division and prints the outcome.

The algorithm comes from --algorithm, then the document, then the first
catalogue entry that accepts the number of agents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				doc input.Document
				err error
			)
			if len(args) == 0 || args[0] == "-" {
				doc, err = input.Decode(cmd.InOrStdin())
			} else {
				doc, err = input.Load(args[0])
			}
			if err != nil {
				return err
			}

			algo := divide.Algorithm(f.algorithm)
			if algo == "" {
				algo = doc.Algorithm
			}
			if algo == "" {
				if algo, err = divide.Default(len(doc.Preferences)); err != nil {
					return err
				}
			}

			runner, err := a.runner()
			if err != nil {
				return err
			}
			out, err := runner.Run(cmd.Context(), algo, doc.Preferences, doc.CakeSize)
			if err != nil {
				return err
			}
			return writeOutcome(cmd.OutOrStdout(), out, f)
		},
	}
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "algorithm name (see 'fairdiv algorithms')")
	cmd.Flags().StringVarP(&f.format, "format", "o", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&f.narrate, "narrate", false, "include the step-by-step narration")
	return cmd
}

// report is the machine-readable output of divide.
type report struct {
	divide.Outcome `yaml:",inline"`
	Narration      []string `json:"narration,omitempty" yaml:"narration,omitempty"`
}

func writeOutcome(w io.Writer, out divide.Outcome, f divideFlags) error {
	var narration []string
	if f.narrate {
		narration = trace.NarrateAll(out.Steps, out.CakeSize)
	}
	switch f.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report{Outcome: out, Narration: narration})
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report{Outcome: out, Narration: narration}); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		return writeText(w, out, narration)
	default:
		return fmt.Errorf("unknown format %q", f.format)
	}
}

func writeText(w io.Writer, out divide.Outcome, narration []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d agents, envy-free: %s, proportional: %s\n",
		out.Algorithm, len(out.Portions), yesNo(out.EnvyFree), yesNo(out.Proportional))
	for _, p := range out.Portions {
		edges := make([]string, len(p.Edges))
		for i, e := range p.Edges {
			edges[i] = fmt.Sprintf("[%.3f, %.3f)", e.Start, e.End)
		}
		values := make([]string, len(p.ValuePerAgent))
		for i, v := range p.ValuePerAgent {
			values[i] = fmt.Sprintf("%.3f%%", v*100)
		}
		fmt.Fprintf(&b, "Agent %d: %s  values %s\n", p.Owner+1, strings.Join(edges, " "), strings.Join(values, " "))
	}
	for i, line := range narration {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, line)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
