package main

import (
	"github.com/spf13/cobra"

	"github.com/evdiag/battreport/pkg/analyzer"
)

func NewAnalyzeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "analyze [file]",
		GroupID: gBasic,
		Short:   "Analyze a diagnostic snapshot",
		Long: `Analyze a diagnostic snapshot from a JSON file (or stdin) and print its
health report. The analysis runs locally; no daemon is needed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := readSnapshot(args)
			if err != nil {
				return err
			}

			report := analyzer.New(snapshot).Report()
			return printOutput(cmd, snapshot, &report, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the report as JSON.")

	return cmd
}
