package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evdiag/battreport/pkg/client"
)

var apiClient = client.NewClient("/var/run/battreport.sock")

func NewReportCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "report [file]",
		GroupID: gAdvanced,
		Short:   "Send a snapshot to the daemon for analysis",
		Long: `Send a diagnostic snapshot from a JSON file (or stdin) to the battreport
daemon and print the health report it returns.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := readSnapshot(args)
			if err != nil {
				return err
			}

			report, err := apiClient.GenerateReport(snapshot)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}

			return printOutput(cmd, snapshot, report, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the report as JSON.")

	return cmd
}
