package main

import (
	"github.com/spf13/cobra"

	"github.com/evdiag/battreport/pkg/analyzer"
	"github.com/evdiag/battreport/pkg/hostprobe"
)

func NewHostCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "host",
		GroupID: gBasic,
		Short:   "Report the health of this machine's battery",
		Long: `Probe this machine's own battery and print its health report.

The OS only exposes pack-level capacities, so per-cell checks (voltage
imbalance, overheating) do not apply to host reports.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := hostprobe.Snapshot()
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
