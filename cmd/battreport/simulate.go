package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/evdiag/battreport/pkg/analyzer"
	"github.com/evdiag/battreport/pkg/simulator"
)

func NewSimulateCommand() *cobra.Command {
	var (
		seed       int64
		withReport bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:     "simulate",
		GroupID: gBasic,
		Short:   "Generate a mock diagnostic snapshot",
		Long: `Generate a realistic mock EV diagnostic snapshot and print it as JSON.

With --report, analyze the generated snapshot and print its health report
instead. The same --seed always produces the same snapshot.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			snapshot := simulator.Generate(seed)

			if !withReport {
				return printJSON(cmd, snapshot)
			}

			report := analyzer.New(snapshot).Report()
			return printOutput(cmd, snapshot, &report, asJSON)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&seed, "seed", 0, "Random seed. 0 means time-based.")
	f.BoolVar(&withReport, "report", false, "Analyze the snapshot and print its health report.")
	f.BoolVar(&asJSON, "json", false, "With --report, output the report as JSON.")

	return cmd
}
