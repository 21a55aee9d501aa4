package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/evdiag/battreport/pkg/types"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// readSnapshot loads a diagnostic snapshot from the file named in args,
// or from stdin when no argument is given.
func readSnapshot(args []string) (*types.DiagnosticSnapshot, error) {
	var b []byte
	var err error

	if len(args) == 1 && args[0] != "-" {
		b, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file: %w", err)
		}
	} else {
		b, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot from stdin: %w", err)
		}
	}

	var snapshot types.DiagnosticSnapshot
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return &snapshot, nil
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(b))
	return nil
}

// printReport renders a human-readable report: input summary, health
// report, per-pack diagnostics, and an anomaly summary line.
func printReport(cmd *cobra.Command, snapshot *types.DiagnosticSnapshot, report *types.HealthReport) {
	cmd.Println(bold("Input:"))
	cmd.Printf("  Vehicle ID: %s\n", snapshot.VehicleID)
	if !snapshot.Timestamp.IsZero() {
		cmd.Printf("  Timestamp: %s\n", snapshot.Timestamp.Format("2006-01-02 15:04:05 MST"))
	}
	cmd.Printf("  Cells: %d\n", len(snapshot.Cells))
	cmd.Printf("  Nominal capacity: %.2f kWh\n", snapshot.NominalCapacityKwh)
	cmd.Printf("  Current capacity: %.2f kWh\n", snapshot.CurrentCapacityKwh)

	cmd.Println(bold("Health report:"))
	cmd.Printf("  State of Health: %.2f%%\n", report.BatterySoh)
	cmd.Printf("  Cycle count: %d\n", report.CycleCount)

	if len(snapshot.Cells) > 0 {
		minV, maxV := snapshot.Cells[0].Voltage, snapshot.Cells[0].Voltage
		minT, maxT := snapshot.Cells[0].Temperature, snapshot.Cells[0].Temperature
		var sumT float64
		for _, cell := range snapshot.Cells {
			if cell.Voltage < minV {
				minV = cell.Voltage
			}
			if cell.Voltage > maxV {
				maxV = cell.Voltage
			}
			if cell.Temperature < minT {
				minT = cell.Temperature
			}
			if cell.Temperature > maxT {
				maxT = cell.Temperature
			}
			sumT += cell.Temperature
		}

		cmd.Println(bold("Cell diagnostics:"))
		cmd.Printf("  Voltage range: %.3fV - %.3fV (spread %.3fV)\n", minV, maxV, maxV-minV)
		cmd.Printf("  Temperature range: %.2f°C - %.2f°C (avg %.2f°C)\n",
			minT, maxT, sumT/float64(len(snapshot.Cells)))
	}

	if len(report.Anomalies) > 0 {
		cmd.Printf("%s\n", red(fmt.Sprintf("%d anomalie(s) detected:", len(report.Anomalies))))
		for _, anomaly := range report.Anomalies {
			cmd.Printf("  - %s\n", red(anomaly))
		}
	} else {
		cmd.Printf("%s\n", green("No anomalies detected - battery is healthy"))
	}
}

// printOutput prints the report, either human-readable or as raw JSON.
func printOutput(cmd *cobra.Command, snapshot *types.DiagnosticSnapshot, report *types.HealthReport, asJSON bool) error {
	if asJSON {
		return printJSON(cmd, report)
	}
	printReport(cmd, snapshot, report)
	return nil
}
