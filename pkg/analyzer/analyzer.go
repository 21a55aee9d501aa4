// Package analyzer computes battery health reports from diagnostic
// snapshots: capacity-based State of Health plus a small set of anomaly
// checks against fixed thresholds.
package analyzer

import (
	"math"

	"github.com/evdiag/battreport/pkg/types"
)

// Detection thresholds. These are fixed industry-practice values, not
// user configuration.
const (
	// VoltageImbalanceThreshold is the maximum acceptable voltage spread
	// between cells, in volts. 50mV is a typical BMS warning tolerance.
	VoltageImbalanceThreshold = 0.05

	// OverheatingThreshold is the maximum safe cell temperature in °C.
	OverheatingThreshold = 45.0

	// LowHealthThreshold is the minimum acceptable State of Health in
	// percent. 80% is the common warranty floor for EV packs.
	LowHealthThreshold = 80.0
)

// Anomaly labels, in evaluation order.
const (
	AnomalyVoltageImbalance = "Voltage imbalance detected"
	AnomalyOverheating      = "Overheating detected"
	AnomalyLowHealth        = "Low State of Health"
)

// HealthAnalyzer derives a HealthReport from one diagnostic snapshot.
// It holds nothing but the immutable snapshot it was constructed with,
// so it is safe to share between goroutines.
type HealthAnalyzer struct {
	snapshot *types.DiagnosticSnapshot
}

// New creates an analyzer for the given snapshot. The snapshot must not
// be mutated while the analyzer is in use.
func New(snapshot *types.DiagnosticSnapshot) *HealthAnalyzer {
	return &HealthAnalyzer{snapshot: snapshot}
}

// StateOfHealth returns the battery State of Health as a percentage,
// rounded to two decimal places (half away from zero). A zero nominal
// capacity yields 0.0 instead of dividing by zero. The value is not
// clamped: capacities that put the ratio above 100% or below 0% pass
// through as-is, so callers see the raw sensor data.
func (a *HealthAnalyzer) StateOfHealth() float64 {
	if a.snapshot.NominalCapacityKwh == 0 {
		return 0.0
	}

	soh := a.snapshot.CurrentCapacityKwh / a.snapshot.NominalCapacityKwh * 100
	return math.Round(soh*100) / 100
}

// VoltageImbalance reports whether the spread between the highest- and
// lowest-voltage cells strictly exceeds VoltageImbalanceThreshold. An
// empty cell list is never imbalanced.
func (a *HealthAnalyzer) VoltageImbalance() bool {
	cells := a.snapshot.Cells
	if len(cells) == 0 {
		return false
	}

	minV, maxV := cells[0].Voltage, cells[0].Voltage
	for _, cell := range cells[1:] {
		if cell.Voltage < minV {
			minV = cell.Voltage
		}
		if cell.Voltage > maxV {
			maxV = cell.Voltage
		}
	}

	return maxV-minV > VoltageImbalanceThreshold
}

// Overheating reports whether any cell temperature strictly exceeds
// OverheatingThreshold. An empty cell list never overheats.
func (a *HealthAnalyzer) Overheating() bool {
	for _, cell := range a.snapshot.Cells {
		if cell.Temperature > OverheatingThreshold {
			return true
		}
	}

	return false
}

// LowHealth reports whether the given State of Health is strictly below
// LowHealthThreshold. The SoH is passed in rather than recomputed so the
// caller can use one value for both the report and this check.
func (a *HealthAnalyzer) LowHealth(soh float64) bool {
	return soh < LowHealthThreshold
}

// Anomalies runs all detectors in fixed order (voltage imbalance,
// overheating, low health) and returns the labels of those that fired.
// The returned slice is never nil.
func (a *HealthAnalyzer) Anomalies(soh float64) []string {
	anomalies := []string{}

	if a.VoltageImbalance() {
		anomalies = append(anomalies, AnomalyVoltageImbalance)
	}

	if a.Overheating() {
		anomalies = append(anomalies, AnomalyOverheating)
	}

	if a.LowHealth(soh) {
		anomalies = append(anomalies, AnomalyLowHealth)
	}

	return anomalies
}

// Report assembles the full health report. The SoH is computed exactly
// once and the same value feeds both the report and the low-health check.
func (a *HealthAnalyzer) Report() types.HealthReport {
	soh := a.StateOfHealth()

	return types.HealthReport{
		BatterySoh: soh,
		CycleCount: a.snapshot.CycleCount,
		Anomalies:  a.Anomalies(soh),
	}
}
