package analyzer

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/evdiag/battreport/pkg/types"
)

func snapshotWith(cells []types.CellReading, cycles int, nominal, current float64) *types.DiagnosticSnapshot {
	return &types.DiagnosticSnapshot{
		VehicleID:          "EV-12345",
		Timestamp:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Cells:              cells,
		CycleCount:         cycles,
		NominalCapacityKwh: nominal,
		CurrentCapacityKwh: current,
	}
}

func normalCells(voltage, temperature float64, n int) []types.CellReading {
	cells := make([]types.CellReading, 0, n)
	for i := 0; i < n; i++ {
		cells = append(cells, types.CellReading{ID: i, Voltage: voltage, Temperature: temperature})
	}
	return cells
}

func TestStateOfHealth(t *testing.T) {
	cases := []struct {
		name     string
		nominal  float64
		current  float64
		expected float64
	}{
		{"healthy", 60.0, 54.0, 90.0},
		{"degraded", 60.0, 45.0, 75.0},
		{"rounded to two decimals", 60.0, 20.0, 33.33},
		{"zero nominal saturates to zero", 0.0, 54.0, 0.0},
		{"above nominal passes through unclamped", 60.0, 66.0, 110.0},
		{"negative current passes through unclamped", 60.0, -6.0, -10.0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := New(snapshotWith(nil, 300, c.nominal, c.current))
			if got := a.StateOfHealth(); got != c.expected {
				t.Fatalf("StateOfHealth() = %v, expected %v", got, c.expected)
			}
		})
	}
}

func TestVoltageImbalanceBoundary(t *testing.T) {
	// Synthetic voltages so the spread is bit-for-bit equal to the
	// threshold: the boundary itself must not trigger.
	atThreshold := []types.CellReading{
		{ID: 0, Voltage: 0.0, Temperature: 30.0},
		{ID: 1, Voltage: VoltageImbalanceThreshold, Temperature: 30.0},
	}
	a := New(snapshotWith(atThreshold, 300, 60.0, 54.0))
	if a.VoltageImbalance() {
		t.Fatalf("spread exactly at threshold should not be an imbalance")
	}

	aboveThreshold := []types.CellReading{
		{ID: 0, Voltage: 4.00, Temperature: 30.0},
		{ID: 1, Voltage: 4.06, Temperature: 30.0},
	}
	a = New(snapshotWith(aboveThreshold, 300, 60.0, 54.0))
	if !a.VoltageImbalance() {
		t.Fatalf("spread above threshold should be an imbalance")
	}

	balanced := []types.CellReading{
		{ID: 0, Voltage: 4.00, Temperature: 30.0},
		{ID: 1, Voltage: 4.02, Temperature: 30.0},
		{ID: 2, Voltage: 3.99, Temperature: 30.0},
	}
	a = New(snapshotWith(balanced, 300, 60.0, 54.0))
	if a.VoltageImbalance() {
		t.Fatalf("spread below threshold should not be an imbalance")
	}
}

func TestOverheatingBoundary(t *testing.T) {
	cells := normalCells(4.0, 30.0, 5)
	cells[2].Temperature = 45.0
	a := New(snapshotWith(cells, 300, 60.0, 54.0))
	if a.Overheating() {
		t.Fatalf("cell exactly at threshold should not be overheating")
	}

	cells[2].Temperature = 45.0001
	if !a.Overheating() {
		t.Fatalf("cell above threshold should be overheating")
	}
}

func TestLowHealthBoundary(t *testing.T) {
	a := New(snapshotWith(nil, 300, 60.0, 54.0))
	if a.LowHealth(80.0) {
		t.Fatalf("SoH exactly at threshold should not be low health")
	}
	if !a.LowHealth(79.9999) {
		t.Fatalf("SoH below threshold should be low health")
	}
}

func TestEmptyCells(t *testing.T) {
	a := New(snapshotWith([]types.CellReading{}, 412, 60.0, 54.0))

	if a.VoltageImbalance() {
		t.Fatalf("empty cell list should not report voltage imbalance")
	}
	if a.Overheating() {
		t.Fatalf("empty cell list should not report overheating")
	}

	report := a.Report()
	if report.BatterySoh != 90.0 {
		t.Fatalf("BatterySoh = %v, expected 90.0", report.BatterySoh)
	}
	if report.Anomalies == nil || len(report.Anomalies) != 0 {
		t.Fatalf("expected empty non-nil anomaly list, got %#v", report.Anomalies)
	}
}

func TestAnomalyOrdering(t *testing.T) {
	// Trips all three detectors at once.
	cells := []types.CellReading{
		{ID: 0, Voltage: 3.90, Temperature: 50.0},
		{ID: 1, Voltage: 4.10, Temperature: 30.0},
	}
	a := New(snapshotWith(cells, 700, 60.0, 45.0))

	report := a.Report()
	expected := []string{AnomalyVoltageImbalance, AnomalyOverheating, AnomalyLowHealth}
	if !reflect.DeepEqual(report.Anomalies, expected) {
		t.Fatalf("anomalies = %v, expected %v", report.Anomalies, expected)
	}
}

func TestReportConsistentWithDetectors(t *testing.T) {
	cells := []types.CellReading{
		{ID: 0, Voltage: 3.90, Temperature: 30.0},
		{ID: 1, Voltage: 4.10, Temperature: 48.0},
	}
	a := New(snapshotWith(cells, 512, 60.0, 47.5))

	report := a.Report()
	if !reflect.DeepEqual(report.Anomalies, a.Anomalies(report.BatterySoh)) {
		t.Fatalf("report anomalies %v drifted from detector output %v",
			report.Anomalies, a.Anomalies(report.BatterySoh))
	}
}

func TestReportScenarios(t *testing.T) {
	cases := []struct {
		name      string
		snapshot  *types.DiagnosticSnapshot
		soh       float64
		anomalies []string
	}{
		{
			"healthy pack",
			snapshotWith(normalCells(4.0, 31.0, 96), 300, 60.0, 54.0),
			90.0,
			[]string{},
		},
		{
			"degraded capacity",
			snapshotWith(normalCells(4.0, 31.0, 96), 300, 60.0, 45.0),
			75.0,
			[]string{AnomalyLowHealth},
		},
		{
			"imbalanced cells",
			snapshotWith([]types.CellReading{
				{ID: 0, Voltage: 3.90, Temperature: 30.0},
				{ID: 1, Voltage: 4.00, Temperature: 31.0},
				{ID: 2, Voltage: 4.10, Temperature: 32.0},
			}, 300, 60.0, 54.0),
			90.0,
			[]string{AnomalyVoltageImbalance},
		},
		{
			"single hot cell",
			snapshotWith(append(normalCells(4.0, 31.0, 9),
				types.CellReading{ID: 9, Voltage: 4.0, Temperature: 48.0}),
				300, 60.0, 54.0),
			90.0,
			[]string{AnomalyOverheating},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			report := New(c.snapshot).Report()
			if report.BatterySoh != c.soh {
				t.Fatalf("BatterySoh = %v, expected %v", report.BatterySoh, c.soh)
			}
			if report.CycleCount != c.snapshot.CycleCount {
				t.Fatalf("CycleCount = %d, expected %d", report.CycleCount, c.snapshot.CycleCount)
			}
			if !reflect.DeepEqual(report.Anomalies, c.anomalies) {
				t.Fatalf("anomalies = %v, expected %v", report.Anomalies, c.anomalies)
			}
		})
	}
}

func TestReportJSONContract(t *testing.T) {
	report := New(snapshotWith(nil, 300, 60.0, 54.0)).Report()

	b, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}

	expected := `{"battery_soh":90,"cycle_count":300,"anomalies":[]}`
	if string(b) != expected {
		t.Fatalf("report JSON = %s, expected %s", b, expected)
	}
}
