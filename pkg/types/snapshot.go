package types

import "time"

// CellReading is one monitored cell in the battery pack.
type CellReading struct {
	ID          int     `json:"id"`
	Voltage     float64 `json:"voltage"`     // volts
	Temperature float64 `json:"temperature"` // °C
}

// DiagnosticSnapshot is a single point-in-time dump of battery diagnostic
// data, as produced by a BMS exporter, the simulator, or the host probe.
// This struct is shared between the daemon and client packages.
//
// Cells may be empty: some sources (e.g. the host probe) only see
// pack-level capacities. Per-cell checks treat an empty list as healthy.
type DiagnosticSnapshot struct {
	VehicleID          string        `json:"vehicle_id"`
	Timestamp          time.Time     `json:"timestamp"`
	Cells              []CellReading `json:"cells"`
	CycleCount         int           `json:"cycle_count"`
	NominalCapacityKwh float64       `json:"nominal_capacity_kwh"`
	CurrentCapacityKwh float64       `json:"current_capacity_kwh"`
}
