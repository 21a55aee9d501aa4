package types

// HealthReport is the derived battery health summary for one snapshot.
// Anomalies is ordered (voltage imbalance, overheating, low health) and is
// never nil, so an anomaly-free report serializes as an empty array.
type HealthReport struct {
	BatterySoh float64  `json:"battery_soh"`
	CycleCount int      `json:"cycle_count"`
	Anomalies  []string `json:"anomalies"`
}
