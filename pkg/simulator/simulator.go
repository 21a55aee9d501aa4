// Package simulator generates realistic mock EV battery diagnostic
// snapshots for demos and testing, without touching real hardware.
package simulator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/evdiag/battreport/pkg/types"
)

// NominalCapacityKwh is the fixed manufacturer rating used for all
// simulated packs.
const NominalCapacityKwh = 60.0

const (
	minCells = 80
	maxCells = 120

	hotCellChance   = 0.05
	imbalanceChance = 0.30
)

// Generate produces a mock diagnostic snapshot. The same seed always
// yields the same cell data, cycle count and capacities; only the
// timestamp differs between calls.
//
// Simulation strategy, mirroring what a real pack looks like:
//   - 80-120 cells around a common base voltage (3.9-4.1V) with small
//     gaussian per-cell variation, clamped to 3.8-4.2V.
//   - Mostly normal temperatures (25-42°C) with occasional hot spots.
//   - A 30% chance of 1-3 outlier cells drifted far enough to trip the
//     imbalance check.
//   - Capacity degraded by age: newer packs (<300 cycles) retain 95-100%,
//     older ones down to 80%.
func Generate(seed int64) *types.DiagnosticSnapshot {
	rng := rand.New(rand.NewSource(seed))

	cellCount := minCells + rng.Intn(maxCells-minCells+1)
	baseVoltage := uniform(rng, 3.9, 4.1)

	cells := make([]types.CellReading, 0, cellCount)
	for i := 0; i < cellCount; i++ {
		voltage := baseVoltage + rng.NormFloat64()*0.015
		voltage = math.Max(3.8, math.Min(4.2, voltage))

		var temperature float64
		if rng.Float64() < hotCellChance {
			temperature = uniform(rng, 43, 48)
		} else {
			temperature = uniform(rng, 25, 42)
		}

		cells = append(cells, types.CellReading{
			ID:          i,
			Voltage:     round(voltage, 3),
			Temperature: round(temperature, 2),
		})
	}

	if rng.Float64() < imbalanceChance {
		for i := 0; i < 1+rng.Intn(3); i++ {
			idx := rng.Intn(cellCount)
			if rng.Float64() < 0.5 {
				cells[idx].Voltage = round(uniform(rng, 3.80, 3.88), 3)
			} else {
				cells[idx].Voltage = round(uniform(rng, 4.12, 4.20), 3)
			}
		}
	}

	cycleCount := 100 + rng.Intn(701)

	var capacityRatio float64
	switch {
	case cycleCount < 300:
		capacityRatio = uniform(rng, 0.95, 1.0)
	case cycleCount < 600:
		capacityRatio = uniform(rng, 0.85, 0.95)
	default:
		capacityRatio = uniform(rng, 0.80, 0.90)
	}

	return &types.DiagnosticSnapshot{
		VehicleID:          fmt.Sprintf("EV-%d", 10000+rng.Intn(90000)),
		Timestamp:          time.Now().UTC(),
		Cells:              cells,
		CycleCount:         cycleCount,
		NominalCapacityKwh: NominalCapacityKwh,
		CurrentCapacityKwh: round(NominalCapacityKwh*capacityRatio, 2),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
