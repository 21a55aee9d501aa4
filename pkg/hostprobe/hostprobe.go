// Package hostprobe builds a diagnostic snapshot from the machine's own
// battery, so battreport can grade the laptop it runs on. Intended for
// development and demos; the OS only exposes pack-level data.
package hostprobe

import (
	"os"
	"time"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"

	"github.com/evdiag/battreport/pkg/types"
)

// Snapshot reads the host battery and converts it to a DiagnosticSnapshot.
// Per-cell voltages/temperatures and the cycle count are not exposed by
// the OS battery APIs, so Cells stays empty (valid per the analyzer's
// contract) and CycleCount is zero. Only the capacity-based SoH and
// low-health checks are meaningful for host snapshots.
func Snapshot() (*types.DiagnosticSnapshot, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read host battery")
	}

	if len(batteries) == 0 {
		return nil, pkgerrors.New("no batteries found")
	}

	// Machines with more than one battery are rare; the first is enough.
	bat := batteries[0]

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &types.DiagnosticSnapshot{
		VehicleID: "host-" + hostname,
		Timestamp: time.Now().UTC(),
		Cells:     []types.CellReading{},
		// distatus/battery reports capacities in mWh.
		NominalCapacityKwh: bat.Design / 1e6,
		CurrentCapacityKwh: bat.Full / 1e6,
	}, nil
}
