package daemon

import (
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/evdiag/battreport/pkg/analyzer"
	"github.com/evdiag/battreport/pkg/metrics"
	"github.com/evdiag/battreport/pkg/types"
)

// SnapshotFunc produces the snapshot to analyze on each watch tick.
type SnapshotFunc func() (*types.DiagnosticSnapshot, error)

// Watcher re-analyzes a snapshot source on a cron schedule, logging the
// resulting report and feeding the metrics counters.
type Watcher struct {
	source SnapshotFunc

	parser cron.Parser

	mu       sync.Mutex
	schedule cron.Schedule
	nextRun  time.Time
	running  bool

	stopCh chan struct{}
}

func NewWatcher(source SnapshotFunc) *Watcher {
	if source == nil {
		panic("snapshot function cannot be nil")
	}

	return &Watcher{
		source: source,
		parser: cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		stopCh: make(chan struct{}),
	}
}

// Schedule sets the cron expression for subsequent runs. Must be called
// before Start.
func (w *Watcher) Schedule(cronExpr string) error {
	sh, err := w.parser.Parse(cronExpr)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.schedule = sh
	w.nextRun = sh.Next(time.Now())
	w.mu.Unlock()

	return nil
}

func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	go w.runScheduled()
}

func (w *Watcher) Stop() {
	select {
	case <-w.stopCh: // already closed
	default:
		close(w.stopCh)
	}
}

// Status returns the next scheduled run and whether the watcher is running.
func (w *Watcher) Status() (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextRun, w.running
}

func (w *Watcher) runScheduled() {
	for {
		w.mu.Lock()
		next := w.nextRun
		w.mu.Unlock()

		timer := time.NewTimer(time.Until(next))

		select {
		case <-w.stopCh:
			timer.Stop()
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		case <-timer.C:
			w.runOnce()
			w.mu.Lock()
			w.nextRun = w.schedule.Next(time.Now())
			w.mu.Unlock()
		}
	}
}

func (w *Watcher) runOnce() {
	snapshot, err := w.source()
	if err != nil {
		logrus.Errorf("watcher: failed to take snapshot: %v", err)
		return
	}

	report := analyzer.New(snapshot).Report()
	metrics.ObserveReport(&report)

	entry := logrus.WithFields(logrus.Fields{
		"vehicleId":  snapshot.VehicleID,
		"soh":        report.BatterySoh,
		"cycleCount": report.CycleCount,
	})

	if len(report.Anomalies) > 0 {
		entry.Warnf("anomalies detected: %s", strings.Join(report.Anomalies, ", "))
	} else {
		entry.Info("battery healthy")
	}
}
