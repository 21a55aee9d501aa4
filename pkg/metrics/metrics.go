// Package metrics exposes Prometheus counters for the daemon's analysis
// activity, served at GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/evdiag/battreport/pkg/analyzer"
	"github.com/evdiag/battreport/pkg/types"
)

var (
	reportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "battreport",
		Name:      "reports_generated_total",
		Help:      "Number of health reports generated.",
	})

	anomaliesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "battreport",
		Name:      "anomalies_detected_total",
		Help:      "Number of anomalies detected, by kind.",
	}, []string{"kind"})
)

// ObserveReport records one generated report and its anomalies.
func ObserveReport(report *types.HealthReport) {
	reportsGenerated.Inc()

	for _, anomaly := range report.Anomalies {
		anomaliesDetected.WithLabelValues(kindLabel(anomaly)).Inc()
	}
}

func kindLabel(anomaly string) string {
	switch anomaly {
	case analyzer.AnomalyVoltageImbalance:
		return "voltage_imbalance"
	case analyzer.AnomalyOverheating:
		return "overheating"
	case analyzer.AnomalyLowHealth:
		return "low_health"
	default:
		return "unknown"
	}
}
