package daemon

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/evdiag/battreport/pkg/analyzer"
	"github.com/evdiag/battreport/pkg/config"
	"github.com/evdiag/battreport/pkg/metrics"
	"github.com/evdiag/battreport/pkg/types"
	"github.com/evdiag/battreport/pkg/version"
)

func generateReport(c *gin.Context) {
	var snapshot types.DiagnosticSnapshot
	if err := c.BindJSON(&snapshot); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	report := analyzer.New(&snapshot).Report()
	metrics.ObserveReport(&report)

	logrus.WithFields(logrus.Fields{
		"vehicleId": snapshot.VehicleID,
		"soh":       report.BatterySoh,
		"anomalies": len(report.Anomalies),
	}).Debug("report generated")

	c.IndentedJSON(http.StatusOK, report)
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
