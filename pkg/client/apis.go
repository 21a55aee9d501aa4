package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/evdiag/battreport/pkg/config"
	"github.com/evdiag/battreport/pkg/types"
)

// GenerateReport sends a diagnostic snapshot to the daemon and returns
// the computed health report.
func (c *Client) GenerateReport(snapshot *types.DiagnosticSnapshot) (*types.HealthReport, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to marshal snapshot")
	}

	ret, err := c.Post("/report", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to generate report")
	}

	var report types.HealthReport
	if err := json.Unmarshal([]byte(ret), &report); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal report")
	}

	return &report, nil
}

// GetVersion returns the daemon's version string.
func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get daemon version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}

	return v, nil
}

// GetConfig returns the daemon's current runtime configuration.
func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}
