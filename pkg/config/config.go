package config

import "github.com/sirupsen/logrus"

// Config holds the daemon's runtime options. Analyzer thresholds are
// deliberately not here: they are fixed constants in pkg/analyzer.
type Config interface {
	AllowNonRootAccess() bool
	WatchSchedule() string
	WatchSource() string

	SetAllowNonRootAccess(bool)
	SetWatchSchedule(string)
	SetWatchSource(string)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error

	// LogrusFields returns the effective options for startup logging.
	LogrusFields() logrus.Fields
}

// Watch sources accepted by WatchSource.
const (
	WatchSourceMock = "mock"
	WatchSourceHost = "host"
)
