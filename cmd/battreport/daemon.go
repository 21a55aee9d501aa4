package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/evdiag/battreport/pkg/daemon"
	"github.com/evdiag/battreport/pkg/version"
)

var (
	// alwaysAllowNonRootAccess indicates whether to always allow non-root users to access the battreport daemon.
	alwaysAllowNonRootAccess = false
	logFile                  = ""
)

func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daemon",
		Short:   "Run the battreport daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			if logFile != "" {
				logrus.SetOutput(&lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    10, // MB
					MaxBackups: 3,
					MaxAge:     28, // days
					Compress:   true,
				})
			}

			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("battreport daemon starting")

			return daemon.Run(configPath, unixSocketPath, alwaysAllowNonRootAccess)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&alwaysAllowNonRootAccess, "always-allow-non-root-access", false,
		"Always allow non-root users to access the daemon.")
	f.StringVar(&configPath, "config", configPath,
		"Path to the daemon config file.")
	f.StringVar(&unixSocketPath, "listen", unixSocketPath,
		"Path of the unix socket to listen on.")
	f.StringVar(&logFile, "log-file", "",
		"Write logs to this file (rotated) instead of stderr.")

	return cmd
}
