package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/evdiag/battreport/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/battreport.sock"
	configPath     = "/etc/battreport.json"
)

var (
	gBasic    = "Basic:"
	gAdvanced = "Advanced:"

	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: battreport daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running? Start it with 'battreport daemon'")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or run the daemon with the '--always-allow-non-root-access' flag to grant permissions to your user")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battreport",
		Short: "battreport computes health reports from EV battery diagnostics",
		Long: `battreport computes battery health reports from EV diagnostic snapshots.

It derives the pack's State of Health and flags voltage imbalance,
overheating, and low health. Snapshots come from a JSON file, the
built-in simulator, or the machine's own battery.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "L", logLevel,
		"Log level. Can be one of: trace, debug, info, warning, error, fatal, panic.")

	for _, group := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    group,
			Title: group,
		})
	}

	cmd.AddCommand(
		NewAnalyzeCommand(),
		NewSimulateCommand(),
		NewHostCommand(),
		NewReportCommand(),
		NewDaemonCommand(),
		NewVersionCommand(),
	)

	return cmd
}
