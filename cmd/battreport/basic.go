package main

import (
	"github.com/spf13/cobra"

	"github.com/evdiag/battreport/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			// Also show the daemon version when it is reachable.
			if daemonVersion, err := apiClient.GetVersion(); err == nil {
				cmd.Printf("daemon: %s\n", daemonVersion)
			}
		},
	}
}
