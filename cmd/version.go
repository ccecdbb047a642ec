package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-matcher/internal/server"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (http api %s)\n", app, version, server.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
