package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/superdense"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of superdense",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "superdense version %s\n", strings.TrimSpace(superdense.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
