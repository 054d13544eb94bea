package main

import (
	"github.com/aretw0/superdense/internal/cli"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the gate encoding table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		phases, _ := cmd.Flags().GetBool("phases")
		if phases {
			return cli.WritePhases(cmd.OutOrStdout(), format)
		}
		return cli.WriteEncodingTable(cmd.OutOrStdout(), format)
	},
}

func init() {
	tableCmd.Flags().StringP("format", "f", cli.FormatText, "output format: text, json or yaml")
	tableCmd.Flags().Bool("phases", false, "print the protocol phases instead")
	rootCmd.AddCommand(tableCmd)
}
