package main

import (
	"github.com/aretw0/superdense/internal/cli"
	"github.com/aretw0/superdense/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var tutorialCmd = &cobra.Command{
	Use:   "tutorial",
	Short: "Explain how superdense coding works",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		render := tui.NewRenderer()
		if raw {
			render = tui.PlainRenderer
		}
		return cli.WriteTutorial(cmd.OutOrStdout(), render)
	},
}

func init() {
	tutorialCmd.Flags().Bool("raw", false, "print markdown without styling")
	rootCmd.AddCommand(tutorialCmd)
}
