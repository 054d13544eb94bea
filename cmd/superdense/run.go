package main

import (
	"context"

	"github.com/aretw0/superdense/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive simulator",
	Long: `Starts the interactive simulator. On a terminal this opens the TUI; when
stdin or stdout is redirected (or --text is set) a line based prompt is used instead.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func addInteractiveFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("text", false, "use the line based prompt instead of the TUI")
	cmd.Flags().BoolP("quiet", "q", false, "do not print the banner")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetBool("text")
	quiet, _ := cmd.Flags().GetBool("quiet")

	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	return cli.RunInteractive(ctx, rt.Engine, cli.InteractiveOptions{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Text:   text,
		Quiet:  quiet,
		Runner: rt.RunnerOptions(),
	})
}

func init() {
	addInteractiveFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
