package main

import (
	"context"

	"github.com/aretw0/superdense/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one simulation without a UI",
	Long: `Runs the protocol once and prints one line per phase followed by the result.
Use --json for NDJSON events. Exits 1 when a bit is missing; a transmission
fault is reported but is not an error.`,
	Example: `  superdense simulate --bits 10
  superdense simulate --bits 11 --gate-cutting --instant --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, _ := cmd.Flags().GetString("bits")
		gateCutting, _ := cmd.Flags().GetBool("gate-cutting")
		jsonMode, _ := cmd.Flags().GetBool("json")
		instant, _ := cmd.Flags().GetBool("instant")

		rt, err := loadRuntime()
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.RunHeadless(ctx, rt.Engine, cli.SimulateOptions{
			Bits:        bits,
			GateCutting: gateCutting,
			JSON:        jsonMode,
			Instant:     instant,
			Out:         cmd.OutOrStdout(),
			Runner:      rt.RunnerOptions(),
		})
	},
}

func init() {
	simulateCmd.Flags().StringP("bits", "b", "--", `message bits, e.g. "10" ('-' leaves a slot unset)`)
	simulateCmd.Flags().BoolP("gate-cutting", "g", false, "enable gate cutting (25% transmission faults)")
	simulateCmd.Flags().Bool("json", false, "print events as NDJSON")
	simulateCmd.Flags().Bool("instant", false, "skip the delay between phases")
	rootCmd.AddCommand(simulateCmd)
}
