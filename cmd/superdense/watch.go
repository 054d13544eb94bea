package main

import (
	"context"
	"errors"

	"github.com/aretw0/superdense/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <session-id>",
	Short: "Follow a served session through Redis",
	Long: `Prints the events a session of "superdense serve" mirrors to Redis.
Requires redis.enabled (or --redis on the server) and the same redis settings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		rt.Config.Redis.Enabled = true

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		pub, err := rt.NewPublisher(ctx)
		if err != nil {
			return err
		}
		defer pub.Close()

		err = cli.Watch(ctx, pub, args[0], cli.SimulateOptions{JSON: jsonMode, Out: cmd.OutOrStdout()})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().Bool("json", false, "print events as NDJSON")
	rootCmd.AddCommand(watchCmd)
}
