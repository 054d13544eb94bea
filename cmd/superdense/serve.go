package main

import (
	"context"

	"github.com/aretw0/superdense/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the HTTP API: one-shot /simulate, per-user sessions with server-sent
events, static reference data and Prometheus metrics. Session events are
mirrored to Redis when redis.enabled is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := cli.Serve(ctx, rt); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			rt.Logger.Info("stopped", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("redis", false, "mirror session events to Redis")
	serveCmd.Flags().String("redis-addr", "", "Redis address (default localhost:6379)")
	serveCmd.Flags().Bool("metrics", true, "expose Prometheus metrics on /metrics")

	for key, name := range map[string]string{
		"server.addr":     "addr",
		"redis.enabled":   "redis",
		"redis.addr":      "redis-addr",
		"metrics.enabled": "metrics",
	} {
		if err := v.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(serveCmd)
}
