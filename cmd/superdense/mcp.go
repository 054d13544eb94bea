package main

import (
	"log"
	"os"

	"github.com/aretw0/superdense/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts an MCP server over stdio exposing the simulate, encoding_table and
phases tools and the superdense://tutorial resource.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}

		// Stdout carries JSON-RPC.
		log.SetOutput(os.Stderr)

		srv := mcp.NewServer(rt.Engine, mcp.WithLogger(rt.Logger))
		rt.Logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
