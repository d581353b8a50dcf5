package main

import (
	"context"
	"fmt"

	"github.com/TheMathDoctor/random-walks/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Start an MCP (Model Context Protocol) server exposing the walk tools
over stdio. The server provides qwalk_quantum, qwalk_classical,
qwalk_compare, qwalk_runs, and qwalk_get to MCP clients.

This command blocks until the client disconnects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			storeDir, err := cfg.StoreDir()
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:     "qwalk",
				Version:  version,
				StoreDir: storeDir,
				Defaults: cfg.Walk,
			})
			if err != nil {
				return fmt.Errorf("create MCP server: %w", err)
			}

			return server.Run(context.Background())
		},
	}
}
