package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quantbio/qemd/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run as an MCP server over stdio",
		Long: `Expose the simulation engine as Model Context Protocol tools
(qemd_simulate, qemd_sweep, qemd_map_omics) for agent clients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcp.NewServer(&mcp.Config{
				Name:    "qemd",
				Version: version,
			})
			return s.Run(context.Background())
		},
	}
}
