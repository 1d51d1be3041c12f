package main

import (
	stripemcp "github.com/billdeck/stripehelper/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for coding agent integration",
	Long: `Start a Model Context Protocol (MCP) server over stdio.

Exposes read-only billing lookups (balance, customer, subscription) and the
subscription CSV export as tools. Mutating endpoints are not exposed.

Environment variables:
  STRIPE_SECRET     Stripe secret key (required)
  STRIPE_HELPER_DB  Enrichment store DSN (required for the export tool)`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// This client persists for the server lifetime.
	client, err := newClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	server := stripemcp.NewServer(client)
	return server.Run()
}
