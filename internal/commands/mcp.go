// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/dacolabs/formrequest/internal/mcptools"
	"github.com/dacolabs/formrequest/internal/session"
	"github.com/dacolabs/formrequest/internal/version"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generator as MCP tools over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
list_endpoints, map_rules and render_request tools.`,
		Example: `  # Register with an MCP client
  formrequest mcp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			sess.Logger.Info().Msg("serving MCP over stdio")
			return server.ServeStdio(mcptools.NewServer(version.Short(), sess.Config))
		},
	}
}
