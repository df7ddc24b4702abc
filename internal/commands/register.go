// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/formrequest/internal/session"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formrequest",
		Short: "Generate Laravel FormRequest classes from OpenAPI specs",
		Long: `Generate Laravel FormRequest classes from an OpenAPI 3.0/3.1 document.

Every operation with a request body becomes one class whose rules() method
mirrors the schema's constraints as dotted-path validation rules.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: session.PreRunLoad,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ./formrequest.yaml)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(
		newInitCmd(),
		newGenerateCmd(),
		newEndpointsCmd(),
		newRulesCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
