// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/formrequest/internal/commands"
)

// ConfigEnv names the environment variable that points at a config file
// when --config is not given.
const ConfigEnv = "FORMREQUEST_CONFIG"

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, arguments, env lookup).
func Run(ctx context.Context, args []string, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd()
	rootCmd.SetArgs(args)
	if path := getenv(ConfigEnv); path != "" {
		if err := rootCmd.PersistentFlags().Set("config", path); err != nil {
			return err
		}
	}
	return rootCmd.ExecuteContext(ctx)
}
