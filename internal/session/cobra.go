// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"errors"

	"github.com/spf13/cobra"
)

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("session context not loaded")
	}
	return ctx, nil
}

// PreRunLoad is a PersistentPreRunE that loads the session from the
// --config, --verbose and --quiet flags and stores it in the command's
// context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	verbosity, _ := flags.GetCount("verbose")
	quiet, _ := flags.GetBool("quiet")

	ctx, err := Load(cmd.Context(), Options{
		ConfigPath: configPath,
		Verbosity:  verbosity,
		Quiet:      quiet,
		LogWriter:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
