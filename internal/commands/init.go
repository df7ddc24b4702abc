// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dacolabs/formrequest/internal/config"
	"github.com/dacolabs/formrequest/internal/prompts"
)

type initOptions struct {
	output            string
	namespace         string
	baseClass         string
	includeParameters bool
	nonInteractive    bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a formrequest project",
		Long: `Initialize a formrequest project with a formrequest.yaml configuration file
in the current directory.`,
		Example: `  # Interactive mode
  formrequest init

  # Non-interactive
  formrequest init --namespace 'Acme\Http\Requests' --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaults.Output, "Output directory for generated classes")
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", defaults.Namespace, "PHP namespace of the generated classes")
	cmd.Flags().StringVar(&opts.baseClass, "base-class", defaults.BaseClass, "Fully-qualified class the requests extend")
	cmd.Flags().BoolVar(&opts.includeParameters, "include-parameters", defaults.IncludeParameters, "Also validate path and query parameters")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New(config.FileName + " already exists; project already initialized")
	}

	cfg := config.Default()
	cfg.Output = opts.output
	cfg.Namespace = opts.namespace
	cfg.BaseClass = opts.baseClass
	cfg.IncludeParameters = opts.includeParameters

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: cfgPath},
		{Label: "Output", Value: cfg.Output},
		{Label: "Namespace", Value: cfg.Namespace},
	}, "Initialization completed")
	return nil
}
