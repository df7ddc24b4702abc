// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dacolabs/formrequest/internal/generate"
	"github.com/dacolabs/formrequest/internal/session"
)

type rulesOptions struct {
	operation         string
	output            string
	format            string
	includeParameters bool
}

func newRulesCmd() *cobra.Command {
	opts := &rulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules <spec>",
		Short: "Print the validation rules of one endpoint",
		Long: `Print the ordered validation rule table of one operation without
generating a class.`,
		Example: `  # Rules for an operationId, as YAML
  formrequest rules openapi.yaml --operation createUser

  # Rules for an operation without operationId, as JSON
  formrequest rules openapi.yaml -p 'POST /users/{id}/avatar' --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.operation, "operation", "p", "", "operationId, or \"METHOD /path\"")
	cmd.Flags().StringVar(&opts.output, "output", "yaml", "Output encoding (yaml or json)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Spec format (json or yaml, default by extension)")
	cmd.Flags().BoolVar(&opts.includeParameters, "include-parameters", false, "Also validate path and query parameters")
	_ = cmd.MarkFlagRequired("operation")

	return cmd
}

func runRules(cmd *cobra.Command, specPath string, opts *rulesOptions) error {
	sess, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	spec, err := loadSpec(cmd.Context(), specPath, opts.format)
	if err != nil {
		return err
	}

	ep, ok := spec.Endpoint(opts.operation)
	if !ok {
		return fmt.Errorf("operation %q not found in spec", opts.operation)
	}

	includeParams := sess.Config.IncludeParameters
	if cmd.Flags().Changed("include-parameters") {
		includeParams = opts.includeParameters
	}

	_, table, err := generate.MapEndpoint(spec, ep, generate.Options{IncludeParameters: includeParams})
	if err != nil {
		return fmt.Errorf("%s: %w", ep.ID(), err)
	}

	out := cmd.OutOrStdout()
	switch opts.output {
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(table); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	default:
		return errors.New("--output must be yaml or json")
	}
}
