// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/formrequest/internal/emit"
	"github.com/dacolabs/formrequest/internal/generate"
	"github.com/dacolabs/formrequest/internal/prompts"
	"github.com/dacolabs/formrequest/internal/session"
)

type generateOptions struct {
	output            string
	namespace         string
	format            string
	baseClass         string
	force             bool
	dryRun            bool
	includeParameters bool
	interactive       bool
	concurrency       int
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <spec>",
		Short: "Generate FormRequest classes for every endpoint with a request body",
		Long: `Generate one FormRequest class per OpenAPI operation that declares a request body.

Existing files are left untouched unless --force is given; each endpoint
succeeds or fails on its own and a summary is printed at the end.`,
		Example: `  # Generate into ./app/Http/Requests
  formrequest generate openapi.yaml

  # Preview without writing
  formrequest generate openapi.yaml --dry-run

  # Custom namespace and directory, overwriting existing classes
  formrequest generate api.json -o src/Requests -n 'Acme\Http\Requests' --force

  # Pick endpoints interactively
  formrequest generate openapi.yaml -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "./app/Http/Requests", "Output directory")
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", emit.DefaultNamespace, "PHP namespace of the generated classes")
	cmd.Flags().StringVar(&opts.format, "format", "", "Spec format (json or yaml, default by extension)")
	cmd.Flags().StringVar(&opts.baseClass, "base-class", emit.DefaultBaseClass, "Fully-qualified class the requests extend")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the classes without writing them")
	cmd.Flags().BoolVar(&opts.includeParameters, "include-parameters", false, "Also validate path and query parameters")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose endpoints, namespace and output interactively")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", generate.DefaultConcurrency, "Endpoints processed in parallel")

	return cmd
}

// resolve layers explicitly set flags over the session configuration.
func (o *generateOptions) resolve(cmd *cobra.Command, sess *session.Context) generate.Options {
	cfg := sess.Config
	opts := generate.Options{
		OutputDir:         cfg.Output,
		Namespace:         cfg.Namespace,
		Force:             cfg.Force,
		IncludeParameters: cfg.IncludeParameters,
		Concurrency:       cfg.Concurrency,
		Class: emit.Options{
			BaseClass: cfg.BaseClass,
			Authorize: cfg.Authorize,
		},
		DryRun: o.dryRun,
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		opts.OutputDir = o.output
	}
	if flags.Changed("namespace") {
		opts.Namespace = o.namespace
	}
	if flags.Changed("base-class") {
		opts.Class.BaseClass = o.baseClass
	}
	if flags.Changed("force") {
		opts.Force = o.force
	}
	if flags.Changed("include-parameters") {
		opts.IncludeParameters = o.includeParameters
	}
	if flags.Changed("concurrency") {
		opts.Concurrency = o.concurrency
	}
	return opts
}

func runGenerate(cmd *cobra.Command, specPath string, o *generateOptions) error {
	sess, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	spec, err := loadSpec(ctx, specPath, o.format)
	if err != nil {
		return err
	}

	opts := o.resolve(cmd, sess)
	if !emit.IsNamespace(opts.Namespace) {
		return fmt.Errorf("%w: %s", emit.ErrInvalidNamespace, opts.Namespace)
	}

	candidates := generate.Candidates(spec, opts.IncludeParameters)
	if len(candidates) == 0 {
		_, _ = fmt.Fprintln(out, "No endpoints with a request body found.")
		return nil
	}

	if o.interactive {
		sel := prompts.GenerateSelection{Namespace: opts.Namespace, Output: opts.OutputDir}
		if err := prompts.RunGenerateForm(candidates, &sel, !cmd.Flags().Changed("output")); err != nil {
			return err
		}
		opts.Only = sel.Endpoints
		opts.Namespace = sel.Namespace
		opts.OutputDir = sel.Output
	}

	verb := "Generating"
	if opts.DryRun {
		verb = "Previewing"
	}
	_, _ = fmt.Fprintf(out, "%s request classes for %s...\n", verb, specPath)

	report := generate.Run(ctx, spec, opts)

	fields := make([]prompts.ResultField, 0, len(report.Results))
	for _, res := range report.Results {
		field := prompts.ResultField{Label: res.ClassName, Value: res.Write.Path}
		switch {
		case !res.OK():
			field.Status = prompts.StatusFailed
			field.Value = res.Err.Error()
		case res.Write.Skipped:
			field.Status = prompts.StatusSkipped
			field.Value = res.Write.Message
		}
		fields = append(fields, field)
	}

	if opts.DryRun {
		for _, res := range report.Results {
			if res.OK() {
				_, _ = fmt.Fprintf(out, "\n// %s\n%s", res.Write.Path, res.Write.Source)
			}
		}
	}

	prompts.PrintResult(out, fields, summaryLine(report))

	if report.Failed() > 0 {
		_, _ = fmt.Fprintln(out, "\nErrors:")
		for _, res := range report.Results {
			if !res.OK() {
				_, _ = fmt.Fprintf(out, "  - %s: %v\n", res.Endpoint.ID(), res.Err)
			}
		}
	}
	return report.Err()
}

func summaryLine(r *generate.Report) string {
	parts := []string{fmt.Sprintf("%d generated", r.Succeeded())}
	if n := r.Skipped(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d previewed", n))
	}
	if n := r.Failed(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	return strings.Join(parts, ", ")
}
