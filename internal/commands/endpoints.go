// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/dacolabs/formrequest/internal/generate"
	"github.com/dacolabs/formrequest/internal/oas"
)

type endpointsOptions struct {
	format            string
	includeParameters bool
}

func newEndpointsCmd() *cobra.Command {
	opts := &endpointsOptions{}

	cmd := &cobra.Command{
		Use:   "endpoints <spec>",
		Short: "List the endpoints of an OpenAPI spec",
		Long: `List every operation with the class name it generates.
The BODY column marks operations that get a FormRequest class; duplicate
route signatures and spec warnings are listed below the table.`,
		Example: `  # List endpoints
  formrequest endpoints openapi.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := loadSpec(cmd.Context(), args[0], opts.format)
			if err != nil {
				return err
			}
			return runEndpoints(cmd.OutOrStdout(), spec, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "Spec format (json or yaml, default by extension)")
	cmd.Flags().BoolVar(&opts.includeParameters, "include-parameters", false, "Count path and query parameters as request input")

	return cmd
}

func runEndpoints(out io.Writer, spec *oas.Spec, opts *endpointsOptions) error {
	if len(spec.Endpoints) == 0 {
		_, _ = fmt.Fprintln(out, "No endpoints defined.")
		return nil
	}

	generated := make(map[*oas.Endpoint]bool)
	for _, ep := range generate.Candidates(spec, opts.includeParameters) {
		generated[ep] = true
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "METHOD\tPATH\tOPERATION\tCLASS\tBODY")

	for _, ep := range spec.Endpoints {
		op := ep.OperationID
		if op == "" {
			op = "-"
		}
		body := "-"
		if generated[ep] {
			body = "yes"
		}
		path := ep.Path
		if utf8.RuneCountInString(path) > 48 {
			path = string([]rune(path)[:45]) + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ep.Method, path, op, ep.ClassName(), body)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if dups := spec.Duplicates(); len(dups) > 0 {
		_, _ = fmt.Fprintln(out, "\nDuplicate route signatures:")
		for _, group := range dups {
			ids := make([]string, len(group))
			for i, ep := range group {
				ids[i] = ep.ID()
			}
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", group[0].Signature(), strings.Join(ids, ", "))
		}
	}

	if len(spec.Warnings) > 0 {
		_, _ = fmt.Fprintln(out, "\nWarnings:")
		for _, warning := range spec.Warnings {
			_, _ = fmt.Fprintf(out, "  - %s\n", warning)
		}
	}
	return nil
}
