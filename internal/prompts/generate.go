// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dacolabs/formrequest/internal/oas"
)

// GenerateSelection holds the answers of RunGenerateForm.
type GenerateSelection struct {
	Endpoints []string
	Namespace string
	Output    string
}

// EndpointOptions builds one option per endpoint, labelled with its class
// name and route, keyed by endpoint ID. All options start selected.
func EndpointOptions(endpoints []*oas.Endpoint) []huh.Option[string] {
	options := make([]huh.Option[string], len(endpoints))
	for i, ep := range endpoints {
		label := fmt.Sprintf("%s  %s %s", ep.ClassName(), ep.Method, ep.Path)
		if ep.Deprecated {
			label += " (deprecated)"
		}
		options[i] = huh.NewOption(label, ep.ID()).Selected(true)
	}
	return options
}

// RunGenerateForm asks which endpoints to generate and where. sel carries
// the defaults in and the answers out; the output directory is only asked
// when askOutput is set.
func RunGenerateForm(endpoints []*oas.Endpoint, sel *GenerateSelection, askOutput bool) error {
	fields := []huh.Field{
		huh.NewMultiSelect[string]().
			Title("Endpoints").
			Description("Space toggles, enter confirms").
			Options(EndpointOptions(endpoints)...).
			Value(&sel.Endpoints).
			Validate(func(ids []string) error {
				if len(ids) == 0 {
					return errors.New("select at least one endpoint")
				}
				return nil
			}),
		huh.NewInput().
			Title("Namespace").
			Placeholder(`e.g., App\Http\Requests`).
			Value(&sel.Namespace).
			Validate(namespaceValidator),
	}
	if askOutput {
		fields = append(fields, huh.NewInput().
			Title("Output directory").
			Placeholder("e.g., ./app/Http/Requests").
			Value(&sel.Output).
			Validate(requiredValidator("output directory")))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(Theme()).Run()
}
