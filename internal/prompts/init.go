// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/dacolabs/formrequest/internal/config"
	"github.com/dacolabs/formrequest/internal/emit"
)

// RunInitForm asks for the project settings written by init. cfg carries
// the defaults in and the answers out.
func RunInitForm(cfg *config.Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Placeholder("e.g., ./app/Http/Requests").
				Value(&cfg.Output).
				Validate(requiredValidator("output directory")),
			huh.NewInput().
				Title("Namespace").
				Placeholder(`e.g., App\Http\Requests`).
				Value(&cfg.Namespace).
				Validate(namespaceValidator),
			huh.NewInput().
				Title("Base class").
				Description("Fully-qualified class the generated requests extend").
				Value(&cfg.BaseClass).
				Validate(baseClassValidator),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Validate path and query parameters?").
				Description("Operations without a body still get a class when they declare input parameters").
				Value(&cfg.IncludeParameters),
		),
	).WithTheme(Theme()).Run()
}

func baseClassValidator(s string) error {
	if s == "" {
		return errors.New("base class is required")
	}
	if err := emit.NewValidator().Var(s, "php_fqcn"); err != nil {
		return errors.New(`must be a fully-qualified class, e.g. Illuminate\Foundation\Http\FormRequest`)
	}
	return nil
}
