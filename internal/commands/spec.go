// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"

	"github.com/dacolabs/formrequest/internal/logging"
	"github.com/dacolabs/formrequest/internal/oas"
)

// loadSpec reads and parses the document at path. Version and lint
// findings are logged, never fatal.
func loadSpec(ctx context.Context, path, format string) (*oas.Spec, error) {
	log := logging.FromContext(ctx)

	f, err := oas.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	doc, err := oas.Open(path, f)
	if err != nil {
		return nil, err
	}
	spec, err := oas.Parse(doc)
	if err != nil {
		return nil, err
	}

	for _, w := range spec.Warnings {
		log.Warn().Str("spec", path).Msg(w)
	}
	for _, w := range oas.Lint(ctx, doc) {
		log.Info().Str("spec", path).Msg(w)
	}
	log.Debug().
		Str("spec", path).
		Str("openapi", spec.OpenAPI).
		Int("endpoints", len(spec.Endpoints)).
		Msg("spec loaded")
	return spec, nil
}
