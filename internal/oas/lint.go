// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Lint runs kin-openapi's structural validation over the raw document.
// Findings are returned as warnings; generation does not depend on them.
func Lint(ctx context.Context, doc *Document) []string {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	t, err := loader.LoadFromData(doc.Raw)
	if err != nil {
		return []string{fmt.Sprintf("spec could not be loaded for validation: %v", err)}
	}

	// Validate (non-fatal: specs in the wild often carry minor issues)
	if err := t.Validate(ctx); err != nil {
		return []string{fmt.Sprintf("spec validation: %v", err)}
	}
	return nil
}
