// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"fmt"

	"github.com/dacolabs/formrequest/internal/emit"
	"github.com/dacolabs/formrequest/internal/oas"
	"github.com/dacolabs/formrequest/internal/rules"
)

// EndpointResult is the outcome for one endpoint.
type EndpointResult struct {
	Endpoint  *oas.Endpoint
	ClassName string
	Rules     *rules.Table
	Write     emit.Result
	Err       error
}

// OK reports whether the endpoint was generated without error.
func (r EndpointResult) OK() bool {
	return r.Err == nil
}

// Report collects per-endpoint results in endpoint order.
type Report struct {
	Results []EndpointResult
}

// Succeeded counts classes written to disk.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && res.Write.Written {
			n++
		}
	}
	return n
}

// Skipped counts classes rendered but not written (dry run).
func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && res.Write.Skipped {
			n++
		}
	}
	return n
}

// Failed counts endpoints that produced an error.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Err returns an error when any endpoint failed.
func (r *Report) Err() error {
	if n := r.Failed(); n > 0 {
		return fmt.Errorf("failed to generate %d request class(es)", n)
	}
	return nil
}
