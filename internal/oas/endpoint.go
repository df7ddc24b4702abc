// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Methods lists the HTTP methods an OpenAPI path item may declare, in the
// order the OpenAPI specification lists them.
var Methods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "HEAD", "PATCH", "TRACE", "CONNECT"}

var (
	operationIDPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	pathParamPattern   = regexp.MustCompile(`\{[^{}/]+\}`)
)

// Parameter is one operation parameter with its raw schema.
type Parameter struct {
	Name        string
	In          string // path, query, header or cookie
	Required    bool
	Description string
	Schema      any
}

// Endpoint describes one HTTP operation.
type Endpoint struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  []Parameter
	RequestBody any // raw requestBody object, possibly a $ref
}

// Validate checks the descriptor invariants.
func (e *Endpoint) Validate() error {
	if !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidEndpoint, e.Path)
	}
	if !slices.Contains(Methods, e.Method) {
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidEndpoint, e.Method)
	}
	if e.OperationID != "" && !operationIDPattern.MatchString(e.OperationID) {
		return fmt.Errorf("%w: operationId %q must match %s", ErrInvalidEndpoint, e.OperationID, operationIDPattern)
	}
	return nil
}

// ID returns the operationId, or the signature when none is declared.
func (e *Endpoint) ID() string {
	if e.OperationID != "" {
		return e.OperationID
	}
	return e.Method + " " + e.Path
}

// HasRequestBody reports whether the operation declares a request body.
func (e *Endpoint) HasRequestBody() bool {
	return e.RequestBody != nil
}

// HasInputParameters reports whether the operation declares path or query
// parameters.
func (e *Endpoint) HasInputParameters() bool {
	for _, p := range e.Parameters {
		if p.In == "path" || p.In == "query" {
			return true
		}
	}
	return false
}

// Signature returns the method and path with parameter names replaced by
// positional placeholders, so /a/{id} and /a/{x} compare equal.
func (e *Endpoint) Signature() string {
	n := 0
	normalized := pathParamPattern.ReplaceAllStringFunc(e.Path, func(string) string {
		n++
		return "{param" + strconv.Itoa(n) + "}"
	})
	return e.Method + " " + normalized
}

// ClassName derives the request class name from the operationId, or from
// the method and path segments when no operationId is declared.
func (e *Endpoint) ClassName() string {
	if e.OperationID != "" {
		name := ToPascalCase(e.OperationID)
		if !strings.HasSuffix(name, "Request") {
			name += "Request"
		}
		return name
	}

	var sb strings.Builder
	sb.WriteString(ToPascalCase(strings.ToLower(e.Method)))
	for _, segment := range strings.Split(e.Path, "/") {
		if segment == "" {
			continue
		}
		// every {param}, whole or embedded as in {id}.json, reads "By<Param>"
		last := 0
		for _, loc := range pathParamPattern.FindAllStringIndex(segment, -1) {
			sb.WriteString(ToPascalCase(segment[last:loc[0]]))
			sb.WriteString("By")
			sb.WriteString(ToPascalCase(segment[loc[0]+1 : loc[1]-1]))
			last = loc[1]
		}
		sb.WriteString(ToPascalCase(segment[last:]))
	}
	sb.WriteString("Request")
	return sb.String()
}
