// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package extract builds schema trees from the raw request bodies and
// parameter lists of an OpenAPI document.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dacolabs/formrequest/internal/oas"
	"github.com/dacolabs/formrequest/internal/schema"
)

// ErrNoSchema indicates an operation with nothing to validate.
var ErrNoSchema = errors.New("no request schema")

// Extractor converts raw schema objects into schema.Node trees, following
// $refs through its resolver. It holds per-call resolver state and must not
// be shared between goroutines.
type Extractor struct {
	resolver *oas.Resolver
}

// New creates an Extractor backed by resolver.
func New(resolver *oas.Resolver) *Extractor {
	return &Extractor{resolver: resolver}
}

// FromEndpoint extracts the schema to validate for ep. The request body is
// used when present; with includeParams, path and query parameters are added
// to an object body, or used alone when there is no body.
func (x *Extractor) FromEndpoint(ep *oas.Endpoint, includeParams bool) (*schema.Node, error) {
	if !ep.HasRequestBody() {
		if includeParams && ep.HasInputParameters() {
			return x.FromParameters(ep.Parameters)
		}
		return nil, ErrNoSchema
	}

	body, err := x.FromRequestBody(ep.RequestBody)
	if err != nil {
		return nil, err
	}
	if !includeParams || !ep.HasInputParameters() || body.Kind != schema.KindObject {
		return body, nil
	}

	params, err := x.FromParameters(ep.Parameters)
	if err != nil {
		return nil, err
	}
	merged := *body
	merged.Properties = append([]schema.Property(nil), body.Properties...)
	merged.Required = append([]string(nil), body.Required...)
	for _, p := range params.Properties {
		if merged.Property(p.Name) != nil {
			continue
		}
		schema.WithProperty(p.Name, p.Schema)(&merged)
		if params.IsRequired(p.Name) {
			schema.WithRequired(p.Name)(&merged)
		}
	}
	return &merged, nil
}

// FromRequestBody selects the body's media type (application/json, then any
// JSON media type, then the first declared one) and extracts its schema.
func (x *Extractor) FromRequestBody(body any) (*schema.Node, error) {
	resolved, err := x.resolver.Deref(body)
	if err != nil {
		return nil, fmt.Errorf("request body: %w", err)
	}
	obj, ok := resolved.(*oas.Object)
	if !ok {
		return nil, fmt.Errorf("%w: request body is not an object", ErrNoSchema)
	}

	content := obj.Object("content")
	mediaType := selectMediaType(content)
	if mediaType == "" {
		return nil, fmt.Errorf("%w: request body declares no content", ErrNoSchema)
	}

	raw, ok := content.Object(mediaType).Get("schema")
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: media type %s has no schema", ErrNoSchema, mediaType)
	}

	node, err := x.FromSchema(raw)
	if err != nil {
		return nil, fmt.Errorf("request body (%s): %w", mediaType, err)
	}
	return node, nil
}

func selectMediaType(content *oas.Object) string {
	keys := content.Keys()
	for _, k := range keys {
		if strings.EqualFold(k, "application/json") {
			return k
		}
	}
	for _, k := range keys {
		if strings.HasSuffix(strings.ToLower(k), "+json") {
			return k
		}
	}
	if len(keys) > 0 {
		return keys[0]
	}
	return ""
}

// FromParameters builds an object node with one property per path or query
// parameter, in declaration order. Path parameters are always required.
// Header and cookie parameters are not request input and are skipped.
func (x *Extractor) FromParameters(params []oas.Parameter) (*schema.Node, error) {
	var opts []schema.Option
	for _, p := range params {
		if p.In == "header" || p.In == "cookie" {
			continue
		}

		var prop *schema.Node
		if p.Schema == nil {
			prop = schema.String()
		} else {
			var err error
			prop, err = x.FromSchema(p.Schema)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
			}
		}
		if prop.Description == "" && p.Description != "" {
			described := *prop
			described.Description = p.Description
			prop = &described
		}

		opts = append(opts, schema.WithProperty(p.Name, prop))
		if p.Required || p.In == "path" {
			opts = append(opts, schema.WithRequired(p.Name))
		}
	}
	return schema.Object(opts...), nil
}
